package engine

import "strings"

// IdentityReply is the one fixed sentence used to answer creator and origin
// questions. It deliberately names no third-party AI provider.
const IdentityReply = "I'm Nudge, your personal assistant, built by the Nudge team to help you stay on top of tasks, reminders, goals, journaling, and expenses."

// identityPhrases are matched case-insensitively as substrings of the
// inbound message. The bare word "origin" is known to be broad and can
// match unrelated messages; the behavior is kept for compatibility.
var identityPhrases = []string{
	"who made you",
	"who created you",
	"your creator",
	"who built you",
	"origin",
	"where are you from",
}

// isIdentityQuestion reports whether the message asks about the assistant's
// creator or origin.
func isIdentityQuestion(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range identityPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
