package engine

import (
	"fmt"
	"strings"
	"time"
)

// historyWindow is how many trailing history turns are rendered into the
// system prompt.
const historyWindow = 5

// toneGuidance holds explicit style instructions for the canonical tones.
// Any other tone value is passed through verbatim on top of the neutral
// framing.
var toneGuidance = map[string]string{
	"neutral":      "Keep a clear, friendly, and balanced voice.",
	"professional": "Keep a polished, precise, businesslike voice. No slang.",
	"casual":       "Keep it relaxed and conversational, like texting a friend.",
	"sarcastic":    "Be playfully sarcastic and dry, but never mean-spirited or unhelpful.",
	"genz":         "Use Gen Z slang and vibes - keep it short, lowercase-casual, and fun.",
}

// toolCatalog describes every tool and its parameter shape for the model.
const toolCatalog = `Available tools and their parameters:
- createTask: {description: string (required), priority: "low"|"medium"|"high", dueDate: string}
- updateTask: {taskId: string (required), updates: object (required)}
- createReminder: {title: string (required), scheduledTime: string (ISO date/time)}
- updateReminder: {reminderId: string (required), updates: object (required)}
- trackExpenses: {expenses: [{item: string (required), amount: number > 0 (required), category: string, date: string}]}
- createGoal: {title: string (required), target: number > 0, progress: number >= 0}
- updateGoal: {goalId: string (required), updates: object (required)}
- createJournalEntry: {content: string (required), mood: string}
- generalChat: {tone: string, response: string} - use when no entity action is needed`

// BuildSystemPrompt assembles the system prompt for a chat turn. It is a
// pure function of its inputs apart from the current-date default.
func BuildSystemPrompt(turn ChatTurn) string {
	currentDate := turn.CurrentDate
	if currentDate == "" {
		currentDate = time.Now().Format("2006-01-02")
	}

	var b strings.Builder

	b.WriteString("You are Nudge, a warm and capable personal assistant. ")
	b.WriteString("You help the user manage tasks, reminders, goals, journal entries, and expenses. ")
	fmt.Fprintf(&b, "Today's date is %s.\n\n", currentDate)

	b.WriteString("Tone: ")
	tone := strings.ToLower(strings.TrimSpace(turn.Tone))
	if tone == "" {
		tone = "neutral"
	}
	if guidance, ok := toneGuidance[tone]; ok {
		b.WriteString(guidance)
	} else {
		// Open tone value: neutral framing as the baseline, the requested
		// tone passed through verbatim.
		fmt.Fprintf(&b, "%s Adopt the following requested tone: %s.", toneGuidance["neutral"], turn.Tone)
	}
	b.WriteString("\n\n")

	b.WriteString("If the user asks who made you, who created you, or where you come from, ")
	fmt.Fprintf(&b, "answer with exactly this sentence and nothing else: %q. ", IdentityReply)
	b.WriteString("Never name any third-party AI provider.\n\n")

	b.WriteString(toolCatalog)
	b.WriteString("\n\n")

	if turn.ContextItem != nil && turn.ContextItem.ID != "" {
		fmt.Fprintf(&b,
			"The previous turn concerned a %s with id %s. If this message is a follow-up about the same item, prefer the matching update tool over a create tool and reuse that id.\n\n",
			turn.ContextItem.Type, turn.ContextItem.ID)
	}

	if history := renderHistory(turn.History); history != "" {
		b.WriteString("Recent conversation:\n")
		b.WriteString(history)
		b.WriteString("\n")
	}

	b.WriteString(`Respond with a single JSON object of the form {"aiResponseText": string, "tool": string, "toolParams": object}. `)
	b.WriteString("aiResponseText is your conversational reply; tool is one of the tools above; toolParams holds its parameters. ")
	b.WriteString("Use generalChat when the message needs no entity action.")

	return b.String()
}

// renderHistory renders the last few turns as "role: content" lines.
// Entries missing either field are skipped.
func renderHistory(history []HistoryEntry) string {
	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}

	var b strings.Builder
	for _, entry := range history[start:] {
		if entry.Role == "" || entry.Content == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", entry.Role, entry.Content)
	}
	return b.String()
}
