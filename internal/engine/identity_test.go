package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentityQuestion(t *testing.T) {
	matches := []string{
		"Who made you?",
		"WHO MADE YOU",
		"tell me, who created you",
		"what about your creator",
		"who built you anyway",
		"where are you from?",
		"what's the origin of this expense category?", // known broad match
	}
	for _, msg := range matches {
		assert.True(t, isIdentityQuestion(msg), msg)
	}

	misses := []string{
		"add a task to buy milk",
		"who is the president",
		"remind me to call mom",
		"",
	}
	for _, msg := range misses {
		assert.False(t, isIdentityQuestion(msg), msg)
	}
}
