package analytics

import (
	"strings"

	"github.com/dtnitsch/chat-profiler/models"
)

// minPhraseTokens is the token count a message must exceed to contribute an opening phrase.
const minPhraseTokens = 2

// OpeningPhrase returns the first window whitespace-delimited tokens of
// content joined by single spaces. ok is false for messages with two tokens
// or fewer.
func OpeningPhrase(content string, window int) (string, bool) {
	if window <= 0 {
		window = models.DefaultPhraseWindow
	}

	words := strings.Fields(content) // strings.Fields handles multiple spaces and newlines
	if len(words) <= minPhraseTokens {
		return "", false
	}
	if len(words) > window {
		words = words[:window]
	}
	return strings.Join(words, " "), true
}
