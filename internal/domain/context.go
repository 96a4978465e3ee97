package domain

// charsPerToken is a coarse, deliberately swappable approximation. It is not
// tied to any real tokenizer.
const charsPerToken = 4

// Truncate bounds text to a token budget, keeping the trailing slice: recent
// conversational context matters more than the opening of a long message.
// Truncating an already-short string is a no-op. Counting is rune-based so a
// multi-byte character is never split.
func Truncate(text string, maxTokens int) string {
	maxChars := maxTokens * charsPerToken
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[len(runes)-maxChars:])
}
