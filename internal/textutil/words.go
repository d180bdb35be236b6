package textutil

import "strings"

// MinKeywordLength is the minimum length for a word to count as a keyword.
const MinKeywordLength = 4

// Keywords splits text into lowercase words of at least MinKeywordLength
// characters, stripping surrounding punctuation. Order follows the text.
func Keywords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= MinKeywordLength {
			out = append(out, f)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '-' || r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
