package search

import (
	"unicode"
	"unicode/utf8"
)

// Segments is a field split around the first match of a query
type Segments struct {
	Before string
	Match  string
	After  string
	Found  bool
}

// Highlight splits text at the first case-insensitive occurrence of query.
// Offsets are taken from the original text so the slices never cut a rune.
// When there is no match, Before holds the whole text.
func Highlight(text, query string) Segments {
	if query == "" {
		return Segments{Before: text}
	}
	for i := 0; i < len(text); {
		if end, ok := matchAt(text, i, query); ok {
			return Segments{
				Before: text[:i],
				Match:  text[i:end],
				After:  text[end:],
				Found:  true,
			}
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return Segments{Before: text}
}

// matchAt compares query rune by rune against text starting at byte offset
// start and returns the end offset of the match
func matchAt(text string, start int, query string) (int, bool) {
	pos := start
	for _, qr := range query {
		if pos >= len(text) {
			return 0, false
		}
		tr, size := utf8.DecodeRuneInString(text[pos:])
		if unicode.ToLower(tr) != unicode.ToLower(qr) {
			return 0, false
		}
		pos += size
	}
	return pos, true
}
