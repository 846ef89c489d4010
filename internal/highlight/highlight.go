// Package highlight colors JSON response bodies for display.
//
// The tokenizer is lexical and line-oriented. It never builds a parse tree,
// so truncated or malformed JSON still gets a best-effort coloring, and a
// line ceiling keeps the cost bounded on very large bodies.
package highlight

import (
	"errors"
	"strings"
)

// DefaultMaxLines is the line ceiling used when the caller passes <= 0.
const DefaultMaxLines = 1000

// ErrTooLarge is returned when the input has more lines than allowed. The
// caller should render the text unstyled.
var ErrTooLarge = errors.New("highlight: input exceeds line limit")

// Category classifies a span of text.
type Category int

const (
	Plain Category = iota
	Key
	String
	Number
	Literal
	Punctuation
)

func (c Category) String() string {
	switch c {
	case Plain:
		return "plain"
	case Key:
		return "key"
	case String:
		return "string"
	case Number:
		return "number"
	case Literal:
		return "literal"
	case Punctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Span is the byte range [Start, End) of the highlighted text.
type Span struct {
	Start    int
	End      int
	Category Category
}

// Highlight tokenizes text into spans that cover every byte exactly once.
// If text has more than maxLines lines it returns ErrTooLarge without
// scanning.
func Highlight(text string, maxLines int) ([]Span, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	if ExceedsLines(text, maxLines) {
		return nil, ErrTooLarge
	}

	spans := make([]Span, 0, len(text)/4+1)
	emit := func(start, end int, cat Category) {
		if n := len(spans); n > 0 && cat == Plain && spans[n-1].Category == Plain && spans[n-1].End == start {
			spans[n-1].End = end
			return
		}
		spans = append(spans, Span{Start: start, End: end, Category: cat})
	}

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '"':
			end, closed := scanString(text, i)
			cat := String
			if closed && followedByColon(text, end) {
				cat = Key
			}
			emit(i, end, cat)
			i = end
		case startsNumber(text, i):
			end := scanNumber(text, i)
			emit(i, end, Number)
			i = end
		case isPunct(c):
			emit(i, i+1, Punctuation)
			i++
		default:
			if n := literalAt(text, i); n > 0 {
				emit(i, i+n, Literal)
				i += n
				continue
			}
			emit(i, i+1, Plain)
			i++
		}
	}
	return spans, nil
}

// ExceedsLines reports whether text has more than max lines. It stops
// scanning as soon as the limit is passed.
func ExceedsLines(text string, max int) bool {
	if text == "" {
		return false
	}
	lines := 1
	for {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			return false
		}
		lines++
		if lines > max {
			return true
		}
		text = text[idx+1:]
	}
}

// scanString returns the end of the string literal starting at the quote at
// i and whether a closing quote was found. Literals never cross a newline;
// an unterminated literal runs to the end of its line.
func scanString(text string, i int) (int, bool) {
	j := i + 1
	for j < len(text) {
		switch text[j] {
		case '\\':
			if j+1 < len(text) && text[j+1] != '\n' {
				j += 2
			} else {
				j++
			}
		case '\n':
			return j, false
		case '"':
			return j + 1, true
		default:
			j++
		}
	}
	return len(text), false
}

func followedByColon(text string, i int) bool {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\r') {
		i++
	}
	return i < len(text) && text[i] == ':'
}

func startsNumber(text string, i int) bool {
	if i > 0 && isWordByte(text[i-1]) {
		return false
	}
	c := text[i]
	if isDigit(c) {
		return true
	}
	return (c == '-' || c == '+') && i+1 < len(text) && isDigit(text[i+1])
}

func scanNumber(text string, i int) int {
	j := i
	if text[j] == '-' || text[j] == '+' {
		j++
	}
	j = skipDigits(text, j)
	if j+1 < len(text) && text[j] == '.' && isDigit(text[j+1]) {
		j = skipDigits(text, j+1)
	}
	if j < len(text) && (text[j] == 'e' || text[j] == 'E') {
		k := j + 1
		if k < len(text) && (text[k] == '-' || text[k] == '+') {
			k++
		}
		if k < len(text) && isDigit(text[k]) {
			j = skipDigits(text, k)
		}
	}
	return j
}

var literals = []string{"true", "false", "null"}

// literalAt returns the length of the literal at i, or 0. Literals must sit
// on word boundaries so "nullable" stays plain.
func literalAt(text string, i int) int {
	if i > 0 && isWordByte(text[i-1]) {
		return 0
	}
	for _, lit := range literals {
		if strings.HasPrefix(text[i:], lit) {
			end := i + len(lit)
			if end < len(text) && isWordByte(text[end]) {
				return 0
			}
			return len(lit)
		}
	}
	return 0
}

func skipDigits(text string, j int) int {
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	return j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isPunct(c byte) bool {
	switch c {
	case '{', '}', '[', ']', ':', ',':
		return true
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c == '.' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}
