package highlight

import (
	"bytes"
	"mime"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Palette maps span categories to terminal styles.
type Palette struct {
	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Literal     lipgloss.Style
	Punctuation lipgloss.Style
	Plain       lipgloss.Style

	// ChromaStyle names the chroma style used for non-JSON bodies.
	ChromaStyle string
}

// Style returns the style for cat.
func (p Palette) Style(cat Category) lipgloss.Style {
	switch cat {
	case Key:
		return p.Key
	case String:
		return p.String
	case Number:
		return p.Number
	case Literal:
		return p.Literal
	case Punctuation:
		return p.Punctuation
	default:
		return p.Plain
	}
}

// Render applies p to text according to spans. Each line of a span is
// styled separately so lipgloss does not pad multi-line spans.
func Render(text string, spans []Span, p Palette) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, sp := range spans {
		style := p.Style(sp.Category)
		segment := text[sp.Start:sp.End]
		for {
			line, rest, more := strings.Cut(segment, "\n")
			if line != "" {
				b.WriteString(style.Render(line))
			}
			if !more {
				break
			}
			b.WriteByte('\n')
			segment = rest
		}
	}
	return b.String()
}

// RenderBody renders a response body for display. JSON bodies (by content
// type, or by shape when the type says nothing useful) are pretty-printed
// and tokenized; html, xml, javascript and css go through chroma. The
// returned flag is false when the body was left unstyled, either because
// no highlighter applies or because it has more than maxLines lines.
func RenderBody(body []byte, contentType string, maxLines int, p Palette) (string, bool) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	if IsJSONContentType(contentType) || (isUntyped(contentType) && LooksJSON(body)) {
		text := string(Format(body))
		spans, err := Highlight(text, maxLines)
		if err != nil {
			return text, false
		}
		return Render(text, spans, p), true
	}

	text := string(body)
	lexerName := detectLexer(contentType)
	if lexerName == "" || ExceedsLines(text, maxLines) {
		return text, false
	}
	out, err := chromaHighlight(text, lexerName, p.ChromaStyle)
	if err != nil {
		return text, false
	}
	return out, true
}

func isUntyped(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return true
	}
	return mediaType == "text/plain" || mediaType == "application/octet-stream"
}

// detectLexer maps a Content-Type to a chroma lexer name, or "".
func detectLexer(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "html"):
		return "html"
	case strings.Contains(ct, "xml"):
		return "xml"
	case strings.Contains(ct, "javascript"):
		return "javascript"
	case strings.Contains(ct, "text/css"):
		return "css"
	default:
		return ""
	}
}

func chromaHighlight(source, lexerName, styleName string) (string, error) {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(styleName)
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}
