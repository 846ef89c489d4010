package highlight

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func plainPalette() Palette {
	s := lipgloss.NewStyle()
	return Palette{Key: s, String: s, Number: s, Literal: s, Punctuation: s, Plain: s, ChromaStyle: "monokai"}
}

func TestIsJSONContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"Application/JSON", true},
		{"application/problem+json", true},
		{"text/json", true},
		{"text/html", false},
		{"", false},
		{"application/jsonp", false},
	}
	for _, tt := range tests {
		if got := IsJSONContentType(tt.ct); got != tt.want {
			t.Errorf("IsJSONContentType(%q) = %v, want %v", tt.ct, got, tt.want)
		}
	}
}

func TestLooksJSON(t *testing.T) {
	if !LooksJSON([]byte("  \n{\"a\":1}")) || !LooksJSON([]byte("[1]")) {
		t.Error("expected object and array to look like JSON")
	}
	if LooksJSON([]byte("hello")) || LooksJSON(nil) || LooksJSON([]byte("   ")) {
		t.Error("expected non-JSON inputs to be rejected")
	}
}

func TestFormat(t *testing.T) {
	got := string(Format([]byte(`{"name":"Nano","version":1}`)))
	if !strings.Contains(got, "\n") || !strings.Contains(got, "    ") {
		t.Errorf("expected indented output, got %q", got)
	}
	if !strings.Contains(got, `"name"`) || !strings.Contains(got, `"Nano"`) {
		t.Errorf("content lost: %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("formatted output should not end with a newline")
	}

	for _, in := range []string{"this is not json", "", `{"a":`} {
		if out := string(Format([]byte(in))); out != in {
			t.Errorf("Format(%q) = %q, want input unchanged", in, out)
		}
	}
}

func TestRenderPreservesText(t *testing.T) {
	text := "{\n  \"a\": [1, true],\n  \"b\": \"x\"\n}"
	spans, err := Highlight(text, DefaultMaxLines)
	if err != nil {
		t.Fatal(err)
	}
	if got := Render(text, spans, plainPalette()); got != text {
		t.Errorf("unstyled render changed the text:\n%q\nwant\n%q", got, text)
	}
}

func TestRenderBody_JSON(t *testing.T) {
	out, styled := RenderBody([]byte(`{"a":1}`), "application/json", 100, plainPalette())
	if !styled {
		t.Fatal("expected JSON body to be styled")
	}
	if !strings.Contains(out, `"a": 1`) {
		t.Errorf("expected pretty-printed body, got %q", out)
	}
}

func TestRenderBody_SniffsUntypedJSON(t *testing.T) {
	_, styled := RenderBody([]byte(`[1,2]`), "text/plain", 100, plainPalette())
	if !styled {
		t.Error("expected JSON-looking text/plain body to be styled")
	}
	_, styled = RenderBody([]byte(`[1,2]`), "text/csv", 100, plainPalette())
	if styled {
		t.Error("csv bodies should not be sniffed as JSON")
	}
}

func TestRenderBody_LineGuard(t *testing.T) {
	body := []byte("[" + strings.Repeat("1,\n", 50) + "1]")
	out, styled := RenderBody(body, "application/json", 10, plainPalette())
	if styled {
		t.Fatal("expected guard to skip styling")
	}
	if out == "" {
		t.Error("skipped body should still be returned for plain display")
	}

	html := []byte(strings.Repeat("<p>x</p>\n", 50))
	out, styled = RenderBody(html, "text/html", 10, plainPalette())
	if styled || out != string(html) {
		t.Error("expected guard to apply to chroma path too")
	}
}

func TestRenderBody_Chroma(t *testing.T) {
	out, styled := RenderBody([]byte("<p>hi</p>"), "text/html; charset=utf-8", 100, plainPalette())
	if !styled {
		t.Fatal("expected html to be highlighted")
	}
	if !strings.Contains(out, "hi") {
		t.Errorf("highlighted html lost content: %q", out)
	}
}

func TestRenderBody_PlainText(t *testing.T) {
	out, styled := RenderBody([]byte("just text"), "text/plain", 100, plainPalette())
	if styled || out != "just text" {
		t.Errorf("plain text should pass through, got %q styled=%v", out, styled)
	}
}
