package export

import (
	"strings"
	"testing"

	"github.com/sadopc/nanoman/internal/protocol"
)

func TestAsCurl_GET(t *testing.T) {
	req := protocol.Request{
		Method:  protocol.MethodGET,
		URL:     "https://api.example.com/users",
		Headers: protocol.Headers{{Name: "Accept", Value: "application/json"}},
	}

	result := AsCurl(req)
	want := "curl -H 'Accept: application/json' 'https://api.example.com/users'"
	if result != want {
		t.Errorf("got  %s\nwant %s", result, want)
	}
}

func TestAsCurl_POST(t *testing.T) {
	body := `{"name":"test"}`
	req := protocol.Request{
		Method:  protocol.MethodPOST,
		URL:     "https://api.example.com/users",
		Headers: protocol.Headers{{Name: "Content-Type", Value: "application/json"}},
		Body:    &body,
	}

	result := AsCurl(req)
	if !strings.Contains(result, "-X POST") {
		t.Error("should have -X POST")
	}
	if !strings.Contains(result, `--data-raw '{"name":"test"}'`) {
		t.Errorf("should contain body data, got: %s", result)
	}
}

func TestAsCurl_BodyOnGET(t *testing.T) {
	body := `{"query":{}}`
	result := AsCurl(protocol.Request{Method: protocol.MethodGET, URL: "http://es:9200/_search", Body: &body})
	if strings.Contains(result, "-X") || !strings.Contains(result, "--data-raw") {
		t.Errorf("unexpected command %s", result)
	}
}

func TestAsCurl_EmptyBodyIsKept(t *testing.T) {
	empty := ""
	result := AsCurl(protocol.Request{Method: protocol.MethodPOST, URL: "http://svc", Body: &empty})
	if !strings.Contains(result, "--data-raw ''") {
		t.Errorf("present empty body should be sent, got %s", result)
	}
}

func TestAsCurl_DuplicateHeadersInOrder(t *testing.T) {
	req := protocol.Request{
		Method: protocol.MethodGET,
		URL:    "http://svc",
		Headers: protocol.Headers{
			{Name: "X-B", Value: "2"},
			{Name: "X-A", Value: "1"},
			{Name: "X-B", Value: "3"},
		},
	}
	result := AsCurl(req)
	first := strings.Index(result, "X-B: 2")
	second := strings.Index(result, "X-A: 1")
	third := strings.Index(result, "X-B: 3")
	if first < 0 || second < first || third < second {
		t.Errorf("headers out of order: %s", result)
	}
}

func TestAsCurl_Escaping(t *testing.T) {
	body := `it's`
	req := protocol.Request{
		Method:  protocol.MethodPUT,
		URL:     "http://svc/a?q=it's",
		Headers: protocol.Headers{{Name: "X-Note", Value: "don't"}},
		Body:    &body,
	}
	result := AsCurl(req)
	for _, want := range []string{`'X-Note: don'\''t'`, `'it'\''s'`, `'http://svc/a?q=it'\''s'`} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %s in %s", want, result)
		}
	}
}
