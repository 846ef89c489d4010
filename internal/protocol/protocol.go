package protocol

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Transport performs a single HTTP exchange. Implementations must honor
// ctx cancellation and deadlines.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Method is an HTTP request method supported by the request editor.
type Method string

const (
	MethodGET    Method = "GET"
	MethodPOST   Method = "POST"
	MethodPUT    Method = "PUT"
	MethodPATCH  Method = "PATCH"
	MethodDELETE Method = "DELETE"
)

// Methods lists the supported methods in editor cycling order.
var Methods = []Method{MethodGET, MethodPOST, MethodPUT, MethodPATCH, MethodDELETE}

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unsupported method: %q", s)
}

// Next returns the method after m in cycling order.
func (m Method) Next() Method {
	for i, known := range Methods {
		if m == known {
			return Methods[(i+1)%len(Methods)]
		}
	}
	return MethodGET
}

// Header is a single header line. Headers keep their order and may repeat.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header list.
type Headers []Header

// Get returns the first value for name, compared case-insensitively.
func (h Headers) Get(name string) string {
	for _, hd := range h {
		if strings.EqualFold(hd.Name, name) {
			return hd.Value
		}
	}
	return ""
}

// Values returns every value for name in order.
func (h Headers) Values(name string) []string {
	var vals []string
	for _, hd := range h {
		if strings.EqualFold(hd.Name, name) {
			vals = append(vals, hd.Value)
		}
	}
	return vals
}

// Clone returns a copy of h.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	out := make(Headers, len(h))
	copy(out, h)
	return out
}

// String renders headers as "Name: value" lines.
func (h Headers) String() string {
	var b strings.Builder
	for i, hd := range h {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(hd.Name)
		b.WriteString(": ")
		b.WriteString(hd.Value)
	}
	return b.String()
}

// ParseHeaders parses "Name: value" lines. Lines without a colon or with
// an empty name are ignored; duplicates are kept.
func ParseHeaders(text string) Headers {
	var headers Headers
	for _, line := range strings.Split(text, "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		headers = append(headers, Header{Name: name, Value: strings.TrimSpace(value)})
	}
	return headers
}

// Request describes one HTTP call as composed by the user.
type Request struct {
	Method  Method
	URL     string
	Headers Headers
	Body    *string // nil when no body was supplied
}

// Clone returns a deep copy so the caller can keep editing its own value.
func (r Request) Clone() Request {
	out := r
	out.Headers = r.Headers.Clone()
	if r.Body != nil {
		body := *r.Body
		out.Body = &body
	}
	return out
}

// BodyString returns the body or "" when none was supplied.
func (r Request) BodyString() string {
	if r.Body == nil {
		return ""
	}
	return *r.Body
}

// Response is the outcome of a completed HTTP exchange.
type Response struct {
	StatusCode  int
	Status      string
	Elapsed     time.Duration
	Headers     Headers
	Body        []byte
	ContentType string
	Size        int64
	Proto       string
}

// ElapsedMillis returns the elapsed time in milliseconds.
func (r *Response) ElapsedMillis() float64 {
	if r.Elapsed < 0 {
		return 0
	}
	return float64(r.Elapsed) / float64(time.Millisecond)
}
