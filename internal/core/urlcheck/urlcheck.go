// Package urlcheck decides whether a user-entered URL is safe to send.
//
// Only http and https URLs with a non-empty host are accepted. Host names
// are not required to contain a dot so intranet names such as
// http://intranet/api keep working.
package urlcheck

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// ErrInvalidURL is matched by every *InvalidURLError via errors.Is.
var ErrInvalidURL = errors.New("invalid url")

// InvalidURLError reports why a URL was rejected.
type InvalidURLError struct {
	URL    string
	Reason string
}

func (e *InvalidURLError) Error() string {
	return "invalid URL: " + e.Reason
}

func (e *InvalidURLError) Is(target error) bool {
	return target == ErrInvalidURL
}

func invalid(raw, format string, args ...any) error {
	return &InvalidURLError{URL: raw, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks raw and returns the parsed URL. Surrounding whitespace is
// trimmed first. It never panics on malformed input.
func Validate(raw string) (*url.URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, invalid(raw, "URL is empty")
	}

	scheme, rest, ok := strings.Cut(s, ":")
	if !ok || scheme == "" {
		return nil, invalid(raw, "missing scheme, only http:// and https:// are allowed")
	}
	scheme = strings.ToLower(scheme)
	if scheme != "http" && scheme != "https" {
		return nil, invalid(raw, "scheme %q is not allowed, only http:// and https:// are allowed", truncate(scheme, 16))
	}

	if hostOf(rest) == "" {
		return nil, invalid(raw, "missing host")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return nil, invalid(raw, "contains control characters")
		}
		if unicode.IsSpace(r) {
			return nil, invalid(raw, "contains whitespace")
		}
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, invalid(raw, "malformed URL")
	}
	if u.Hostname() == "" {
		return nil, invalid(raw, "missing host")
	}
	return u, nil
}

// IsValid reports whether Validate accepts raw.
func IsValid(raw string) bool {
	_, err := Validate(raw)
	return err == nil
}

// hostOf extracts the host from the part after "scheme:". It returns ""
// when there is no "//" authority or the authority has no host.
func hostOf(rest string) string {
	if !strings.HasPrefix(rest, "//") {
		return ""
	}
	authority := rest[2:]
	if i := strings.IndexAny(authority, "/?#"); i >= 0 {
		authority = authority[:i]
	}
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		authority = authority[i+1:]
	}
	if strings.HasPrefix(authority, "[") {
		end := strings.Index(authority, "]")
		if end < 0 {
			return ""
		}
		return authority[1:end]
	}
	if i := strings.LastIndex(authority, ":"); i >= 0 {
		authority = authority[:i]
	}
	return authority
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
