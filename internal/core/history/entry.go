package history

import (
	"net/url"
	"time"
)

// Entry is the durable record of one attempted request. It holds exactly
// these five fields; request and response headers and bodies are never
// part of history.
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	Method     string    `json:"method"`
	URL        string    `json:"url"`
	StatusCode *int      `json:"status_code"` // nil when no response was received
	ElapsedMS  float64   `json:"elapsed_ms"`
}

// NewEntry builds an Entry from the allowed fields only. Any password in
// the URL's userinfo is dropped.
func NewEntry(ts time.Time, method, rawURL string, status *int, elapsed time.Duration) Entry {
	if elapsed < 0 {
		elapsed = 0
	}
	var code *int
	if status != nil {
		c := *status
		code = &c
	}
	return Entry{
		Timestamp:  ts.UTC().Round(0),
		Method:     method,
		URL:        redactURL(rawURL),
		StatusCode: code,
		ElapsedMS:  float64(elapsed) / float64(time.Millisecond),
	}
}

// Status returns a pointer to code for use with NewEntry.
func Status(code int) *int {
	return &code
}

// Failed reports whether the attempt ended without a response.
func (e Entry) Failed() bool {
	return e.StatusCode == nil
}

// Elapsed returns ElapsedMS as a duration.
func (e Entry) Elapsed() time.Duration {
	return time.Duration(e.ElapsedMS * float64(time.Millisecond))
}

func (e Entry) valid() bool {
	return !e.Timestamp.IsZero() && e.Method != "" && e.URL != "" && e.ElapsedMS >= 0
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); !hasPassword {
		return raw
	}
	u.User = url.User(u.User.Username())
	return u.String()
}
