// Package runner executes requests headlessly through the dispatcher and
// formats their outcomes for the CLI.
package runner

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sadopc/nanoman/internal/dispatch"
	"github.com/sadopc/nanoman/internal/protocol"
)

// Submitter sends a request in the background. *dispatch.Dispatcher
// satisfies it.
type Submitter interface {
	Submit(req protocol.Request, onComplete func(dispatch.Outcome))
}

// Result is the outcome of one headless request.
type Result struct {
	ID          string
	Method      string
	URL         string
	StatusCode  int
	Status      string
	Proto       string
	Duration    time.Duration
	Size        int64
	ContentType string
	Headers     protocol.Headers
	Body        []byte
	Error       error
}

// Failed reports whether no response was received.
func (r Result) Failed() bool {
	return r.Error != nil
}

// FromOutcome converts a dispatcher outcome.
func FromOutcome(o dispatch.Outcome) Result {
	r := Result{
		ID:       o.ID,
		Method:   string(o.Request.Method),
		URL:      o.Request.URL,
		Duration: o.Elapsed,
		Error:    o.Err,
	}
	if resp := o.Response; resp != nil {
		r.StatusCode = resp.StatusCode
		r.Status = resp.Status
		r.Proto = resp.Proto
		r.Size = resp.Size
		r.ContentType = resp.ContentType
		r.Headers = resp.Headers
		r.Body = resp.Body
		r.Duration = resp.Elapsed
	}
	return r
}

// Run submits every request at once and waits for all of them. Results
// are returned in submission order; the dispatcher bounds concurrency.
func Run(s Submitter, reqs []protocol.Request) []Result {
	results := make([]Result, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		s.Submit(req, func(o dispatch.Outcome) {
			defer wg.Done()
			results[i] = FromOutcome(o)
		})
	}
	wg.Wait()
	return results
}

// ErrNotJSON is returned by Query for bodies that are not valid JSON.
var ErrNotJSON = errors.New("response body is not JSON")

// Query evaluates a gjson path against body and returns the raw JSON of
// the match.
func Query(body []byte, path string) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", ErrNotJSON
	}
	res := gjson.GetBytes(body, path)
	if !res.Exists() {
		return "", fmt.Errorf("query %q: no match", path)
	}
	return res.Raw, nil
}

// ExitCode returns the process exit code for results.
// 0 = all succeeded, 1 = HTTP error status with failOnStatus, 2 = request errors.
func ExitCode(results []Result, failOnStatus bool) int {
	hasErrors := false
	hasBadStatus := false
	for _, r := range results {
		if r.Error != nil {
			hasErrors = true
		}
		if r.StatusCode >= 400 {
			hasBadStatus = true
		}
	}
	if hasErrors {
		return 2
	}
	if failOnStatus && hasBadStatus {
		return 1
	}
	return 0
}
