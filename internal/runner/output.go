package runner

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/nanoman/internal/dispatch"
	"github.com/sadopc/nanoman/internal/highlight"
)

// TextOptions controls PrintText.
type TextOptions struct {
	// Verbose prints the status line and response headers before a body.
	Verbose bool
	// Query is an optional gjson path applied to each body.
	Query string
	// Color enables highlighting with Palette.
	Color    bool
	Palette  highlight.Palette
	MaxLines int
}

// PrintText outputs results in human-readable format. A single result
// prints just its body, like curl; several print one summary line each.
// It returns the first query error, if any.
func PrintText(w io.Writer, results []Result, opts TextOptions) error {
	if len(results) == 1 {
		return printSingle(w, results[0], opts)
	}

	var queryErr error
	errorsN := 0
	for _, r := range results {
		icon := "✓"
		if r.Error != nil {
			icon = "✗"
			errorsN++
			fmt.Fprintf(w, "%s %-6s %-50s  %-8s\n", icon, r.Method, truncate(r.URL, 50), formatDuration(r.Duration))
			fmt.Fprintf(w, "  └ %s: %s\n", dispatch.KindOf(r.Error), r.Error)
			continue
		}
		if r.StatusCode >= 400 {
			icon = "✗"
		}
		fmt.Fprintf(w, "%s %-6s %-50s  %s  %s  %s\n",
			icon, r.Method, truncate(r.URL, 50), statusLine(r), formatDuration(r.Duration), humanize.IBytes(uint64(r.Size)))

		if opts.Query != "" {
			out, err := Query(r.Body, opts.Query)
			if err != nil {
				fmt.Fprintf(w, "  └ %v\n", err)
				if queryErr == nil {
					queryErr = err
				}
				continue
			}
			fmt.Fprintf(w, "  %s\n", out)
		} else if opts.Verbose && len(r.Body) > 0 {
			fmt.Fprintf(w, "  --- Response Body ---\n")
			for _, line := range strings.Split(renderBody(r.Body, r.ContentType, opts), "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
			fmt.Fprintf(w, "  ---------------------\n")
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Requests: %d total, %d errors\n", len(results), errorsN)
	return queryErr
}

func printSingle(w io.Writer, r Result, opts TextOptions) error {
	if r.Error != nil {
		fmt.Fprintf(w, "Error (%s): %s\n", dispatch.KindOf(r.Error), r.Error)
		return nil
	}

	if opts.Verbose {
		proto := r.Proto
		if proto == "" {
			proto = "HTTP/1.1"
		}
		fmt.Fprintf(w, "%s %s  (%s, %s)\n", proto, statusLine(r), formatDuration(r.Duration), humanize.IBytes(uint64(r.Size)))
		for _, h := range r.Headers {
			fmt.Fprintf(w, "%s: %s\n", h.Name, h.Value)
		}
		fmt.Fprintln(w)
	}

	if opts.Query != "" {
		out, err := Query(r.Body, opts.Query)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, renderBody([]byte(out), "application/json", opts))
		return nil
	}

	if len(r.Body) > 0 {
		body := renderBody(r.Body, r.ContentType, opts)
		fmt.Fprint(w, body)
		if !strings.HasSuffix(body, "\n") {
			fmt.Fprintln(w)
		}
	}
	return nil
}

// renderBody pretty-prints JSON and highlights it when color is enabled.
func renderBody(body []byte, contentType string, opts TextOptions) string {
	if opts.Color {
		out, _ := highlight.RenderBody(body, contentType, opts.MaxLines, opts.Palette)
		return out
	}
	if highlight.IsJSONContentType(contentType) || highlight.LooksJSON(body) {
		return string(highlight.Format(body))
	}
	return string(body)
}

type jsonHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type jsonResult struct {
	ID          string       `json:"id"`
	Method      string       `json:"method"`
	URL         string       `json:"url"`
	StatusCode  int          `json:"status_code,omitempty"`
	Status      string       `json:"status,omitempty"`
	ElapsedMS   float64      `json:"elapsed_ms"`
	Size        int64        `json:"size"`
	ContentType string       `json:"content_type,omitempty"`
	Headers     []jsonHeader `json:"headers,omitempty"`
	Body        string       `json:"body,omitempty"`
	ErrorKind   string       `json:"error_kind,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// PrintJSON outputs results as JSON.
func PrintJSON(w io.Writer, results []Result) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		jr := jsonResult{
			ID:          r.ID,
			Method:      r.Method,
			URL:         r.URL,
			StatusCode:  r.StatusCode,
			Status:      r.Status,
			ElapsedMS:   float64(r.Duration) / float64(time.Millisecond),
			Size:        r.Size,
			ContentType: r.ContentType,
			Body:        string(r.Body),
		}
		for _, h := range r.Headers {
			jr.Headers = append(jr.Headers, jsonHeader{Name: h.Name, Value: h.Value})
		}
		if r.Error != nil {
			jr.ErrorKind = dispatch.KindOf(r.Error).String()
			jr.Error = r.Error.Error()
		}
		out[i] = jr
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// junitTestSuites is the root JUnit XML element.
type junitTestSuites struct {
	XMLName xml.Name         `xml:"testsuites"`
	Suites  []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Errors   int             `xml:"errors,attr"`
	Time     float64         `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Error     *junitError   `xml:"error,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

type junitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// PrintJUnit outputs results as JUnit XML for CI, one test case per
// request. HTTP error statuses count as failures.
func PrintJUnit(w io.Writer, results []Result) error {
	suite := junitTestSuite{Name: "nanoman", Tests: len(results)}

	for _, r := range results {
		tc := junitTestCase{
			Name:      r.Method + " " + r.URL,
			ClassName: "nanoman.send",
			Time:      r.Duration.Seconds(),
		}
		suite.Time += r.Duration.Seconds()

		switch {
		case r.Error != nil:
			suite.Errors++
			tc.Error = &junitError{
				Message: r.Error.Error(),
				Type:    dispatch.KindOf(r.Error).String(),
				Content: r.Error.Error(),
			}
		case r.StatusCode >= 400:
			suite.Failures++
			tc.Failure = &junitFailure{
				Message: fmt.Sprintf("HTTP %d", r.StatusCode),
				Type:    "HTTPError",
				Content: r.Status,
			}
		}
		suite.Cases = append(suite.Cases, tc)
	}

	fmt.Fprint(w, xml.Header)
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(junitTestSuites{Suites: []junitTestSuite{suite}}); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func statusLine(r Result) string {
	if r.Status != "" {
		return r.Status
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s", r.StatusCode, http.StatusText(r.StatusCode)))
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
