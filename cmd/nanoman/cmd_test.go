package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/nanoman/internal/config"
	"github.com/sadopc/nanoman/internal/core/history"
	"github.com/sadopc/nanoman/internal/presets"
	"github.com/sadopc/nanoman/internal/protocol"
)

func TestParseInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	var headers headerFlags
	method := fs.String("X", "GET", "")
	fs.Var(&headers, "H", "")

	args := []string{"-X", "POST", "https://a.example.com", "-H", "A: 1", "https://b.example.com", "-H", "A: 2"}
	pos, err := parseInterspersed(fs, args)
	if err != nil {
		t.Fatal(err)
	}
	if *method != "POST" {
		t.Errorf("method = %q", *method)
	}
	if len(pos) != 2 || pos[0] != "https://a.example.com" || pos[1] != "https://b.example.com" {
		t.Errorf("positional = %v", pos)
	}
	if len(headers) != 2 || headers[1] != "A: 2" {
		t.Errorf("headers = %v", headers)
	}
}

func TestFlagSet(t *testing.T) {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	var data string
	fs.StringVar(&data, "d", "", "")
	fs.StringVar(&data, "data", "", "")

	if err := fs.Parse([]string{"--data", ""}); err != nil {
		t.Fatal(err)
	}
	if !flagSet(fs, "d", "data") {
		t.Error("an explicitly empty body still counts as set")
	}
	if flagSet(fs, "X") {
		t.Error("X was not given")
	}
}

func TestBuildRequests(t *testing.T) {
	body := `{"name":"x"}`
	reqs, err := buildRequests("post", []string{"Accept: application/json", "X-Trace: a:b"}, &body,
		[]string{"https://a.example.com", "https://b.example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 2 {
		t.Fatalf("got %d requests", len(reqs))
	}
	r := reqs[1]
	if r.Method != protocol.MethodPOST || r.URL != "https://b.example.com" {
		t.Errorf("request = %s %s", r.Method, r.URL)
	}
	if r.Headers.Get("X-Trace") != "a:b" {
		t.Errorf("header value with colon = %q", r.Headers.Get("X-Trace"))
	}
	if r.BodyString() != body {
		t.Errorf("body = %q", r.BodyString())
	}

	if _, err := buildRequests("TRACE", nil, nil, []string{"https://a.example.com"}); err == nil {
		t.Error("expected unsupported method error")
	}
	if _, err := buildRequests("GET", []string{"no colon"}, nil, []string{"https://a.example.com"}); err == nil {
		t.Error("expected invalid header error")
	}
}

func TestRequestsFromCurl(t *testing.T) {
	reqs, err := requestsFromCurl(`curl -X PATCH -H 'A: 1' -d x https://a.example.com`, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 1 || reqs[0].Method != protocol.MethodPATCH || reqs[0].URL != "https://a.example.com" {
		t.Fatalf("reqs = %+v", reqs)
	}

	stdin := strings.NewReader("curl -H 'A: 1' https://ignored.example.com")
	reqs, err = requestsFromCurl("@-", stdin, []string{"https://b.example.com", "https://c.example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 2 || reqs[1].URL != "https://c.example.com" || reqs[1].Headers.Get("A") != "1" {
		t.Fatalf("reqs = %+v", reqs)
	}

	if _, err := requestsFromCurl("curl -s", nil, nil); err == nil {
		t.Error("expected error for curl command without URL")
	}
}

func TestReadBody(t *testing.T) {
	got, err := readBody("plain", nil)
	if err != nil || got != "plain" {
		t.Errorf("plain = %q, %v", got, err)
	}

	got, err = readBody("@-", strings.NewReader("from stdin"))
	if err != nil || got != "from stdin" {
		t.Errorf("stdin = %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "body.json")
	if err := os.WriteFile(path, []byte(`{"a":1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = readBody("@"+path, nil)
	if err != nil || got != `{"a":1}` {
		t.Errorf("file = %q, %v", got, err)
	}

	if _, err := readBody("@"+filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUseColor(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !useColor("always", f) {
		t.Error("always should force color")
	}
	if useColor("never", f) {
		t.Error("never should disable color")
	}
	if useColor("auto", f) {
		t.Error("a regular file is not a terminal")
	}
}

func TestPrintEntries(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []history.Entry{
		history.NewEntry(now.Add(-2*time.Minute), "GET", "https://httpbin.org/get", history.Status(200), 85*time.Millisecond),
		history.NewEntry(now.Add(-time.Hour), "POST", "http://slow.example.com", nil, 10*time.Second),
	}

	var buf bytes.Buffer
	printEntries(&buf, entries, now)
	out := buf.String()
	for _, want := range []string{"2 minutes ago", "GET", "200", "85ms", "ERR", "10000ms", "https://httpbin.org/get"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printEntries(&buf, nil, now)
	if !strings.Contains(buf.String(), "No history") {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestNewestFirst(t *testing.T) {
	now := time.Now()
	var entries []history.Entry
	for i := range 5 {
		entries = append(entries, history.NewEntry(now.Add(time.Duration(i)*time.Second), "GET",
			"https://example.com/"+string(rune('a'+i)), history.Status(200), 0))
	}
	got := newestFirst(entries, 2)
	if len(got) != 2 || got[0].URL != "https://example.com/e" || got[1].URL != "https://example.com/d" {
		t.Errorf("newestFirst = %v", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.input), &out, "sure? "); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "sure? " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestPrintTemplates(t *testing.T) {
	c := presets.Builtin()
	items := c.Items()
	if len(items) == 0 {
		t.Skip("catalog is empty")
	}

	var buf bytes.Buffer
	printTemplates(&buf, c, "", false)
	if lines := strings.Count(buf.String(), "\n"); lines != len(items) {
		t.Errorf("listed %d lines, want %d", lines, len(items))
	}

	buf.Reset()
	printTemplates(&buf, c, "", true)
	if !strings.Contains(buf.String(), "curl ") {
		t.Errorf("curl output missing curl command:\n%s", buf.String())
	}

	buf.Reset()
	printTemplates(&buf, c, "zzzzqqqqxxxx", false)
	if !strings.Contains(buf.String(), "No templates match") {
		t.Errorf("no-match output = %q", buf.String())
	}
}

func TestValidateURLs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ok := validateURLs(&stdout, &stderr, []string{"https://httpbin.org/get", "http://intranet/api", "ftp://files.example.com"})
	if ok {
		t.Error("expected failure for ftp URL")
	}
	if strings.Count(stdout.String(), "OK") != 2 {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "FAIL ftp://files.example.com") || !strings.Contains(stderr.String(), "not allowed") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestOpenHistory_Backends(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)

			cfg := config.DefaultConfig()
			cfg.HistoryBackend = backend
			store, err := openHistory(cfg, cliLogger(false))
			if err != nil {
				t.Fatalf("openHistory: %v", err)
			}
			if err := store.Append(history.NewEntry(time.Now(), "GET", "https://example.com", history.Status(200), time.Millisecond)); err != nil {
				t.Fatal(err)
			}
			if err := store.Close(); err != nil {
				t.Fatal(err)
			}

			if _, err := os.Stat(filepath.Join(home, ".config", "nanoman", cfg.HistoryFile())); err != nil {
				t.Errorf("history file not written: %v", err)
			}

			reopened, err := openHistory(cfg, cliLogger(false))
			if err != nil {
				t.Fatal(err)
			}
			defer reopened.Close()
			if reopened.Len() != 1 {
				t.Errorf("reopened len = %d, want 1", reopened.Len())
			}
		})
	}
}
