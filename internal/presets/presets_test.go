package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sadopc/nanoman/internal/protocol"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()
	if len(c.Auth) != 5 {
		t.Errorf("expected 5 auth presets, got %d", len(c.Auth))
	}
	if len(c.Templates) != 6 {
		t.Errorf("expected 6 templates, got %d", len(c.Templates))
	}
	for _, tmpl := range c.Templates {
		if tmpl.Name == "" || tmpl.BaseURL == "" {
			t.Errorf("template %q is incomplete", tmpl.ID)
		}
		if len(tmpl.Examples) == 0 {
			t.Errorf("template %q has no examples", tmpl.ID)
		}
		if c.authIndex(tmpl.Auth) < 0 {
			t.Errorf("template %q references unknown auth %q", tmpl.ID, tmpl.Auth)
		}
	}
}

func TestAuthPresetHeaders(t *testing.T) {
	c := Builtin()
	if h := c.AuthByID("none").Headers(); len(h) != 0 {
		t.Errorf("none preset should have no headers, got %v", h)
	}
	h := c.AuthByID("api_key_header").Headers()
	if h.Get("X-Api-Key") != "<YOUR_API_KEY>" {
		t.Errorf("unexpected headers %v", h)
	}
	if c.AuthByID("missing").ID != "none" {
		t.Error("unknown preset should fall back to none")
	}
}

func TestRequest(t *testing.T) {
	c := Builtin()
	gh, ok := c.TemplateByName("GitHub API")
	if !ok {
		t.Fatal("github template not found")
	}
	req := c.Request(gh, gh.Examples[0])
	if req.Method != protocol.MethodGET {
		t.Errorf("method = %q", req.Method)
	}
	if req.URL != "https://api.github.com/user" {
		t.Errorf("url = %q", req.URL)
	}
	if req.Headers.Get("Authorization") != "Bearer <YOUR_TOKEN>" {
		t.Errorf("expected bearer header, got %v", req.Headers)
	}

	jp, _ := c.TemplateByName("jsonplaceholder")
	req = c.Request(jp, Example{Method: "post", Path: "posts"})
	if req.Method != protocol.MethodPOST || req.URL != "https://jsonplaceholder.typicode.com/posts" {
		t.Errorf("unexpected request %+v", req)
	}
	if len(req.Headers) != 0 {
		t.Errorf("no-auth template should not add headers: %v", req.Headers)
	}
}

func TestSearch(t *testing.T) {
	c := Builtin()
	all := c.Search("")
	if len(all) != len(c.Items()) {
		t.Errorf("empty query should list all %d items, got %d", len(c.Items()), len(all))
	}

	got := c.Search("teapot")
	if len(got) == 0 {
		t.Fatal("expected a match for teapot")
	}
	if got[0].Template.ID != "httpbin" || got[0].Example.Path != "/status/418" {
		t.Errorf("best match = %s %s", got[0].Template.ID, got[0].Example.Path)
	}

	if got := c.Search("zzzzqqqq"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Templates) != len(Builtin().Templates) {
		t.Error("missing user file should yield the builtin catalog")
	}
}

func TestLoad_Merge(t *testing.T) {
	dir := t.TempDir()
	data := `
auth:
  - id: bearer
    name: Bearer Token
    headers:
      - {name: Authorization, value: "Bearer dev-token"}
templates:
  - id: internal
    name: Internal Service
    base_url: http://internal-service
    auth: bearer
    examples:
      - {method: GET, path: /api/users, desc: Users}
  - id: localhost
    name: Localhost
    base_url: http://localhost:3000
    auth: none
    examples:
      - {method: GET, path: /health}
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(c.Templates) != 7 {
		t.Errorf("expected 7 templates after merge, got %d", len(c.Templates))
	}
	local, _ := c.TemplateByName("localhost")
	if local.BaseURL != "http://localhost:3000" {
		t.Errorf("override not applied: %q", local.BaseURL)
	}
	internal, ok := c.TemplateByName("internal")
	if !ok {
		t.Fatal("user template not added")
	}
	req := c.Request(internal, internal.Examples[0])
	if req.Headers.Get("Authorization") != "Bearer dev-token" {
		t.Errorf("user auth preset not applied: %v", req.Headers)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, FileName), []byte("templates: [ {"), 0644)
	c, err := Load(dir)
	if err == nil {
		t.Error("expected parse error")
	}
	if c == nil || len(c.Templates) != 6 {
		t.Error("builtin catalog should still be returned on error")
	}

	os.WriteFile(filepath.Join(dir, FileName), []byte("templates:\n  - name: no id\n"), 0644)
	if _, err := Load(dir); err == nil {
		t.Error("expected error for template without id")
	}
}
