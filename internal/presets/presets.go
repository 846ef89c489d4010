// Package presets holds the auth presets and API templates offered by the
// template picker. A built-in catalog is embedded; users can add or
// override entries with a templates.yaml file in the config directory.
package presets

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/sadopc/nanoman/internal/protocol"
)

//go:embed catalog.yaml
var builtin []byte

// FileName is the user catalog file looked up by Load.
const FileName = "templates.yaml"

// AuthPreset is a named set of placeholder auth headers.
type AuthPreset struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Docs        string        `yaml:"docs,omitempty"`
	HeaderList  []headerEntry `yaml:"headers,omitempty"`
}

type headerEntry struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Headers returns the preset headers in declaration order.
func (a AuthPreset) Headers() protocol.Headers {
	out := make(protocol.Headers, 0, len(a.HeaderList))
	for _, h := range a.HeaderList {
		out = append(out, protocol.Header{Name: h.Name, Value: h.Value})
	}
	return out
}

// Example is one request shown under a template.
type Example struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
	Desc   string `yaml:"desc"`
}

// Template describes a well-known API.
type Template struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	BaseURL     string    `yaml:"base_url"`
	Auth        string    `yaml:"auth"`
	Description string    `yaml:"description"`
	Docs        string    `yaml:"docs,omitempty"`
	Examples    []Example `yaml:"examples"`
}

// Catalog is the merged set of presets and templates.
type Catalog struct {
	Auth      []AuthPreset `yaml:"auth"`
	Templates []Template   `yaml:"templates"`
}

// Builtin returns the embedded catalog.
func Builtin() *Catalog {
	c, err := parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("presets: embedded catalog: %v", err))
	}
	return c
}

// Load returns the embedded catalog merged with dir/templates.yaml.
// Entries in the user file replace built-in entries with the same id.
// A missing file is not an error.
func Load(dir string) (*Catalog, error) {
	c := Builtin()
	if dir == "" {
		return c, nil
	}
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("reading templates: %w", err)
	}
	user, err := parse(data)
	if err != nil {
		return c, fmt.Errorf("parsing templates: %w", err)
	}
	c.merge(user)
	return c, nil
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	for i, a := range c.Auth {
		if a.ID == "" {
			return nil, fmt.Errorf("auth preset %d has no id", i)
		}
	}
	for i, t := range c.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %d has no id", i)
		}
	}
	return &c, nil
}

func (c *Catalog) merge(o *Catalog) {
	for _, a := range o.Auth {
		if i := c.authIndex(a.ID); i >= 0 {
			c.Auth[i] = a
		} else {
			c.Auth = append(c.Auth, a)
		}
	}
	for _, t := range o.Templates {
		if i := c.templateIndex(t.ID); i >= 0 {
			c.Templates[i] = t
		} else {
			c.Templates = append(c.Templates, t)
		}
	}
}

func (c *Catalog) authIndex(id string) int {
	for i, a := range c.Auth {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) templateIndex(id string) int {
	for i, t := range c.Templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// AuthByID returns the preset with the given id, falling back to "none".
func (c *Catalog) AuthByID(id string) AuthPreset {
	if i := c.authIndex(id); i >= 0 {
		return c.Auth[i]
	}
	if i := c.authIndex("none"); i >= 0 {
		return c.Auth[i]
	}
	return AuthPreset{ID: "none", Name: "No Auth"}
}

// TemplateByName finds a template by id or display name.
func (c *Catalog) TemplateByName(name string) (Template, bool) {
	for _, t := range c.Templates {
		if t.ID == name || strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Template{}, false
}

// Request builds the request for one of the template's examples, with the
// template's auth headers applied.
func (c *Catalog) Request(t Template, ex Example) protocol.Request {
	method, err := protocol.ParseMethod(ex.Method)
	if err != nil {
		method = protocol.MethodGET
	}
	return protocol.Request{
		Method:  method,
		URL:     joinURL(t.BaseURL, ex.Path),
		Headers: c.AuthByID(t.Auth).Headers(),
	}
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// Item is a single selectable row in the template picker.
type Item struct {
	Template Template
	Example  Example
}

// Label is the text matched by Search.
func (it Item) Label() string {
	return fmt.Sprintf("%s %s %s%s", it.Template.Name, it.Example.Method, it.Example.Path, descSuffix(it.Example.Desc))
}

func descSuffix(d string) string {
	if d == "" {
		return ""
	}
	return " - " + d
}

// Items flattens the catalog into picker rows.
func (c *Catalog) Items() []Item {
	var items []Item
	for _, t := range c.Templates {
		for _, ex := range t.Examples {
			items = append(items, Item{Template: t, Example: ex})
		}
	}
	return items
}

// Search fuzzy-matches query against every item label, best match first.
// An empty query returns all items in catalog order.
func (c *Catalog) Search(query string) []Item {
	items := c.Items()
	if strings.TrimSpace(query) == "" {
		return items
	}
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label()
	}
	matches := fuzzy.Find(query, labels)
	out := make([]Item, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}
