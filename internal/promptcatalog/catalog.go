// Package promptcatalog loads the YAML prompt templates the generators
// render against. Each template file carries a "system" and a "user"
// message; the user message contains Go template placeholders filled in
// by the generator at call time.
package promptcatalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Template is one loaded prompt: a fixed system message and a user
// message template rendered per call.
type Template struct {
	System   string `yaml:"system"`
	User     string `yaml:"user"`
	userTmpl *template.Template
}

// Render fills the user template with data and returns the finished
// (system, user) message pair.
func (t Template) Render(data any) (system, user string, err error) {
	var buf bytes.Buffer
	if err := t.userTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("promptcatalog: rendering %w", err)
	}
	return t.System, buf.String(), nil
}

// Catalog is the set of prompt templates loaded from a directory at
// startup. Loading happens once, eagerly, so a missing or malformed
// prompt file fails fast instead of surfacing mid-request.
type Catalog struct {
	dir       string
	templates map[string]Template
}

// Load reads every *.yaml file directly under dir and parses it as a
// {system, user} template. A file missing either key is a startup error.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("promptcatalog: reading %s: %w", dir, err)
	}

	c := &Catalog{dir: dir, templates: make(map[string]Template)}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		name := entry.Name()[:len(entry.Name())-len(".yaml")]
		tmpl, err := loadOne(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		c.templates[name] = tmpl
	}
	return c, nil
}

func loadOne(path string) (Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("promptcatalog: reading %s: %w", path, err)
	}

	var t Template
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Template{}, fmt.Errorf("promptcatalog: parsing %s: %w", path, err)
	}
	if t.System == "" || t.User == "" {
		return Template{}, fmt.Errorf("promptcatalog: %s missing system or user field", path)
	}

	userTmpl, err := template.New(filepath.Base(path)).Parse(t.User)
	if err != nil {
		return Template{}, fmt.Errorf("promptcatalog: parsing user template in %s: %w", path, err)
	}
	t.userTmpl = userTmpl
	return t, nil
}

// Get returns the named template ("personal_generate", "family_generate",
// "family_recent", "summary_headline"). A missing name is a programming
// error: the catalog is loaded once at startup and every generator that
// needs a template names it at construction, so this panics rather than
// returning an error a caller would have to plumb through every call.
func (c *Catalog) Get(name string) Template {
	t, ok := c.templates[name]
	if !ok {
		panic(fmt.Sprintf("promptcatalog: no template named %q in %s", name, c.dir))
	}
	return t
}
