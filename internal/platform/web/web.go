// Package web renders server-side HTML pages inside a shared layout.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/layout.html
var layoutFS embed.FS

var layout = template.Must(template.ParseFS(layoutFS, "templates/layout.html"))

// Renderer holds one template tree per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses each named file in fsys as a page. A page file defines a
// "content" template; the page is addressed by its file name.
func NewRenderer(fsys fs.FS, files ...string) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		base, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		page, err := base.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", file, err)
		}
		pages[file] = page
	}
	return &Renderer{pages: pages}, nil
}

// MustRenderer is NewRenderer for embedded templates known at compile time.
func MustRenderer(fsys fs.FS, files ...string) *Renderer {
	r, err := NewRenderer(fsys, files...)
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes page into a buffer first so a template error never leaves a
// half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
