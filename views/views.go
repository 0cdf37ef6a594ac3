// Package views renders the server-side HTML pages from templates embedded in
// the binary.
package views

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFiles embed.FS

type Renderer struct {
	tpl *template.Template
}

func New() (*Renderer, error) {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpl: tpl}, nil
}

// Render executes the page template with the given name (e.g. "login.html").
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	return r.tpl.ExecuteTemplate(w, name, data)
}
