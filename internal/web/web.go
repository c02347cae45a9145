// Package web holds the dashboard's HTML pages and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed templates static
var files embed.FS

// Page names accepted by Pages.Render.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageServices = "services"
)

// Pages renders the dashboard pages. Each page is parsed together with
// the shared layout.
type Pages struct {
	templates map[string]*template.Template
}

// New parses every page template.
func New() (*Pages, error) {
	p := &Pages{templates: make(map[string]*template.Template)}

	for _, name := range []string{PageHome, PageAbout, PageServices} {
		tmpl, err := template.ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		p.templates[name] = tmpl
	}

	return p, nil
}

// Render writes page name to w with data.
func (p *Pages) Render(w io.Writer, name string, data any) error {
	tmpl, ok := p.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	return tmpl.ExecuteTemplate(w, "layout", data)
}

// Static serves the embedded static assets. Mount it with the /static/
// prefix stripped.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}

	return http.FileServer(http.FS(sub))
}
