package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home", "about", "services", "case_studies", "work",
	"testimonials", "contact", "login", "admin",
}

var funcs = template.FuncMap{
	"formState": func(tab string, editing bool) formState {
		return formState{Tab: tab, Editing: editing}
	},
	"rowRef": func(tab string, id int64) rowRef {
		return rowRef{Tab: tab, ID: id}
	},
	"initial": func(s string) string {
		for _, r := range s {
			return string(r)
		}
		return ""
	},
}

type formState struct {
	Tab     string
	Editing bool
}

type rowRef struct {
	Tab string
	ID  int64
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames)), now: time.Now}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// NewPage fills in the layout fields for a page in section.
func (r *Renderer) NewPage(section Section, title string, data any) Page {
	return Page{
		Section:   section,
		Title:     title,
		Year:      r.now().Year(),
		Nav:       DesktopNav(),
		MobileNav: MobileNav(),
		Data:      data,
	}
}

// Render writes the named page. Output is buffered so a template error never
// leaves a half-written page.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
