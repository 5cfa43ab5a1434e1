package webserver

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/avocado-ai/avocado-web/internal/i18n"
	"github.com/avocado-ai/avocado-web/pkg/dates"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page carries the per-request values every template needs.
type Page struct {
	Locale   string
	Path     string
	Operator string
}

// NewPage fills the common template values from c.
func NewPage(c echo.Context) Page {
	return Page{
		Locale:   Locale(c),
		Path:     c.Request().URL.Path,
		Operator: Operator(c),
	}
}

// Renderer renders html/template pages. Every page template is parsed
// together with layout.html so each gets its own "content" block.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"t":           i18n.T,
	"toggle":      i18n.Toggle,
	"displayDate": dates.ToDisplayDate,
	"join":        strings.Join,
	"langURL": func(p, locale string) string {
		return p + "?" + url.Values{i18n.LangParam: {locale}}.Encode()
	},
	"contains": func(list []string, v string) bool {
		for _, s := range list {
			if s == v {
				return true
			}
		}
		return false
	},
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, "templates/layout.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse layout")
	}
	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range names {
		file := path.Base(name)
		if file == "layout.html" {
			continue
		}
		tpl, err := template.Must(base.Clone()).ParseFS(fsys, name)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", file)
		}
		r.pages[strings.TrimSuffix(file, ".html")] = tpl
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}
	return tpl.ExecuteTemplate(w, "layout", data)
}
