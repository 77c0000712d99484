package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrovia/agroexport-web/internal/pricing"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const layoutFile = "templates/layout.tmpl"

var funcMap = template.FuncMap{
	"money": func(amount decimal.Decimal) string {
		return pricing.FormatAmount(amount)
	},
	"moneyPtr": func(amount *decimal.Decimal) string {
		if amount == nil {
			return ""
		}
		return pricing.FormatAmount(*amount)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006")
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

// Renderer holds one parsed template set per page, each sharing the base
// layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	entries, err := fs.Glob(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, file := range entries {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".tmpl")
		tmpl, err := template.New("layout.tmpl").Funcs(funcMap).ParseFS(templatesFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", file, err)
		}
		pages[name] = tmpl
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	return &Renderer{pages: pages}, nil
}

// Render writes a page. The page buffers first so a template fault cannot
// leave a half-written body behind a 200 status.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.tmpl", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether a page template exists. Route wiring checks this at
// startup so a missing template fails fast instead of at first request.
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}
