package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/desertthunder/stayx/internal/models"
	"github.com/desertthunder/stayx/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "favorites", "error"}

var funcs = template.FuncMap{
	"field": func(f ui.Field, m ui.Modal) (template.HTML, error) {
		return f.HTML(m.Value(f), m.Error(f))
	},
	"price": func(p int) string {
		return fmt.Sprintf("$%d", p)
	},
}

// parseTemplates builds one template set per page so each can define its own "content".
func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// card is a listing tile with its heart button state.
type card struct {
	Listing  *models.Listing
	Favorite bool
	SignedIn bool
}

func cards(listings []*models.Listing, favorite func(id string) bool, signedIn bool) []card {
	out := make([]card, len(listings))
	for i, l := range listings {
		out[i] = card{Listing: l, Favorite: favorite(l.ID()), SignedIn: signedIn}
	}
	return out
}

type page struct {
	Title  string
	User   *models.User
	Modals []ui.Modal
	Toasts []ui.Toast
	Cards  []card
	View   *ui.View
	Empty  *ui.EmptyState
}

// render executes a full page. Output is buffered so a template error still yields a clean 500.
func (a *App) render(w http.ResponseWriter, status int, name string, data *page) {
	a.execute(w, status, name, "layout", data)
}

// renderPartial executes a single named template from the home set.
func (a *App) renderPartial(w http.ResponseWriter, status int, tmpl string, data any) {
	a.execute(w, status, "home", tmpl, data)
}

func (a *App) execute(w http.ResponseWriter, status int, set, tmpl string, data any) {
	var buf bytes.Buffer
	if err := a.pages[set].ExecuteTemplate(&buf, tmpl, data); err != nil {
		a.logger.Error("template failed", "page", set, "template", tmpl, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Debug("write failed", "error", err)
	}
}

// renderError shows the error page with the given status.
func (a *App) renderError(w http.ResponseWriter, r *http.Request, status int, title, subtitle string) {
	q := a.newRequest(w, r)
	p := q.page(title, nil)
	p.Empty = &ui.EmptyState{Title: title, Subtitle: subtitle}
	a.render(w, status, "error", p)
}

// serverError logs err and renders a 500 page.
func (a *App) serverError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	a.renderError(w, r, http.StatusInternalServerError, "Something went wrong.", "Please try again later.")
}
