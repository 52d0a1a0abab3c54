package handler

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/pkordes/trip-itinerary/internal/apiclient"
	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/editor"
	"github.com/pkordes/trip-itinerary/internal/itinerary"
	"github.com/pkordes/trip-itinerary/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames are the templates rendered through layout.html.
var pageNames = []string{"list", "trip", "form", "login", "notfound", "error"}

var templateFuncs = template.FuncMap{
	// inc turns a 0-based range index into the 1-based position shown to users.
	"inc": func(i int) int { return i + 1 },
	"longDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Mon, Jan 2, 2006")
	},
	// isoDate fills <input type="date">.
	"isoDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.DateOnly)
	},
	"span":  itinerary.Span,
	"field": editor.FieldName,
	"ref": func(i int, d editor.Draft) string {
		return editor.RefAt(i, d).String()
	},
}

func mustParsePages() map[string]*template.Template {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.New(name).Funcs(templateFuncs).ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html",
		))
	}
	return pages
}

// page is the data every template receives. Data holds the page-specific
// view model.
type page struct {
	Title   string
	Session domain.Session
	Error   string
	Data    any
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	p.Session = middleware.SessionFrom(r.Context())

	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		s.log.ErrorContext(r.Context(), "template render failed", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", page{Title: "Trip Not Found"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("json encode failed", "error", err)
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

// handleError maps a service error onto a response:
// not found renders the 404 page, a missing or rejected session sends the
// user to the login page, and anything else is logged and rendered as a
// generic error page. Upstream API failures answer 502.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isNotFound(err):
		s.renderNotFound(w, r)
	case isUnauthorized(err):
		redirectToLogin(w, r)
	default:
		status := http.StatusInternalServerError
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			status = http.StatusBadGateway
		}
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		s.render(w, r, status, "error", page{
			Title: "Something went wrong",
			Error: "The trips service could not complete the request. Please try again.",
		})
	}
}

func isNotFound(err error) bool     { return errors.Is(err, domain.ErrNotFound) }
func isUnauthorized(err error) bool { return errors.Is(err, domain.ErrUnauthorized) }
func isValidation(err error) bool   { return errors.Is(err, domain.ErrValidation) }

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return capitalize(msg[i+len(prefix):])
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// tripPath returns the URL of a trip's itinerary page.
func tripPath(id int64) string {
	return fmt.Sprintf("/trips/%d", id)
}
