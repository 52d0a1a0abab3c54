// Package handler implements the HTTP surface of the itinerary web app:
// server-rendered HTML pages for browsing and editing trips, plus a few
// read-only JSON and export endpoints.
// All handlers are methods on Server. They are split into files by page
// (trip.go, form.go, auth.go, export.go) but share the same dependencies.
package handler

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/middleware"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without a trips API.
type TripServicer interface {
	List(ctx context.Context, sess domain.Session) ([]domain.Trip, error)
	Get(ctx context.Context, sess domain.Session, id int64) (domain.Trip, error)
	View(ctx context.Context, sess domain.Session, id int64) (domain.TripView, error)
	SharedView(ctx context.Context, shareToken string) (domain.TripView, error)
	Create(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.Trip, error)
	Update(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, sess domain.Session, id int64) error
}

// AuthServicer defines the session operations the handlers depend on.
// It also satisfies middleware.SessionResolver.
type AuthServicer interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Current(ctx context.Context, id uuid.UUID) (domain.Session, error)
	Logout(ctx context.Context, id uuid.UUID) error
}

// Options tunes the Server.
type Options struct {
	// CORSOrigins may call the JSON endpoints cross-origin.
	CORSOrigins []string
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips TripServicer
	auth  AuthServicer
	log   *slog.Logger
	pages map[string]*template.Template
	opts  Options
}

// NewServer constructs the Server with all its dependencies.
// It panics if the embedded templates fail to parse, which can only happen
// when the binary was built with broken templates.
func NewServer(trips TripServicer, auth AuthServicer, log *slog.Logger, opts Options) *Server {
	return &Server{
		trips: trips,
		auth:  auth,
		log:   log,
		pages: mustParsePages(),
		opts:  opts,
	}
}

// Routes returns the router for every page and endpoint. The caller applies
// the request-scoped middleware (request id, session loader, logging)
// around it, as main.go does.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.health)
	r.Get("/", s.listTrips)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderNotFound(w, r)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/new", s.newTripForm)
		r.Post("/new", s.createTrip)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.showTrip)
			r.Get("/edit", s.editTripForm)
			r.Post("/edit", s.updateTrip)
			r.Post("/delete", s.deleteTrip)
			r.Group(func(r chi.Router) {
				r.Use(middleware.NewCORSHandler(s.opts.CORSOrigins))
				r.Get("/itinerary.json", s.itineraryJSON)
				r.Get("/export", s.exportTrip)
			})
		})
	})
	r.Get("/share/{token}", s.showSharedTrip)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", s.loginForm)
		r.Post("/login", s.login)
		r.Post("/logout", s.logout)
	})

	return r
}
