package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/handler"
	"github.com/pkordes/trip-itinerary/internal/itinerary"
	"github.com/pkordes/trip-itinerary/internal/middleware"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	list       func(ctx context.Context, sess domain.Session) ([]domain.Trip, error)
	get        func(ctx context.Context, sess domain.Session, id int64) (domain.Trip, error)
	view       func(ctx context.Context, sess domain.Session, id int64) (domain.TripView, error)
	sharedView func(ctx context.Context, shareToken string) (domain.TripView, error)
	create     func(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.Trip, error)
	update     func(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.Trip, error)
	delete     func(ctx context.Context, sess domain.Session, id int64) error
}

func (m *mockTripServicer) List(ctx context.Context, sess domain.Session) ([]domain.Trip, error) {
	return m.list(ctx, sess)
}
func (m *mockTripServicer) Get(ctx context.Context, sess domain.Session, id int64) (domain.Trip, error) {
	return m.get(ctx, sess, id)
}
func (m *mockTripServicer) View(ctx context.Context, sess domain.Session, id int64) (domain.TripView, error) {
	return m.view(ctx, sess, id)
}
func (m *mockTripServicer) SharedView(ctx context.Context, shareToken string) (domain.TripView, error) {
	return m.sharedView(ctx, shareToken)
}
func (m *mockTripServicer) Create(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, sess, trip)
}
func (m *mockTripServicer) Update(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, sess, trip)
}
func (m *mockTripServicer) Delete(ctx context.Context, sess domain.Session, id int64) error {
	return m.delete(ctx, sess, id)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockAuthServicer is a test double for handler.AuthServicer.
type mockAuthServicer struct {
	login   func(ctx context.Context, username, password string) (domain.Session, error)
	current func(ctx context.Context, id uuid.UUID) (domain.Session, error)
	logout  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAuthServicer) Login(ctx context.Context, username, password string) (domain.Session, error) {
	return m.login(ctx, username, password)
}
func (m *mockAuthServicer) Current(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	return m.current(ctx, id)
}
func (m *mockAuthServicer) Logout(ctx context.Context, id uuid.UUID) error {
	return m.logout(ctx, id)
}

// compile-time check: mockAuthServicer must satisfy handler.AuthServicer.
var _ handler.AuthServicer = (*mockAuthServicer)(nil)

// ---- helpers ---------------------------------------------------------------

const testOrigin = "http://localhost:3000"

var sessionID = uuid.MustParse("6f1c2a0e-8d3b-4c55-9a7e-2b0c1d9e4f11")

var signedIn = domain.Session{ID: sessionID, Username: "ana", Token: "t0k"}

// signedInAuth resolves the test session cookie to signedIn.
func signedInAuth() *mockAuthServicer {
	return &mockAuthServicer{
		current: func(_ context.Context, id uuid.UUID) (domain.Session, error) {
			if id == sessionID {
				return signedIn, nil
			}
			return domain.Session{}, nil
		},
	}
}

// newHTTPHandler wires a Server with the given mocks behind the session
// loader. This mirrors how main.go wires it in production.
func newHTTPHandler(trips handler.TripServicer, auth *mockAuthServicer) http.Handler {
	if auth == nil {
		auth = &mockAuthServicer{}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(trips, auth, log, handler.Options{CORSOrigins: []string{testOrigin}})
	return middleware.NewSessionLoader(auth, log)(srv.Routes())
}

// withSession attaches the signed-in session cookie to req.
func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: sessionID.String()})
	return req
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parseHTML(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func texts(sel *goquery.Selection) []string {
	out := []string{}
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func attrs(sel *goquery.Selection, name string) []string {
	out := []string{}
	sel.Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr(name)
		out = append(out, v)
	})
	return out
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:              7,
		Name:            "Lisbon Long Weekend",
		DestinationCity: "Lisbon",
		StartDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		ShareToken:      "tok123",
		Activities: []domain.Activity{
			{ID: 11, Title: "Belem Tower", DayNumber: 2},
			{ID: 12, Title: "Alfama walk", Time: "09:30", DayNumber: 1},
			{ID: 13, Title: "Fado dinner", Time: "20:00", DayNumber: 1},
		},
	}
}

func viewFixture(editable bool) domain.TripView {
	trip := tripFixture()
	return domain.TripView{
		Trip:      trip,
		Itinerary: itinerary.Build(trip),
		Editable:  editable,
	}
}
