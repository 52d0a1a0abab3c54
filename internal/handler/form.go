package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/editor"
	"github.com/pkordes/trip-itinerary/internal/middleware"
)

// formView is the view model of form.html. TripID is zero on the create form.
type formView struct {
	TripID int64
	Action string
	Cancel string
	Trip   domain.Trip
	Drafts []editor.Draft
}

func newFormView(trip domain.Trip, list *editor.List) formView {
	v := formView{
		TripID: trip.ID,
		Action: "/trips/new",
		Cancel: "/",
		Trip:   trip,
		Drafts: list.Items(),
	}
	if trip.ID != 0 {
		v.Action = tripPath(trip.ID) + "/edit"
		v.Cancel = tripPath(trip.ID)
	}
	return v
}

// newTripForm handles GET /trips/new.
func (s *Server) newTripForm(w http.ResponseWriter, r *http.Request) {
	if !middleware.SessionFrom(r.Context()).Authenticated() {
		redirectToLogin(w, r)
		return
	}
	s.renderForm(w, r, http.StatusOK, domain.Trip{}, &editor.List{}, "")
}

// editTripForm handles GET /trips/{id}/edit.
func (s *Server) editTripForm(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFrom(r.Context())
	if !sess.Authenticated() {
		redirectToLogin(w, r)
		return
	}
	id, ok := tripID(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}
	trip, err := s.trips.Get(r.Context(), sess, id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.renderForm(w, r, http.StatusOK, trip, editor.FromActivities(trip.Activities), "")
}

// createTrip handles POST /trips/new.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	s.submitTrip(w, r, 0)
}

// updateTrip handles POST /trips/{id}/edit.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}
	s.submitTrip(w, r, id)
}

// submitTrip runs one press of a form button. Add and remove only edit the
// activity list and re-render the form; save sends the trip to the API and
// redirects to its itinerary. A rejected save re-renders the form with the
// user's input and an inline message.
func (s *Server) submitTrip(w http.ResponseWriter, r *http.Request, id int64) {
	sess := middleware.SessionFrom(r.Context())
	if !sess.Authenticated() {
		redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	cmd, err := editor.ParseCommand(r.PostForm.Get("cmd"))
	if err != nil {
		http.Error(w, "unknown form command", http.StatusBadRequest)
		return
	}

	trip := tripFromForm(r.PostForm)
	trip.ID = id
	list := editor.ParseForm(r.PostForm)

	if cmd.Action != editor.ActionSave {
		list.Apply(cmd)
		s.renderForm(w, r, http.StatusOK, trip, list, "")
		return
	}

	trip.Activities = list.Activities()
	var saved domain.Trip
	if id == 0 {
		saved, err = s.trips.Create(r.Context(), sess, trip)
	} else {
		saved, err = s.trips.Update(r.Context(), sess, trip)
	}
	switch {
	case err == nil:
		s.log.InfoContext(r.Context(), "trip saved", "trip_id", saved.ID, "activities", len(saved.Activities))
		http.Redirect(w, r, tripPath(saved.ID), http.StatusSeeOther)
	case isValidation(err):
		s.renderForm(w, r, http.StatusUnprocessableEntity, trip, list, unwrapMessage(err))
	case isNotFound(err), isUnauthorized(err):
		s.handleError(w, r, err)
	default:
		s.log.ErrorContext(r.Context(), "trip save failed", "trip_id", id, "error", err)
		s.renderForm(w, r, http.StatusBadGateway, trip, list, "The trip could not be saved. Please try again.")
	}
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, trip domain.Trip, list *editor.List, msg string) {
	title := "New trip"
	if trip.ID != 0 {
		title = "Edit " + trip.Name
	}
	s.render(w, r, status, "form", page{Title: title, Error: msg, Data: newFormView(trip, list)})
}

// tripFromForm reads the trip's own fields. Unparseable dates are left zero
// so that validation reports them.
func tripFromForm(form url.Values) domain.Trip {
	get := func(key string) string { return strings.TrimSpace(form.Get(key)) }
	trip := domain.Trip{
		Name:            get("name"),
		DestinationCity: get("destination_city"),
	}
	var d openapi_types.Date
	if err := d.UnmarshalText([]byte(get("start_date"))); err == nil {
		trip.StartDate = d.Time
	}
	if err := d.UnmarshalText([]byte(get("end_date"))); err == nil {
		trip.EndDate = d.Time
	}
	return trip
}
