package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/middleware"
)

// listTrips handles GET /.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), middleware.SessionFrom(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "list", page{Title: "My Trips", Data: trips})
}

// showTrip handles GET /trips/{id}.
func (s *Server) showTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}
	view, err := s.trips.View(r.Context(), middleware.SessionFrom(r.Context()), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "trip", page{Title: view.Trip.Name, Data: view})
}

// showSharedTrip handles GET /share/{token}. The page is always read-only,
// whoever is signed in.
func (s *Server) showSharedTrip(w http.ResponseWriter, r *http.Request) {
	view, err := s.trips.SharedView(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "trip", page{Title: view.Trip.Name, Data: view})
}

// deleteTrip handles POST /trips/{id}/delete.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}
	if err := s.trips.Delete(r.Context(), middleware.SessionFrom(r.Context()), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.log.InfoContext(r.Context(), "trip deleted", "trip_id", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// itineraryJSON handles GET /trips/{id}/itinerary.json.
func (s *Server) itineraryJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "trip not found"})
		return
	}
	view, err := s.trips.View(r.Context(), middleware.SessionFrom(r.Context()), id)
	if err != nil {
		s.jsonError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, viewToResponse(view))
}

// tripID binds the {id} path parameter. A value that is not a positive
// integer cannot name a trip, so callers treat it as not found.
func tripID(r *http.Request) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// --- JSON view model --------------------------------------------------------

type errorResponse struct {
	Error string `json:"error"`
}

type itineraryResponse struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	DestinationCity string             `json:"destination_city"`
	StartDate       openapi_types.Date `json:"start_date"`
	EndDate         openapi_types.Date `json:"end_date"`
	Span            int                `json:"span"`
	Days            []dayResponse      `json:"days"`
	PhotoURL        string             `json:"photo_url,omitempty"`
	Weather         *weatherResponse   `json:"weather,omitempty"`
	Editable        bool               `json:"editable"`
}

type dayResponse struct {
	DayNumber  int                `json:"day_number"`
	Date       openapi_types.Date `json:"date"`
	BeyondEnd  bool               `json:"beyond_end,omitempty"`
	Activities []activityResponse `json:"activities"`
}

type activityResponse struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Time  *string `json:"time"`
}

type weatherResponse struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	TempC       int    `json:"temp_c"`
	Icon        string `json:"icon"`
}

// jsonError is handleError for the JSON endpoints.
func (s *Server) jsonError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isNotFound(err):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "trip not found"})
	case isUnauthorized(err):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "sign in required"})
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "trips service unavailable"})
	}
}

func viewToResponse(v domain.TripView) itineraryResponse {
	resp := itineraryResponse{
		ID:              v.Trip.ID,
		Name:            v.Trip.Name,
		DestinationCity: v.Trip.DestinationCity,
		StartDate:       openapi_types.Date{Time: v.Trip.StartDate},
		EndDate:         openapi_types.Date{Time: v.Trip.EndDate},
		Span:            v.Itinerary.Span,
		Days:            make([]dayResponse, 0, len(v.Itinerary.Days)),
		PhotoURL:        v.PhotoURL,
		Editable:        v.Editable,
	}
	for _, d := range v.Itinerary.Days {
		day := dayResponse{
			DayNumber:  d.DayNumber,
			Date:       openapi_types.Date{Time: d.Date},
			BeyondEnd:  d.BeyondEnd,
			Activities: make([]activityResponse, 0, len(d.Activities)),
		}
		for _, a := range d.Activities {
			ar := activityResponse{ID: a.ID, Title: a.Title}
			if strings.TrimSpace(a.Time) != "" {
				t := a.Time
				ar.Time = &t
			}
			day.Activities = append(day.Activities, ar)
		}
		resp.Days = append(resp.Days, day)
	}
	if v.Weather != nil {
		resp.Weather = &weatherResponse{
			Main:        v.Weather.Main,
			Description: v.Weather.Description,
			TempC:       v.Weather.TempC,
			Icon:        v.Weather.Icon,
		}
	}
	return resp
}
