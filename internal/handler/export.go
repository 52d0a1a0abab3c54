package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/trip-itinerary/internal/itinerary"
	"github.com/pkordes/trip-itinerary/internal/middleware"
	"github.com/pkordes/trip-itinerary/internal/printout"
)

// exportTrip handles GET /trips/{id}/export.
// Use ?format=csv to receive CSV; default is a plain-text table for printing.
func (s *Server) exportTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "text" {
		http.Error(w, "format must be csv or text", http.StatusBadRequest)
		return
	}

	trip, err := s.trips.Get(r.Context(), middleware.SessionFrom(r.Context()), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	rows := printout.Rows(itinerary.Build(trip))

	var buf bytes.Buffer
	if format == "csv" {
		if err := printout.WriteCSV(&buf, rows); err != nil {
			s.handleError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%d.csv"`, trip.ID))
	} else {
		buf.WriteString(printout.Table(trip, rows))
		buf.WriteByte('\n')
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
