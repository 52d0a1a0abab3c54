package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-itinerary/internal/domain"
)

// tripJSON is the trips API wire representation of a trip.
// share_token and owner are read-only on the API side.
type tripJSON struct {
	ID              int64              `json:"id,omitempty"`
	Name            string             `json:"name"`
	DestinationCity string             `json:"destination_city"`
	StartDate       openapi_types.Date `json:"start_date"`
	EndDate         openapi_types.Date `json:"end_date"`
	Activities      []activityJSON     `json:"activities"`
	ShareToken      string             `json:"share_token,omitempty"`
	Owner           *string            `json:"owner,omitempty"`
}

// activityJSON is the wire representation of an activity.
// The API assigns order_index from the position in the submitted list, so it
// is only ever read, never sent.
type activityJSON struct {
	ID         int64   `json:"id,omitempty"`
	Title      string  `json:"title"`
	Time       *string `json:"time"` // "HH:MM:SS" from the API, null when unset
	DayNumber  int     `json:"day_number"`
	OrderIndex *int    `json:"order_index,omitempty"`
}

// ListTrips returns the trips visible to token (all trips when token is empty).
func (c *Client) ListTrips(ctx context.Context, token string) ([]domain.Trip, error) {
	var resp []tripJSON
	if err := c.do(ctx, http.MethodGet, "/api/trips/", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("apiclient.Client.ListTrips: %w", err)
	}
	trips := make([]domain.Trip, len(resp))
	for i, t := range resp {
		trips[i] = t.toDomain()
	}
	return trips, nil
}

// GetTrip fetches one trip by ID. Returns domain.ErrNotFound if it does not exist.
func (c *Client) GetTrip(ctx context.Context, token string, id int64) (domain.Trip, error) {
	var resp tripJSON
	if err := c.do(ctx, http.MethodGet, tripPath(id), token, nil, &resp); err != nil {
		return domain.Trip{}, fmt.Errorf("apiclient.Client.GetTrip: %w", err)
	}
	return resp.toDomain(), nil
}

// GetSharedTrip resolves a public share token to its trip without credentials.
// Returns domain.ErrNotFound for unknown or revoked tokens.
func (c *Client) GetSharedTrip(ctx context.Context, shareToken string) (domain.Trip, error) {
	var resp tripJSON
	path := "/api/trips/share/" + url.PathEscape(shareToken) + "/"
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return domain.Trip{}, fmt.Errorf("apiclient.Client.GetSharedTrip: %w", err)
	}
	return resp.toDomain(), nil
}

// CreateTrip submits a new trip with its activities and returns the persisted record.
func (c *Client) CreateTrip(ctx context.Context, token string, trip domain.Trip) (domain.Trip, error) {
	var resp tripJSON
	if err := c.do(ctx, http.MethodPost, "/api/trips/", token, tripToWire(trip), &resp); err != nil {
		return domain.Trip{}, fmt.Errorf("apiclient.Client.CreateTrip: %w", err)
	}
	return resp.toDomain(), nil
}

// UpdateTrip replaces a trip's fields and its whole activity list.
func (c *Client) UpdateTrip(ctx context.Context, token string, trip domain.Trip) (domain.Trip, error) {
	var resp tripJSON
	if err := c.do(ctx, http.MethodPut, tripPath(trip.ID), token, tripToWire(trip), &resp); err != nil {
		return domain.Trip{}, fmt.Errorf("apiclient.Client.UpdateTrip: %w", err)
	}
	return resp.toDomain(), nil
}

// DeleteTrip removes a trip. Returns domain.ErrNotFound if it does not exist.
func (c *Client) DeleteTrip(ctx context.Context, token string, id int64) error {
	if err := c.do(ctx, http.MethodDelete, tripPath(id), token, nil, nil); err != nil {
		return fmt.Errorf("apiclient.Client.DeleteTrip: %w", err)
	}
	return nil
}

func tripPath(id int64) string {
	return "/api/trips/" + strconv.FormatInt(id, 10) + "/"
}

// --- mapping helpers --------------------------------------------------------

func (t tripJSON) toDomain() domain.Trip {
	out := domain.Trip{
		ID:              t.ID,
		Name:            t.Name,
		DestinationCity: t.DestinationCity,
		StartDate:       t.StartDate.Time,
		EndDate:         t.EndDate.Time,
		Activities:      make([]domain.Activity, len(t.Activities)),
		ShareToken:      t.ShareToken,
	}
	if t.Owner != nil {
		out.Owner = *t.Owner
	}
	for i, a := range t.Activities {
		out.Activities[i] = domain.Activity{
			ID:        a.ID,
			Title:     a.Title,
			Time:      clockTime(a.Time),
			DayNumber: a.DayNumber,
		}
	}
	return out
}

func tripToWire(t domain.Trip) tripJSON {
	out := tripJSON{
		ID:              t.ID,
		Name:            t.Name,
		DestinationCity: t.DestinationCity,
		StartDate:       openapi_types.Date{Time: t.StartDate},
		EndDate:         openapi_types.Date{Time: t.EndDate},
		Activities:      make([]activityJSON, len(t.Activities)),
	}
	for i, a := range t.Activities {
		out.Activities[i] = activityJSON{
			ID:        a.ID,
			Title:     a.Title,
			DayNumber: a.DayNumber,
		}
		if a.Time != "" {
			tm := a.Time
			out.Activities[i].Time = &tm
		}
	}
	return out
}

// clockTime trims an API time ("14:30:00") to hours and minutes ("14:30").
func clockTime(s *string) string {
	if s == nil {
		return ""
	}
	if len(*s) > 5 {
		return (*s)[:5]
	}
	return *s
}
