// Package domain contains the core data types for the trip itinerary web app.
// This package depends only on the standard library and uuid, and is imported
// by every other internal package (apiclient, itinerary, service, handler).
package domain

import "time"

// Trip is the top-level itinerary record as returned by the trips API.
// StartDate and EndDate are inclusive calendar dates at UTC midnight.
// The trip is owned by the API; this app treats it as an immutable input.
type Trip struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	DestinationCity string     `json:"destination_city"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Activities      []Activity `json:"activities"`
	ShareToken      string     `json:"share_token,omitempty"` // empty until the API assigns one
	Owner           string     `json:"owner,omitempty"`
}

// Activity is a single planned event on a trip.
// DayNumber is relative to the trip start: 1 is the first day.
type Activity struct {
	ID        int64  `json:"id,omitempty"` // zero until persisted by the API
	Title     string `json:"title"`
	Time      string `json:"time,omitempty"` // "15:04", empty when no time is set
	DayNumber int    `json:"day_number"`
}
