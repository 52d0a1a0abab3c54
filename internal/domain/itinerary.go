package domain

import "time"

// Itinerary is the day-by-day view of a trip derived by itinerary.Build.
// It is recomputed on every render and never stored.
type Itinerary struct {
	// Span is the raw day difference between end and start ("N days").
	// The number of calendar dates covered by the trip is Span+1.
	Span int
	// Days is strictly ascending and unique by DayNumber.
	Days []DayGroup
}

// DayGroup holds the activities that share a day number, in input order.
type DayGroup struct {
	DayNumber int
	Date      time.Time
	// BeyondEnd is set when Date falls after the trip's end date.
	// Such days are still rendered.
	BeyondEnd  bool
	Activities []Activity
}

// Weather is the current conditions at a trip's destination.
type Weather struct {
	Main        string // e.g. "Clear", "Clouds", "Rain"
	Description string
	TempC       int
	Icon        string
}

// TripView bundles everything the trip page renders.
// PhotoURL and Weather are optional enrichments; empty/nil means unavailable.
type TripView struct {
	Trip      Trip
	Itinerary Itinerary
	PhotoURL  string
	Weather   *Weather
	Editable  bool
}
