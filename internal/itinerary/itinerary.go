// Package itinerary turns a trip's flat activity list into the day-by-day
// view the trip page renders. Everything here is pure: no I/O, no errors,
// and the same Trip always yields the same Itinerary.
package itinerary

import (
	"math"
	"sort"
	"time"

	"github.com/pkordes/trip-itinerary/internal/domain"
)

const day = 24 * time.Hour

// Build groups the trip's activities by day number and orders the groups.
//
// Activities keep their input order within a day; no secondary sort (such as
// time of day) is applied. Gaps between day numbers produce no empty
// placeholder days. Day numbers past the trip's end date are kept and flagged
// with BeyondEnd rather than dropped. Day numbers below 1 are not filtered;
// they sort first and are dated before the start.
func Build(trip domain.Trip) domain.Itinerary {
	byDay := make(map[int][]domain.Activity)
	var order []int
	for _, a := range trip.Activities {
		if _, seen := byDay[a.DayNumber]; !seen {
			order = append(order, a.DayNumber)
		}
		byDay[a.DayNumber] = append(byDay[a.DayNumber], a)
	}
	sort.Ints(order)

	days := make([]domain.DayGroup, 0, len(order))
	for _, n := range order {
		date := DateForDay(trip.StartDate, n)
		days = append(days, domain.DayGroup{
			DayNumber:  n,
			Date:       date,
			BeyondEnd:  date.After(trip.EndDate),
			Activities: byDay[n],
		})
	}

	return domain.Itinerary{
		Span: Span(trip.StartDate, trip.EndDate),
		Days: days,
	}
}

// DateForDay returns the calendar date of day number n, where day 1 is start.
// AddDate normalises across month and year boundaries, leap days included.
func DateForDay(start time.Time, n int) time.Time {
	return start.AddDate(0, 0, n-1)
}

// Span returns the number of days between start and end, rounded up.
// A trip from June 1 to June 5 has a span of 4 and covers 5 calendar dates.
// Rounding up absorbs the fractional days a DST shift or a non-UTC parse
// leaves behind.
func Span(start, end time.Time) int {
	return int(math.Ceil(float64(end.Sub(start)) / float64(day)))
}
