// Package printout renders an itinerary for printing or download: a boxed
// text table, CSV, or a flat row list for JSON and YAML output.
package printout

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/itinerary"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{"day_number", "date", "seq", "time", "title"}

// Row is one activity placed on its day. Seq is its 1-based position within
// the day.
type Row struct {
	DayNumber int    `json:"day_number" yaml:"day_number"`
	Date      string `json:"date" yaml:"date"`
	Seq       int    `json:"seq" yaml:"seq"`
	Time      string `json:"time,omitempty" yaml:"time,omitempty"`
	Title     string `json:"title" yaml:"title"`
	BeyondEnd bool   `json:"beyond_end,omitempty" yaml:"beyond_end,omitempty"`
}

// Rows flattens the itinerary in display order: days ascending, and input
// order within a day.
func Rows(it domain.Itinerary) []Row {
	rows := []Row{}
	for _, d := range it.Days {
		for i, a := range d.Activities {
			rows = append(rows, Row{
				DayNumber: d.DayNumber,
				Date:      d.Date.Format("2006-01-02"),
				Seq:       i + 1,
				Time:      a.Time,
				Title:     a.Title,
				BeyondEnd: d.BeyondEnd,
			})
		}
	}
	return rows
}

// WriteCSV encodes rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("printout.WriteCSV: %w", err)
	}
	for _, r := range rows {
		record := []string{strconv.Itoa(r.DayNumber), r.Date, strconv.Itoa(r.Seq), r.Time, r.Title}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("printout.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Table renders the printable itinerary titled with the trip's name and
// destination. Days past the trip's end date are marked with an asterisk.
func Table(trip domain.Trip, rows []Row) string {
	tw := table.NewWriter()
	tw.SetTitle("%s · %s", trip.Name, trip.DestinationCity)
	tw.SetStyle(table.StyleLight)
	tw.Style().Title.Align = text.AlignCenter
	tw.AppendHeader(table.Row{"Day", "Date", "#", "Time", "Activity"})
	for _, r := range rows {
		day := strconv.Itoa(r.DayNumber)
		if r.BeyondEnd {
			day += "*"
		}
		tw.AppendRow(table.Row{day, r.Date, r.Seq, r.Time, r.Title})
	}
	if len(rows) == 0 {
		tw.AppendFooter(table.Row{"", "", "", "", "No activities planned yet."})
	} else {
		tw.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d activities", len(rows))})
	}
	return tw.Render()
}

// TripTable renders a trip list: id, name, destination, dates and span.
func TripTable(trips []domain.Trip) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Name", "Destination", "Start", "End", "Days"})
	for _, t := range trips {
		tw.AppendRow(table.Row{
			t.ID, t.Name, t.DestinationCity,
			t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02"),
			itinerary.Span(t.StartDate, t.EndDate),
		})
	}
	return tw.Render()
}
