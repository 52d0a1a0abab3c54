// Package editor maintains the ordered list of activities being edited on the
// create and edit trip forms.
//
// Positions are not stable: removing an item shifts everything after it down
// by one. Callers that need to address an item across edits should use a Ref,
// which switches to the server-assigned ID once an activity is persisted.
package editor

import "github.com/pkordes/trip-itinerary/internal/domain"

// DefaultDayNumber is the day a newly appended activity starts on.
const DefaultDayNumber = 1

// Draft is one row of the editor. ID is zero until the trips API has
// persisted the activity.
type Draft struct {
	ID        int64
	Title     string
	Time      string
	DayNumber int
}

// Fields is a partial update for Patch. Nil fields are left unchanged.
type Fields struct {
	Title     *string
	Time      *string
	DayNumber *int
}

// List is an ordered sequence of drafts. The zero List is empty and ready to use.
type List struct {
	items []Draft
}

// FromActivities seeds a List from a fetched trip's activities, keeping order.
func FromActivities(activities []domain.Activity) *List {
	l := &List{items: make([]Draft, 0, len(activities))}
	for _, a := range activities {
		l.items = append(l.items, Draft{
			ID:        a.ID,
			Title:     a.Title,
			Time:      a.Time,
			DayNumber: a.DayNumber,
		})
	}
	return l
}

// Len returns the number of drafts.
func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the drafts in order.
func (l *List) Items() []Draft {
	out := make([]Draft, len(l.items))
	copy(out, l.items)
	return out
}

// Append adds an empty draft on day 1 at the end of the list.
func (l *List) Append() {
	l.items = append(l.items, Draft{DayNumber: DefaultDayNumber})
}

// Patch overwrites the set fields of the draft at index.
// An out-of-range index is ignored.
func (l *List) Patch(index int, f Fields) {
	if index < 0 || index >= len(l.items) {
		return
	}
	d := &l.items[index]
	if f.Title != nil {
		d.Title = *f.Title
	}
	if f.Time != nil {
		d.Time = *f.Time
	}
	if f.DayNumber != nil {
		d.DayNumber = *f.DayNumber
	}
}

// Remove deletes the draft at index; later drafts move down one position.
// An out-of-range index is ignored.
func (l *List) Remove(index int) {
	if index < 0 || index >= len(l.items) {
		return
	}
	l.items = append(l.items[:index:index], l.items[index+1:]...)
}

// Activities converts the drafts into activities for submission.
func (l *List) Activities() []domain.Activity {
	out := make([]domain.Activity, len(l.items))
	for i, d := range l.items {
		out[i] = domain.Activity{
			ID:        d.ID,
			Title:     d.Title,
			Time:      d.Time,
			DayNumber: d.DayNumber,
		}
	}
	return out
}
