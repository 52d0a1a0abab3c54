package editor

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Action is what the user asked the form to do.
type Action int

const (
	// ActionSave submits the trip.
	ActionSave Action = iota
	// ActionAdd appends an empty activity and re-renders the form.
	ActionAdd
	// ActionRemove drops one activity and re-renders the form.
	ActionRemove
)

// Command is a decoded form button press.
type Command struct {
	Action Action
	Target Ref // set for ActionRemove
}

// FieldName returns the form field name for one attribute of the i-th row,
// e.g. FieldName(2, "title") == "activities[2].title".
func FieldName(i int, field string) string {
	return fmt.Sprintf("activities[%d].%s", i, field)
}

// ParseForm rebuilds the list from a submitted form. Rows are read in index
// order until one has no day_number field. A day number that is not an
// integer is kept as zero so that validation can report it.
func ParseForm(form url.Values) *List {
	l := &List{}
	for i := 0; form.Has(FieldName(i, "day_number")); i++ {
		day, _ := strconv.Atoi(strings.TrimSpace(form.Get(FieldName(i, "day_number"))))
		id, _ := strconv.ParseInt(form.Get(FieldName(i, "id")), 10, 64)
		l.items = append(l.items, Draft{
			ID:        id,
			Title:     form.Get(FieldName(i, "title")),
			Time:      strings.TrimSpace(form.Get(FieldName(i, "time"))),
			DayNumber: day,
		})
	}
	return l
}

// ParseCommand decodes the value of the form's submit button:
// "save", "add", or "remove:<ref>". An empty value means save, which is what
// browsers send when the form is submitted with the Enter key.
func ParseCommand(s string) (Command, error) {
	switch {
	case s == "" || s == "save":
		return Command{Action: ActionSave}, nil
	case s == "add":
		return Command{Action: ActionAdd}, nil
	case strings.HasPrefix(s, "remove:"):
		ref, err := ParseRef(strings.TrimPrefix(s, "remove:"))
		if err != nil {
			return Command{}, err
		}
		return Command{Action: ActionRemove, Target: ref}, nil
	default:
		return Command{}, fmt.Errorf("editor.ParseCommand: unknown command %q", s)
	}
}

// Apply runs an add or remove command against the list.
// It reports whether the command changed the list (save never does).
func (l *List) Apply(cmd Command) bool {
	switch cmd.Action {
	case ActionAdd:
		l.Append()
		return true
	case ActionRemove:
		before := len(l.items)
		l.RemoveRef(cmd.Target)
		return len(l.items) != before
	default:
		return false
	}
}
