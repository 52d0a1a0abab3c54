package editor

import (
	"fmt"
	"strconv"
	"strings"
)

type refKind int

const (
	refDraft refKind = iota + 1
	refPersisted
)

// Ref addresses one activity in a List. A draft ref is a position and is only
// valid against the list it was taken from; a persisted ref is the API's
// activity ID and survives removals and reordering.
type Ref struct {
	kind  refKind
	index int
	id    int64
}

// DraftRef addresses the not-yet-persisted activity at position index.
func DraftRef(index int) Ref { return Ref{kind: refDraft, index: index} }

// PersistedRef addresses the activity the API knows as id.
func PersistedRef(id int64) Ref { return Ref{kind: refPersisted, id: id} }

// RefAt returns the preferred ref for the draft at index: its ID when it has
// one, otherwise its position.
func RefAt(index int, d Draft) Ref {
	if d.ID != 0 {
		return PersistedRef(d.ID)
	}
	return DraftRef(index)
}

// String encodes r for use in a form button value: "draft:3" or "id:42".
func (r Ref) String() string {
	switch r.kind {
	case refDraft:
		return "draft:" + strconv.Itoa(r.index)
	case refPersisted:
		return "id:" + strconv.FormatInt(r.id, 10)
	default:
		return ""
	}
}

// ParseRef decodes the output of Ref.String.
func ParseRef(s string) (Ref, error) {
	kind, val, ok := strings.Cut(s, ":")
	if !ok {
		return Ref{}, fmt.Errorf("editor.ParseRef: malformed ref %q", s)
	}
	switch kind {
	case "draft":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return Ref{}, fmt.Errorf("editor.ParseRef: bad index in %q", s)
		}
		return DraftRef(i), nil
	case "id":
		id, err := strconv.ParseInt(val, 10, 64)
		if err != nil || id <= 0 {
			return Ref{}, fmt.Errorf("editor.ParseRef: bad id in %q", s)
		}
		return PersistedRef(id), nil
	default:
		return Ref{}, fmt.Errorf("editor.ParseRef: unknown kind in %q", s)
	}
}

// Resolve returns the current position of the activity r addresses.
// A draft ref only matches an activity that has no ID yet.
func (l *List) Resolve(r Ref) (int, bool) {
	switch r.kind {
	case refDraft:
		if r.index < 0 || r.index >= len(l.items) || l.items[r.index].ID != 0 {
			return 0, false
		}
		return r.index, true
	case refPersisted:
		for i, d := range l.items {
			if d.ID == r.id {
				return i, true
			}
		}
	}
	return 0, false
}

// PatchRef patches the activity r addresses; unresolvable refs are ignored.
func (l *List) PatchRef(r Ref, f Fields) {
	if i, ok := l.Resolve(r); ok {
		l.Patch(i, f)
	}
}

// RemoveRef removes the activity r addresses; unresolvable refs are ignored.
func (l *List) RemoveRef(r Ref) {
	if i, ok := l.Resolve(r); ok {
		l.Remove(i)
	}
}
