package editor_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-itinerary/internal/editor"
)

func TestParseForm(t *testing.T) {
	form := url.Values{}
	form.Set(editor.FieldName(0, "id"), "12")
	form.Set(editor.FieldName(0, "title"), "Castle")
	form.Set(editor.FieldName(0, "time"), " 10:00 ")
	form.Set(editor.FieldName(0, "day_number"), "2")
	form.Set(editor.FieldName(1, "title"), "")
	form.Set(editor.FieldName(1, "day_number"), "abc")
	// Row 3 without row 2 is never reached.
	form.Set(editor.FieldName(3, "day_number"), "1")

	l := editor.ParseForm(form)

	assert.Equal(t, []editor.Draft{
		{ID: 12, Title: "Castle", Time: "10:00", DayNumber: 2},
		{DayNumber: 0},
	}, l.Items())
}

func TestParseForm_Empty(t *testing.T) {
	assert.Equal(t, 0, editor.ParseForm(url.Values{}).Len())
}

func TestParseCommand(t *testing.T) {
	cmd, err := editor.ParseCommand("")
	require.NoError(t, err)
	assert.Equal(t, editor.ActionSave, cmd.Action)

	cmd, err = editor.ParseCommand("add")
	require.NoError(t, err)
	assert.Equal(t, editor.ActionAdd, cmd.Action)

	cmd, err = editor.ParseCommand("remove:id:7")
	require.NoError(t, err)
	assert.Equal(t, editor.ActionRemove, cmd.Action)
	assert.Equal(t, editor.PersistedRef(7), cmd.Target)

	_, err = editor.ParseCommand("remove:bogus")
	assert.Error(t, err)

	_, err = editor.ParseCommand("explode")
	assert.Error(t, err)
}

func TestList_Apply(t *testing.T) {
	var l editor.List

	assert.True(t, l.Apply(editor.Command{Action: editor.ActionAdd}))
	assert.True(t, l.Apply(editor.Command{Action: editor.ActionAdd}))
	assert.True(t, l.Apply(editor.Command{Action: editor.ActionRemove, Target: editor.DraftRef(1)}))
	assert.False(t, l.Apply(editor.Command{Action: editor.ActionRemove, Target: editor.DraftRef(5)}))
	assert.False(t, l.Apply(editor.Command{Action: editor.ActionSave}))

	assert.Equal(t, 1, l.Len())
}
