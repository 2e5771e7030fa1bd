package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/keepnotes/keep-note-service/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNote(title string, pinned, archived bool, updatedAt time.Time) *Note {
	n := NewNote()
	n.Title = title
	n.IsPinned = pinned
	n.IsArchived = archived
	n.UpdatedAt = timex.Time(updatedAt)
	return n
}

func titles(notes []*Note) []string {
	var out []string
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

func TestSortNotesPinnedFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 未置顶的笔记即使更新更晚也排在置顶之后
	notes := []*Note{
		newTestNote("old-pinned", true, false, base.Add(-48*time.Hour)),
		newTestNote("fresh-unpinned", false, false, base),
	}

	sorted := SortNotes(notes)
	assert.Equal(t, []string{"old-pinned", "fresh-unpinned"}, titles(sorted))
}

func TestSortNotesByUpdatedAtDesc(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	notes := []*Note{
		newTestNote("older", false, false, base.Add(-time.Hour)),
		newTestNote("newer", false, false, base),
	}

	sorted := SortNotes(notes)
	assert.Equal(t, []string{"newer", "older"}, titles(sorted))
}

func TestSortNotesStableOnEqualTimestamps(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	notes := []*Note{
		newTestNote("first", false, false, base),
		newTestNote("second", false, false, base),
		newTestNote("third", false, false, base),
	}

	sorted := SortNotes(notes)
	assert.Equal(t, []string{"first", "second", "third"}, titles(sorted))
}

func TestSortNotesDoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	notes := []*Note{
		newTestNote("b", false, false, base.Add(-time.Hour)),
		newTestNote("a", true, false, base),
	}

	_ = SortNotes(notes)
	assert.Equal(t, []string{"b", "a"}, titles(notes))
}

func TestFilteredViewExcludesArchivedByDefault(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	notes := []*Note{
		newTestNote("active", false, false, base),
		newTestNote("archived", false, true, base),
	}

	got := FilteredView(notes, DefaultViewOptions())
	assert.Equal(t, []string{"active"}, titles(got))
}

func TestFilteredViewArchivedOverride(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	notes := []*Note{
		newTestNote("active", false, false, base),
		newTestNote("archived", false, true, base),
	}

	archived := true
	got := FilteredView(notes, ViewOptions{IsArchived: &archived, ExcludeArchived: true})
	assert.Equal(t, []string{"archived"}, titles(got))
}

func TestFilteredViewPinnedFilter(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	notes := []*Note{
		newTestNote("pinned", true, false, base),
		newTestNote("unpinned", false, false, base),
	}

	pinned := true
	got := FilteredView(notes, ViewOptions{IsPinned: &pinned, ExcludeArchived: true})
	assert.Equal(t, []string{"pinned"}, titles(got))
}

func TestFilteredViewSearchMatchesSerializedContent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	match := newTestNote("groceries", false, false, base)
	match.Content = json.RawMessage(`{"blocks":[{"type":"paragraph","text":"buy Milk tomorrow"}]}`)
	other := newTestNote("misc", false, false, base)

	got := FilteredView([]*Note{match, other}, ViewOptions{ExcludeArchived: true, SearchTerm: "milk"})
	assert.Equal(t, []string{"groceries"}, titles(got))
}

func TestNewNoteDefaults(t *testing.T) {
	n := NewNote()

	require.NotEmpty(t, n.Uuid)
	assert.Equal(t, int64(0), n.ID)
	assert.Equal(t, ColorDefault, n.Color)
	assert.False(t, n.IsPinned)
	assert.False(t, n.IsArchived)
	assert.JSONEq(t, `{}`, string(n.Content))
	assert.NotNil(t, n.Labels)
	assert.False(t, n.UpdatedAt.Time().Before(n.CreatedAt.Time()))

	// 每个笔记的 Uuid 都不同
	assert.NotEqual(t, n.Uuid, NewNote().Uuid)
}

func TestGetColorInfo(t *testing.T) {
	assert.Equal(t, ColorTeal, GetColorInfo(ColorTeal).ID)
	assert.Equal(t, "Teal", GetColorInfo(ColorTeal).Name)

	// 未知值与空值回退到缺省色
	assert.Equal(t, ColorDefault, GetColorInfo("magenta").ID)
	assert.Equal(t, ColorDefault, GetColorInfo("").ID)
}

func TestNormalize(t *testing.T) {
	n := &Note{Uuid: "u-1", Color: "nope"}
	n.Normalize()

	assert.Equal(t, ColorDefault, n.Color)
	assert.JSONEq(t, `{}`, string(n.Content))
	assert.NotNil(t, n.Labels)
}
