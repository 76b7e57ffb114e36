package export

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sortedIds(s *SelectionSet) []string {
	ids := s.Ids()
	sort.Strings(ids)
	return ids
}

func TestSelectionSet_ToggleIsIdempotentOverTwoCalls(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle("a")
	assert.True(t, s.Has("a"))
	s.Toggle("a")
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Len())

	s.Toggle("b")
	s.Toggle("a")
	s.Toggle("a")
	assert.Equal(t, []string{"b"}, sortedIds(s))
}

func TestSelectionSet_SelectAllVisibleSetsWhenNotAllSelected(t *testing.T) {
	visible := []string{"a", "b", "c"}

	s := NewSelectionSet()
	s.SelectAllVisible(visible)
	assert.Equal(t, []string{"a", "b", "c"}, sortedIds(s))

	// Partial selection also becomes the full visible set
	s = NewSelectionSet()
	s.Toggle("a")
	s.SelectAllVisible(visible)
	assert.Equal(t, []string{"a", "b", "c"}, sortedIds(s))

	// A selection of the same size but different membership is not "all"
	s = NewSelectionSet()
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("z")
	s.SelectAllVisible(visible)
	assert.Equal(t, []string{"a", "b", "c"}, sortedIds(s))
}

func TestSelectionSet_SelectAllVisibleClearsWhenAllSelected(t *testing.T) {
	visible := []string{"a", "b", "c"}

	s := NewSelectionSet()
	s.SelectAllVisible(visible)
	s.SelectAllVisible(visible)
	assert.Equal(t, 0, s.Len())
}

func TestSelectionSet_Clear(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle("a")
	s.Toggle("b")
	s.Clear()
	assert.Equal(t, 0, s.Len())

	// clearing an empty set is fine
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestSelectionSet_PruneDropsMissingIds(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("gone")

	s.Prune([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b"}, sortedIds(s))

	s.Prune([]string{})
	assert.Equal(t, 0, s.Len())
}
