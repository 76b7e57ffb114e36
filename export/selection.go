package export

import (
	"sync"
)

// SelectionSet tracks which catalog ids an admin has marked for export. All
// operations are total: toggling an unknown id just adds it, and downstream
// filtering naturally ignores ids that no longer resolve.
type SelectionSet struct {
	mu  sync.Mutex
	ids map[string]bool
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[string]bool)}
}

func (s *SelectionSet) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids[id] {
		delete(s.ids, id)
	} else {
		s.ids[id] = true
	}
}

// SelectAllVisible mirrors a tri-state header checkbox: if the selection is
// not already exactly the visible set, it becomes the visible set; if it is,
// everything is cleared.
func (s *SelectionSet) SelectAllVisible(visibleIds []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allSelected := len(s.ids) == len(visibleIds)
	if allSelected {
		for _, id := range visibleIds {
			if !s.ids[id] {
				allSelected = false
				break
			}
		}
	}

	s.ids = make(map[string]bool)
	if !allSelected {
		for _, id := range visibleIds {
			s.ids[id] = true
		}
	}
}

func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]bool)
}

// Prune drops ids that no longer exist in the underlying collection so the
// selection never holds dangling references.
func (s *SelectionSet) Prune(existingIds []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool, len(existingIds))
	for _, id := range existingIds {
		existing[id] = true
	}
	for id := range s.ids {
		if !existing[id] {
			delete(s.ids, id)
		}
	}
}

func (s *SelectionSet) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[id]
}

func (s *SelectionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *SelectionSet) Ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	return ids
}
