package mark

import "fmt"

// DefaultPaletteSize is the number of display slots available for marks.
const DefaultPaletteSize = 12

// Store is the ordered set of active marks. It is not safe for concurrent
// use; all mutations run on the session's single writer.
type Store struct {
	paletteSize int
	marks       []*Mark
	gen         uint64
	nextSeq     int
}

// NewStore returns a store with the given palette size; zero or negative
// uses DefaultPaletteSize.
func NewStore(paletteSize int) *Store {
	if paletteSize <= 0 {
		paletteSize = DefaultPaletteSize
	}
	return &Store{paletteSize: paletteSize}
}

// Generation returns the mutation counter. It changes whenever the set of
// marks, a mark's pattern, or a mark's role changes.
func (s *Store) Generation() uint64 { return s.gen }

// Len returns the number of active marks.
func (s *Store) Len() int { return len(s.marks) }

// All returns the active marks in creation order. The slice is shared;
// callers must not mutate it.
func (s *Store) All() []*Mark { return s.marks }

// Get returns the mark with the given pattern, or nil.
func (s *Store) Get(pattern string) *Mark {
	for _, m := range s.marks {
		if m.Pattern == pattern {
			return m
		}
	}
	return nil
}

// Toggle adds the pattern as a Marking mark if absent and removes it if
// present. Returns the mark and true on add, nil and false on remove.
func (s *Store) Toggle(pattern string, kind Kind) (*Mark, bool, error) {
	if m := s.Get(pattern); m != nil {
		s.remove(m)
		return nil, false, nil
	}
	m, err := s.add(pattern, kind, Marking)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// AddSearch installs pattern as the active search mark, replacing any
// previous one. The pattern is validated before the old mark is dropped, so
// a bad pattern leaves the previous search intact.
func (s *Store) AddSearch(pattern string, kind Kind) (*Mark, error) {
	re, err := kind.compile(pattern)
	if err != nil {
		return nil, err
	}
	if old := s.SearchMark(); old != nil {
		s.remove(old)
	}
	if m := s.Get(pattern); m != nil {
		// Pattern already marked; reuse it as the search target.
		return m, nil
	}
	m := &Mark{Pattern: pattern, Kind: kind, Role: Search, Slot: s.nextSlot(), re: re, seq: s.nextSeq}
	s.nextSeq++
	s.marks = append(s.marks, m)
	s.gen++
	return m, nil
}

// SearchMark returns the mark holding the Search role, or nil.
func (s *Store) SearchMark() *Mark {
	for _, m := range s.marks {
		if m.Role == Search {
			return m
		}
	}
	return nil
}

// Remove drops the mark with the given pattern. Reports whether a mark was
// removed.
func (s *Store) Remove(pattern string) bool {
	m := s.Get(pattern)
	if m == nil {
		return false
	}
	s.remove(m)
	return true
}

// SetRole changes a mark's role.
func (s *Store) SetRole(pattern string, role Role) error {
	m := s.Get(pattern)
	if m == nil {
		return fmt.Errorf("no mark for pattern %q", pattern)
	}
	if m.Role == role {
		return nil
	}
	m.Role = role
	s.gen++
	return nil
}

// Amend replaces a mark's pattern, degrading its kind to Text. The slot and
// role are kept. Amending to a pattern that is already marked is rejected
// so the one-mark-per-pattern invariant holds.
func (s *Store) Amend(m *Mark, pattern string) error {
	if pattern == "" {
		return fmt.Errorf("empty pattern")
	}
	if other := s.Get(pattern); other != nil && other != m {
		return fmt.Errorf("pattern %q already marked", pattern)
	}
	re, err := Text.compile(pattern)
	if err != nil {
		return err
	}
	m.Pattern = pattern
	m.Kind = Text
	m.re = re
	s.gen++
	return nil
}

// Spans returns the matches of every active mark in content.
func (s *Store) Spans(content string) []Span {
	var spans []Span
	for _, m := range s.marks {
		spans = append(spans, m.spans(content)...)
	}
	return spans
}

// TagMatch reports whether any tagging mark matches content.
func (s *Store) TagMatch(content string) bool {
	return s.roleMatch(content, Tagging)
}

// HideMatch reports whether any hiding mark matches content.
func (s *Store) HideMatch(content string) bool {
	return s.roleMatch(content, Hiding)
}

func (s *Store) roleMatch(content string, role Role) bool {
	for _, m := range s.marks {
		if m.Role == role && m.Matches(content) {
			return true
		}
	}
	return false
}

func (s *Store) add(pattern string, kind Kind, role Role) (*Mark, error) {
	re, err := kind.compile(pattern)
	if err != nil {
		return nil, err
	}
	m := &Mark{Pattern: pattern, Kind: kind, Role: role, Slot: s.nextSlot(), re: re, seq: s.nextSeq}
	s.nextSeq++
	s.marks = append(s.marks, m)
	s.gen++
	return m, nil
}

func (s *Store) remove(m *Mark) {
	for i, cur := range s.marks {
		if cur == m {
			s.marks = append(s.marks[:i], s.marks[i+1:]...)
			s.gen++
			return
		}
	}
}

// nextSlot picks the lowest unused palette slot, falling back to the slot
// of the least-recently-assigned mark when the palette is exhausted.
func (s *Store) nextSlot() int {
	used := make(map[int]*Mark, len(s.marks))
	for _, m := range s.marks {
		if prev, ok := used[m.Slot]; !ok || m.seq < prev.seq {
			used[m.Slot] = m
		}
	}
	for slot := 0; slot < s.paletteSize; slot++ {
		if _, ok := used[slot]; !ok {
			return slot
		}
	}
	oldest := s.marks[0]
	for _, m := range s.marks[1:] {
		if m.seq < oldest.seq {
			oldest = m
		}
	}
	return oldest.Slot
}
