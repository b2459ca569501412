package mark

import (
	"testing"

	"pgregory.net/rapid"
)

func TestKindMatching(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		pattern string
		content string
		want    []Span
	}{
		{
			name:    "text substring",
			kind:    Text,
			pattern: "err",
			content: "error: err in errand",
			want:    []Span{{Start: 0, End: 3}, {Start: 7, End: 10}, {Start: 14, End: 17}},
		},
		{
			name:    "small word respects punctuation",
			kind:    SmallWord,
			pattern: "disk",
			content: "disk: diskfull disk",
			want:    []Span{{Start: 0, End: 4}, {Start: 15, End: 19}},
		},
		{
			name:    "big word only splits on whitespace",
			kind:    BigWord,
			pattern: "a=1",
			content: "a=1 b=2 xa=1",
			want:    []Span{{Start: 0, End: 3}},
		},
		{
			name:    "regex",
			kind:    Regex,
			pattern: `it[ae]m`,
			content: "item vs itom vs itam",
			want:    []Span{{Start: 0, End: 4}, {Start: 16, End: 20}},
		},
		{
			name:    "no match",
			kind:    Text,
			pattern: "zzz",
			content: "nothing here",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(0)
			m, added, err := s.Toggle(tt.pattern, tt.kind)
			if err != nil || !added {
				t.Fatalf("Toggle = %v, %v, %v", m, added, err)
			}
			got := s.Spans(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("Spans = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Start != tt.want[i].Start || got[i].End != tt.want[i].End {
					t.Errorf("span %d = [%d,%d), want [%d,%d)",
						i, got[i].Start, got[i].End, tt.want[i].Start, tt.want[i].End)
				}
			}
		})
	}
}

// Screening matches marks against whole splits joined by newlines; word
// boundaries and user anchors must keep working at interior line breaks.
func TestMatchesAcrossJoinedLines(t *testing.T) {
	joined := "level=info quiet\nERROR disk full\ntrailing line"
	tests := []struct {
		name    string
		kind    Kind
		pattern string
		want    bool
	}{
		{"small word at interior line start", SmallWord, "ERROR", true},
		{"big word at interior line end", BigWord, "full", true},
		{"anchored regex on interior line", Regex, "^ERROR", true},
		{"end anchored regex on interior line", Regex, "full$", true},
		{"absent word", SmallWord, "WARN", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := tt.kind.compile(tt.pattern)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if got := re.MatchString(joined); got != tt.want {
				t.Fatalf("MatchString = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggleAlternates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewStore(0)
		pattern := rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "pattern")
		n := rapid.IntRange(1, 8).Draw(t, "n")
		for i := 0; i < n; i++ {
			_, added, err := s.Toggle(pattern, Text)
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			wantAdded := i%2 == 0
			if added != wantAdded {
				t.Fatalf("toggle %d: added = %v, want %v", i, added, wantAdded)
			}
		}
		if present := s.Get(pattern) != nil; present != (n%2 == 1) {
			t.Fatalf("after %d toggles present = %v", n, present)
		}
	})
}

func TestInvalidRegexRejected(t *testing.T) {
	s := NewStore(0)
	if _, _, err := s.Toggle("(unclosed", Regex); err == nil {
		t.Fatal("Toggle with invalid regex succeeded")
	}
	if s.Len() != 0 {
		t.Fatalf("store not empty after failed toggle: %d", s.Len())
	}
}

func TestPaletteSlotReuse(t *testing.T) {
	s := NewStore(2)
	a, _, _ := s.Toggle("aaa", Text)
	b, _, _ := s.Toggle("bbb", Text)
	if a.Slot == b.Slot {
		t.Fatalf("distinct marks share slot %d", a.Slot)
	}
	// Palette exhausted: the third mark reuses the least-recently-assigned
	// slot, which is the first mark's.
	c, _, _ := s.Toggle("ccc", Text)
	if c.Slot != a.Slot {
		t.Fatalf("slot = %d, want reuse of %d", c.Slot, a.Slot)
	}
	// Removing a mark frees its slot for the next assignment.
	s.Remove("bbb")
	d, _, _ := s.Toggle("ddd", Text)
	if d.Slot != b.Slot {
		t.Fatalf("slot = %d, want freed slot %d", d.Slot, b.Slot)
	}
}

func TestSearchMarkReplacement(t *testing.T) {
	s := NewStore(0)
	gen := s.Generation()

	if _, err := s.AddSearch("first", Text); err != nil {
		t.Fatalf("AddSearch: %v", err)
	}
	if s.Generation() == gen {
		t.Fatal("generation unchanged after AddSearch")
	}
	if _, err := s.AddSearch("second", Text); err != nil {
		t.Fatalf("AddSearch: %v", err)
	}
	if m := s.SearchMark(); m == nil || m.Pattern != "second" {
		t.Fatalf("SearchMark = %+v, want second", m)
	}
	if s.Get("first") != nil {
		t.Fatal("old search mark not removed")
	}

	// Invalid replacement keeps the previous search.
	if _, err := s.AddSearch("(bad", Regex); err == nil {
		t.Fatal("AddSearch with invalid regex succeeded")
	}
	if m := s.SearchMark(); m == nil || m.Pattern != "second" {
		t.Fatalf("SearchMark after failure = %+v, want second", m)
	}
}

func TestAmend(t *testing.T) {
	s := NewStore(0)
	m, _, _ := s.Toggle("stripe", SmallWord)
	if err := s.Amend(m, "stripes"); err != nil {
		t.Fatalf("Amend: %v", err)
	}
	if m.Pattern != "stripes" || m.Kind != Text {
		t.Fatalf("mark after Amend = %+v", m)
	}

	s.Toggle("other", Text)
	if err := s.Amend(m, "other"); err == nil {
		t.Fatal("Amend onto existing pattern succeeded")
	}
	if err := s.Amend(m, ""); err == nil {
		t.Fatal("Amend to empty pattern succeeded")
	}
}

func TestWordAt(t *testing.T) {
	content := "time=12:30 level=error"
	tests := []struct {
		name      string
		pos       int
		kind      Kind
		want      string
		wantStart int
		wantOK    bool
	}{
		{"small word start", 0, SmallWord, "time", 0, true},
		{"small word stops at equals and colon", 6, SmallWord, "12", 5, true},
		{"big word spans punctuation", 6, BigWord, "time=12:30", 0, true},
		{"on delimiter", 4, SmallWord, "", 0, false},
		{"past end", 99, SmallWord, "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, ok := WordAt(content, tt.pos, tt.kind)
			if ok != tt.wantOK || word != tt.want || (ok && start != tt.wantStart) {
				t.Fatalf("WordAt = %q, %d, %v; want %q, %d, %v",
					word, start, ok, tt.want, tt.wantStart, tt.wantOK)
			}
		})
	}
}

func TestShortestSpanWins(t *testing.T) {
	s := NewStore(0)
	s.Toggle("connection reset", Text)
	s.Toggle("reset", Text)

	content := "peer connection reset by host"
	spans := s.Spans(content)

	// Position inside "reset" is covered by both marks; the shorter wins.
	best, ok := Shortest(spans, 17)
	if !ok {
		t.Fatal("no covering span")
	}
	if best.Mark.Pattern != "reset" {
		t.Fatalf("shortest span is %q, want %q", best.Mark.Pattern, "reset")
	}
	if got := At(spans, 17); len(got) != 2 {
		t.Fatalf("At = %d spans, want 2", len(got))
	}
	if _, ok := Shortest(spans, 0); ok {
		t.Fatal("span covering unmatched position")
	}
}
