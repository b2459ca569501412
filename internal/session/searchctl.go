package session

import (
	"context"
	"errors"

	"github.com/sensille/logrok/internal/mark"
	"github.com/sensille/logrok/internal/search"
)

// Result is the outcome of a background search job, stamped with the
// sequence number of the command that started it.
type Result struct {
	Match search.Match
	Err   error
	Seq   uint64
}

// Job runs a search scan. It is safe to run off the event loop; the
// result must be handed back to ApplyResult on the loop.
type Job func(ctx context.Context) Result

// StartSearch installs a new search pattern and returns a job scanning
// from the cursor in the given direction. A pattern that fails to compile
// leaves the previous search untouched.
func (c *Controller) StartSearch(text string, isRegex bool, dir search.Direction) (Job, error) {
	p, err := search.Compile(text, isRegex)
	if err != nil {
		c.setStatus("%s", err)
		return nil, err
	}
	kind := mark.Text
	if isRegex {
		kind = mark.Regex
	}
	if _, err := c.marks.AddSearch(text, kind); err != nil {
		c.setStatus("%s", err)
		return nil, err
	}
	c.searchPat = p
	c.searchDir = dir
	c.lastMatch = nil
	from := search.Position{Line: c.cursor.Line, Col: c.cursor.Col}
	return c.job(p, from, dir), nil
}

// NextMatch returns a job continuing the active search in its direction,
// or nil when no search is active. reverse flips the direction for this
// jump only.
func (c *Controller) NextMatch(reverse bool) Job {
	if c.searchPat == nil {
		c.setStatus("no active search")
		return nil
	}
	dir := c.searchDir
	if reverse {
		if dir == search.Forward {
			dir = search.Backward
		} else {
			dir = search.Forward
		}
	}
	from := search.Position{Line: c.cursor.Line, Col: c.cursor.Col}
	if dir == search.Forward {
		from.Col++
	}
	return c.job(c.searchPat, from, dir)
}

func (c *Controller) job(p *search.Pattern, from search.Position, dir search.Direction) Job {
	c.searchSeq++
	seq := c.searchSeq
	src := c.cache
	count := c.ix.Len()
	opts := search.Options{Progress: c.progress}
	return func(ctx context.Context) Result {
		m, err := search.Find(ctx, src, count, p, from, dir, opts)
		return Result{Match: m, Err: err, Seq: seq}
	}
}

// ApplyResult merges a finished search back into the session. Results
// superseded by a newer search, and cancelled scans, are discarded.
func (c *Controller) ApplyResult(r Result) error {
	if r.Seq != c.searchSeq {
		return nil
	}
	if r.Err != nil {
		if errors.Is(r.Err, context.Canceled) {
			return nil
		}
		if errors.Is(r.Err, search.ErrNoMatch) {
			c.setStatus("no matches")
			return nil
		}
		return r.Err
	}
	m := r.Match
	c.lastMatch = &m
	c.cursor = Position{Line: m.Line, Col: m.Start}
	if m.Wrapped {
		c.setStatus("search wrapped")
	}
	return c.reanchorCursor()
}

// ClearSearch drops the active search pattern and its highlight mark.
// Marks pinned from earlier searches are kept. The cursor is re-anchored
// in case it sat on a line only the search kept visible.
func (c *Controller) ClearSearch() error {
	if sm := c.marks.SearchMark(); sm != nil {
		c.marks.Remove(sm.Pattern)
	}
	c.searchPat = nil
	c.lastMatch = nil
	c.searchSeq++
	return c.reanchorCursor()
}

// MarkFromSearch pins the active search pattern as a regular mark and
// ends the search.
func (c *Controller) MarkFromSearch() error {
	sm := c.marks.SearchMark()
	if sm == nil {
		c.setStatus("no active search")
		return nil
	}
	if err := c.marks.SetRole(sm.Pattern, mark.Marking); err != nil {
		return err
	}
	c.pushUndo(undoRoleChange{pattern: sm.Pattern, old: mark.Search})
	c.searchPat = nil
	c.lastMatch = nil
	return nil
}

// SearchActive reports whether a search pattern is installed.
func (c *Controller) SearchActive() bool { return c.searchPat != nil }

// LastMatch returns the most recent search hit, or nil.
func (c *Controller) LastMatch() *search.Match {
	if c.lastMatch == nil {
		return nil
	}
	m := *c.lastMatch
	return &m
}
