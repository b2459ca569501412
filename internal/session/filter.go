package session

import (
	"errors"

	"github.com/sensille/logrok/internal/document"
)

// Mode selects how restrictive the display filter is. Modes are totally
// ordered: every mode's visible set is a subset of the previous one's.
type Mode int

const (
	// ModeAll shows every line, ignoring hide flags.
	ModeAll Mode = iota
	// ModeNormal suppresses hidden lines.
	ModeNormal
	// ModeTagged additionally requires a tag or search match.
	ModeTagged
	// ModeManual accepts only explicit tags and search matches;
	// mark-derived tags do not count.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeNormal:
		return "normal"
	case ModeTagged:
		return "tagged"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// ParseMode resolves a persisted mode name. Unknown names report ok
// false.
func ParseMode(name string) (Mode, bool) {
	for m := ModeAll; m <= ModeManual; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return ModeNormal, false
}

// ErrEmptyVisibleSet reports a mode switch whose visible set would be
// empty; the mode is left unchanged.
var ErrEmptyVisibleSet = errors.New("nothing to display")

// refreshDerived drops the per-line and per-split caches when the mark
// store changed underneath them.
func (c *Controller) refreshDerived() {
	gen := c.marks.Generation()
	if gen != c.derivedGen {
		clear(c.derived)
		clear(c.screens)
		c.derivedGen = gen
	}
}

// markFlags returns the mark-derived tag/hide flags for a line, cached per
// mark store generation.
func (c *Controller) markFlags(n int, content string) (tag, hide bool) {
	c.refreshDerived()
	if f, ok := c.derived[n]; ok {
		return f.tag, f.hide
	}
	f := derivedFlags{tag: c.marks.TagMatch(content), hide: c.marks.HideMatch(content)}
	c.derived[n] = f
	return f.tag, f.hide
}

// lineVisible decides whether line n is shown under the given mode.
func (c *Controller) lineVisible(n int, mode Mode) (bool, error) {
	if mode == ModeAll {
		return true, nil
	}
	content, err := c.cache.Line(n)
	if err != nil {
		return false, err
	}

	searchHit := c.searchPat != nil && c.searchPat.Matches(content)
	st := c.table.get(n)
	manualTag := st != nil && st.manualTag
	manualHide := st != nil && st.manualHide
	markTag, markHide := c.markFlags(n, content)

	if (manualHide || markHide) && !searchHit {
		return false, nil
	}
	switch mode {
	case ModeNormal:
		return true, nil
	case ModeTagged:
		return manualTag || markTag || searchHit, nil
	default: // ModeManual
		return manualTag || searchHit, nil
	}
}

// screenFor reports whether any tagging mark or the active search matches
// anywhere in split id, computed once per mark generation. The joined
// split text over-approximates per-line matches, so a negative screen
// proves the split holds no matching line.
func (c *Controller) screenFor(id int) (splitFlags, error) {
	c.refreshDerived()
	if f, ok := c.screens[id]; ok {
		return f, nil
	}
	text, err := c.cache.SplitText(id)
	if err != nil {
		return splitFlags{}, err
	}
	f := splitFlags{tag: c.marks.TagMatch(text)}
	if c.searchPat != nil {
		f.search = c.searchPat.Matches(text)
	}
	c.screens[id] = f
	return f, nil
}

// splitSkippable reports whether no line of split id can be visible under
// mode, without examining individual lines.
func (c *Controller) splitSkippable(id int, mode Mode) (bool, error) {
	if mode != ModeTagged && mode != ModeManual {
		return false, nil
	}
	first, last := c.cache.SplitSpan(id)
	if c.table.hasManualTag(first, last) {
		return false, nil
	}
	f, err := c.screenFor(id)
	if err != nil {
		return false, err
	}
	if f.search {
		return false, nil
	}
	return mode == ModeManual || !f.tag, nil
}

// NextVisible returns the first visible line at or after from (inclusive)
// under the current mode. ok is false when no such line exists. Splits
// whose screen proves no visible line are stepped over whole.
func (c *Controller) NextVisible(from int, inclusive bool) (line int, ok bool, err error) {
	n := from
	if !inclusive {
		n++
	}
	if n < 0 {
		n = 0
	}
	for n < c.ix.Len() {
		id := n / document.SplitLines
		skip, err := c.splitSkippable(id, c.mode)
		if err != nil {
			return 0, false, err
		}
		if skip {
			n = (id + 1) * document.SplitLines
			continue
		}
		_, last := c.cache.SplitSpan(id)
		for ; n <= last; n++ {
			visible, err := c.lineVisible(n, c.mode)
			if err != nil {
				return 0, false, err
			}
			if visible {
				return n, true, nil
			}
		}
	}
	return 0, false, nil
}

// PrevVisible returns the last visible line at or before from (inclusive)
// under the current mode. ok is false when no such line exists.
func (c *Controller) PrevVisible(from int, inclusive bool) (line int, ok bool, err error) {
	n := from
	if !inclusive {
		n--
	}
	if n >= c.ix.Len() {
		n = c.ix.Len() - 1
	}
	for n >= 0 {
		id := n / document.SplitLines
		skip, err := c.splitSkippable(id, c.mode)
		if err != nil {
			return 0, false, err
		}
		if skip {
			n = id*document.SplitLines - 1
			continue
		}
		first, _ := c.cache.SplitSpan(id)
		for ; n >= first; n-- {
			visible, err := c.lineVisible(n, c.mode)
			if err != nil {
				return 0, false, err
			}
			if visible {
				return n, true, nil
			}
		}
	}
	return 0, false, nil
}

// nearestVisible finds the visible line closest to from, preferring
// forward in file order.
func (c *Controller) nearestVisible(from int) (int, bool, error) {
	if n, ok, err := c.NextVisible(from, true); ok || err != nil {
		return n, ok, err
	}
	return c.PrevVisible(from, true)
}

// SetMode moves one step through the mode order. Forward switches are
// rejected when the target mode would display nothing; backward switches
// are always defined. The cursor stays on its line when still visible and
// otherwise moves to the nearest visible line.
func (c *Controller) SetMode(forward bool) error {
	old := c.mode
	switch {
	case forward && c.mode == ModeManual:
		return nil
	case !forward && c.mode == ModeAll:
		return nil
	case forward:
		c.mode++
	default:
		c.mode--
	}

	line, ok, err := c.nearestVisible(c.cursor.Line)
	if err != nil {
		c.mode = old
		return err
	}
	if !ok {
		c.mode = old
		c.setStatus("nothing to display")
		return ErrEmptyVisibleSet
	}
	if line != c.cursor.Line {
		c.cursor = Position{Line: line}
	}
	return nil
}

// Mode returns the active display mode.
func (c *Controller) Mode() Mode { return c.mode }

// RestoreMode applies a persisted display mode by name. Unknown names are
// ignored; a restore that would display nothing stops at the last
// non-empty mode. Leftover status from rejected steps is cleared.
func (c *Controller) RestoreMode(name string) {
	target, ok := ParseMode(name)
	if !ok {
		return
	}
	for c.mode < target {
		if err := c.SetMode(true); err != nil {
			break
		}
	}
	for c.mode > target {
		if err := c.SetMode(false); err != nil {
			break
		}
	}
	c.status = ""
}
