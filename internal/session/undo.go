package session

import (
	"errors"

	"github.com/sensille/logrok/internal/mark"
	"github.com/sensille/logrok/internal/reflow"
	"github.com/sensille/logrok/internal/search"
)

// ErrEmptyStack reports an undo with nothing left to undo.
var ErrEmptyStack = errors.New("nothing to undo")

// undoEntry is the closed set of undoable mutations. Mode switches,
// searches, and plain navigation are not recorded.
type undoEntry interface {
	isUndo()
}

// undoMarkToggle records a mark added or removed by toggling.
type undoMarkToggle struct {
	pattern string
	kind    mark.Kind
	role    mark.Role
	added   bool
}

// undoRoleChange records a role change of an existing mark.
type undoRoleChange struct {
	pattern string
	old     mark.Role
}

// undoAmend records a pattern amendment. pattern is the amended value,
// prev and kind the state to restore.
type undoAmend struct {
	pattern string
	prev    string
	kind    mark.Kind
}

// undoTagToggle records a manual tag flip on one line.
type undoTagToggle struct {
	line int
}

// undoHideToggle records a manual hide flip on one line.
type undoHideToggle struct {
	line int
}

// undoIndentChange records a change of the global indent column.
type undoIndentChange struct {
	old int
}

// undoFoldChange records a fold state change on one line.
type undoFoldChange struct {
	line int
	old  reflow.Fold
}

func (undoMarkToggle) isUndo()   {}
func (undoRoleChange) isUndo()   {}
func (undoAmend) isUndo()        {}
func (undoTagToggle) isUndo()    {}
func (undoHideToggle) isUndo()   {}
func (undoIndentChange) isUndo() {}
func (undoFoldChange) isUndo()   {}

func (c *Controller) pushUndo(e undoEntry) {
	c.undo = append(c.undo, e)
}

// Undo reverses the most recent undoable mutation.
func (c *Controller) Undo() error {
	if len(c.undo) == 0 {
		c.setStatus("nothing to undo")
		return ErrEmptyStack
	}
	e := c.undo[len(c.undo)-1]
	c.undo = c.undo[:len(c.undo)-1]

	switch e := e.(type) {
	case undoMarkToggle:
		if e.added {
			c.marks.Remove(e.pattern)
			break
		}
		if _, _, err := c.marks.Toggle(e.pattern, e.kind); err != nil {
			return err
		}
		if e.role != mark.Marking {
			if err := c.marks.SetRole(e.pattern, e.role); err != nil {
				return err
			}
		}
	case undoRoleChange:
		if err := c.marks.SetRole(e.pattern, e.old); err != nil {
			return err
		}
		if e.old == mark.Search {
			// Undoing a pin revives the search itself.
			m := c.marks.Get(e.pattern)
			p, err := search.Compile(e.pattern, m != nil && m.Kind == mark.Regex)
			if err != nil {
				return err
			}
			c.searchPat = p
			c.lastMatch = nil
		}
	case undoAmend:
		m := c.marks.Get(e.pattern)
		if m == nil {
			break
		}
		role := m.Role
		c.marks.Remove(e.pattern)
		nm, _, err := c.marks.Toggle(e.prev, e.kind)
		if err != nil {
			return err
		}
		if role != mark.Marking {
			if err := c.marks.SetRole(nm.Pattern, role); err != nil {
				return err
			}
		}
	case undoTagToggle:
		st := c.table.ensure(e.line)
		st.manualTag = !st.manualTag
		c.table.compact(e.line)
	case undoHideToggle:
		st := c.table.ensure(e.line)
		st.manualHide = !st.manualHide
		c.table.compact(e.line)
	case undoIndentChange:
		c.indentCol = e.old
	case undoFoldChange:
		st := c.table.ensure(e.line)
		st.fold = e.old
		st.foldSet = true
		c.table.compact(e.line)
	}
	return nil
}
