package session

import "github.com/sensille/logrok/internal/reflow"

// lineStatus holds the manual flags and fold state of one physical line.
// Lines in their default state have no entry; the table stays sparse.
type lineStatus struct {
	manualTag  bool
	manualHide bool
	foldSet    bool
	fold       reflow.Fold
}

func (st *lineStatus) empty() bool {
	return st == nil || (!st.manualTag && !st.manualHide && !st.foldSet)
}

// lineTable is the sparse per-line state store.
type lineTable struct {
	statuses map[int]*lineStatus
}

func newLineTable() *lineTable {
	return &lineTable{statuses: make(map[int]*lineStatus)}
}

// get returns the status entry for line n, or nil when the line is
// untouched.
func (t *lineTable) get(n int) *lineStatus {
	return t.statuses[n]
}

// ensure returns the status entry for line n, creating it if needed.
func (t *lineTable) ensure(n int) *lineStatus {
	st := t.statuses[n]
	if st == nil {
		st = &lineStatus{}
		t.statuses[n] = st
	}
	return st
}

// compact drops an entry that has returned to the default state.
func (t *lineTable) compact(n int) {
	if st := t.statuses[n]; st != nil && st.empty() {
		delete(t.statuses, n)
	}
}

// hasManualTag reports whether any line in [first,last] carries a manual
// tag. The table holds only user-touched lines, so the walk is short.
func (t *lineTable) hasManualTag(first, last int) bool {
	for n, st := range t.statuses {
		if st.manualTag && n >= first && n <= last {
			return true
		}
	}
	return false
}

// derivedFlags caches the mark-derived tag/hide flags of one line.
type derivedFlags struct {
	tag  bool
	hide bool
}

// splitFlags caches whether any tagging mark or the active search matches
// anywhere within one split.
type splitFlags struct {
	tag    bool
	search bool
}
