// Package editsession tracks which single cell of the review grid has
// focus. It holds no text: edits are written straight through to the
// record store, so the session only answers "who is being edited".
package editsession

// Cell addresses one target value of one record.
type Cell struct {
	RecordID   string
	ValueIndex int
}

// Session is either idle or editing exactly one cell.
type Session struct {
	cell   Cell
	active bool
}

// Begin focuses cell, replacing any cell that was being edited. The
// displaced cell is returned so the caller can treat it as blurred.
func (s *Session) Begin(recordID string, index int) (prev Cell, displaced bool) {
	prev, displaced = s.cell, s.active
	s.cell = Cell{RecordID: recordID, ValueIndex: index}
	s.active = true
	if displaced && prev == s.cell {
		displaced = false
	}
	return prev, displaced
}

// End returns to idle and reports the cell that was closed, if any.
func (s *Session) End() (Cell, bool) {
	prev, was := s.cell, s.active
	s.cell = Cell{}
	s.active = false
	return prev, was
}

// Active returns the focused cell.
func (s *Session) Active() (Cell, bool) {
	return s.cell, s.active
}

// IsEditing reports whether the given cell has focus.
func (s *Session) IsEditing(recordID string, index int) bool {
	return s.active && s.cell.RecordID == recordID && s.cell.ValueIndex == index
}

// IsEditingRecord reports whether any cell of the record has focus.
func (s *Session) IsEditingRecord(recordID string) bool {
	return s.active && s.cell.RecordID == recordID
}

// ClearRecord ends the session when it points at recordID.
func (s *Session) ClearRecord(recordID string) bool {
	if !s.IsEditingRecord(recordID) {
		return false
	}
	s.End()
	return true
}

// Shift keeps the focused index in step after the value at removed was
// deleted from recordID. If the focused value itself was removed the
// session ends.
func (s *Session) Shift(recordID string, removed int) {
	if !s.IsEditingRecord(recordID) {
		return
	}
	switch {
	case s.cell.ValueIndex == removed:
		s.End()
	case s.cell.ValueIndex > removed:
		s.cell.ValueIndex--
	}
}
