// Package grid holds the review screen state: the record store, the filter,
// the current page, the single open editor and menu, and the annotation
// panel. It is the only writer of the store and turns every mutation into
// an Effect for the backend.
//
// Workspace performs no I/O and is not safe for concurrent use.
package grid

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/editsession"
	"github.com/colonyops/tms/internal/core/pagination"
	"github.com/colonyops/tms/internal/core/projection"
	"github.com/colonyops/tms/internal/core/translation"
)

// ErrMissingID is returned when a record without a string id is added.
var ErrMissingID = errors.New("string id is required")

// Options configures a Workspace.
type Options struct {
	TargetLanguage string
	LengthLimit    int
	Author         string
}

// PanelKind selects what the annotation panel shows.
type PanelKind int

const (
	PanelNone PanelKind = iota
	PanelComments
	PanelActivity
)

// Panel is the annotation panel state. At most one record's annotations
// are shown at a time.
type Panel struct {
	Kind     PanelKind
	RecordID string
}

// Open reports whether the panel shows anything.
func (p Panel) Open() bool { return p.Kind != PanelNone }

// View is what the grid renders for the current state.
type View struct {
	Rows       []projection.Row
	Page       int
	TotalPages int
	Matches    int // records passing the filter
	Total      int // records in the store
	Filter     projection.FilterState
}

// Workspace is the single UI-state structure of the review screen.
type Workspace struct {
	opts    Options
	store   *translation.Store
	notes   *annotation.Service
	pager   *pagination.Pager
	filter  projection.FilterState
	edit    editsession.Session
	popover editsession.Popover
	panel   Panel

	// value of the focused cell when focus arrived
	editOrigin string

	effects []Effect
}

// New creates a workspace over store and notes. The workspace subscribes to
// the store so that structural changes reset the page and removed records
// drop out of the editor, menu and panel.
func New(store *translation.Store, notes *annotation.Service, opts Options) *Workspace {
	if opts.LengthLimit < 1 {
		opts.LengthLimit = projection.DefaultLengthLimit
	}

	w := &Workspace{
		opts:  opts,
		store: store,
		notes: notes,
		pager: pagination.NewPager(pagination.DefaultPageSize),
	}
	store.Subscribe(w.onStoreEvent)
	return w
}

func (w *Workspace) onStoreEvent(ev translation.Event) {
	switch ev.Kind {
	case translation.EventRecordRemoved:
		if w.edit.ClearRecord(ev.RecordID) {
			w.editOrigin = ""
		}
		w.popover.ClearRecord(ev.RecordID)
		if w.panel.RecordID == ev.RecordID {
			w.panel = Panel{}
		}
	case translation.EventHydrated:
		w.edit.End()
		w.editOrigin = ""
		w.popover.Close()
		w.panel = Panel{}
	}

	if ev.Structural() {
		w.pager.Reset()
		return
	}
	w.pager.Sync(len(w.filtered()))
}

// Store returns the underlying record store for read access.
func (w *Workspace) Store() *translation.Store { return w.store }

// Notes returns the annotation cache.
func (w *Workspace) Notes() *annotation.Service { return w.notes }

// Options returns the workspace options.
func (w *Workspace) Options() Options { return w.opts }

func (w *Workspace) filtered() []translation.Record {
	return projection.FilterRecords(w.store.Records(), w.filter)
}

// View projects the current page.
func (w *Workspace) View() View {
	filtered := w.filtered()
	page := pagination.Paginate(filtered, w.pager.Size(), w.pager.Current())
	return View{
		Rows:       projection.Project(page.Items, w.opts.LengthLimit),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Matches:    len(filtered),
		Total:      w.store.Len(),
		Filter:     w.filter,
	}
}

// Filter returns the current filter.
func (w *Workspace) Filter() projection.FilterState { return w.filter }

func (w *Workspace) setFilter(f projection.FilterState) {
	if f == w.filter {
		return
	}
	w.filter = f
	w.pager.Reset()
}

// SetSearch replaces the search text.
func (w *Workspace) SetSearch(text string) {
	f := w.filter
	f.SearchText = text
	w.setFilter(f)
}

// SetStatusFilter restricts the grid to one status; "" shows all.
func (w *Workspace) SetStatusFilter(status translation.Status) {
	f := w.filter
	f.StatusFilter = status
	w.setFilter(f)
}

// CycleStatusFilter steps through all, then each known status in turn.
func (w *Workspace) CycleStatusFilter() translation.Status {
	order := append([]translation.Status{""}, translation.Statuses()...)
	i := slices.Index(order, w.filter.StatusFilter)
	next := order[(i+1)%len(order)]
	w.SetStatusFilter(next)
	return next
}

// SetSourceLanguageFilter restricts the grid to one source language.
func (w *Workspace) SetSourceLanguageFilter(lang string) {
	f := w.filter
	f.SourceLanguageFilter = lang
	w.setFilter(f)
}

// CycleSourceLanguageFilter steps through all, then each of langs.
func (w *Workspace) CycleSourceLanguageFilter(langs []string) string {
	order := append([]string{""}, langs...)
	i := slices.Index(order, w.filter.SourceLanguageFilter)
	next := order[(i+1)%len(order)]
	w.SetSourceLanguageFilter(next)
	return next
}

// ClearFilters removes every criterion.
func (w *Workspace) ClearFilters() {
	w.setFilter(projection.FilterState{})
}

// Page returns the current page.
func (w *Workspace) Page() int { return w.pager.Current() }

// NextPage moves forward one page if possible.
func (w *Workspace) NextPage() { w.pager.Next(len(w.filtered())) }

// PrevPage moves back one page if possible.
func (w *Workspace) PrevPage() { w.pager.Prev() }

// SetPage jumps to page, clamped to the available pages.
func (w *Workspace) SetPage(page int) { w.pager.Set(page, len(w.filtered())) }

func (w *Workspace) emit(op Op, payload any) {
	w.effects = append(w.effects, Effect{Op: op, Payload: payload})
}

// TakeEffects returns the pending effects in the order they were produced
// and clears the queue.
func (w *Workspace) TakeEffects() []Effect {
	out := w.effects
	w.effects = nil
	return out
}

// Hydrate replaces all records, e.g. after a fetch from the backend. It
// produces no effects.
func (w *Workspace) Hydrate(records []translation.Record) error {
	return w.store.Hydrate(records)
}

// AddRecord inserts a new record at the top of the grid. An empty status
// defaults to Pending.
func (w *Workspace) AddRecord(r translation.Record) error {
	r.StringID = strings.TrimSpace(r.StringID)
	if r.StringID == "" {
		return ErrMissingID
	}
	if r.Status == "" {
		r.Status = translation.StatusPending
	}
	if err := w.store.Add(r); err != nil {
		return err
	}

	added, _ := w.store.Get(r.StringID)
	w.emit(OpRecordAdd, RecordAddPayload{Language: w.opts.TargetLanguage, Record: added})
	return nil
}

// RemoveRecord deletes a record.
func (w *Workspace) RemoveRecord(id string) error {
	if err := w.store.Remove(id); err != nil {
		return err
	}
	w.emit(OpRecordRemove, RecordRemovePayload{Language: w.opts.TargetLanguage, RecordID: id})
	return nil
}

// SetStatus changes the approval status of a record.
func (w *Workspace) SetStatus(id string, status translation.Status) error {
	r, err := w.store.Get(id)
	if err != nil {
		return err
	}
	if r.Status == status {
		return nil
	}
	if err := w.store.UpdateStatus(id, status); err != nil {
		return err
	}
	w.emit(OpStatusChange, StatusPayload{Language: w.opts.TargetLanguage, RecordID: id, Status: status})
	return nil
}

// SetSourceLanguage changes the source language of a record.
func (w *Workspace) SetSourceLanguage(id, lang string) error {
	r, err := w.store.Get(id)
	if err != nil {
		return err
	}
	if r.SourceLanguage == lang {
		return nil
	}
	if err := w.store.UpdateSourceLanguage(id, lang); err != nil {
		return err
	}
	w.emit(OpSourceLanguageChange, SourceLanguagePayload{RecordID: id, SourceLanguage: lang})
	return nil
}

// AddTargetValue appends an empty candidate translation and focuses it.
func (w *Workspace) AddTargetValue(id string) (int, error) {
	idx, err := w.store.AddTargetValue(id)
	if err != nil {
		return -1, err
	}
	if err := w.BeginEdit(id, idx); err != nil {
		return -1, err
	}
	return idx, nil
}

// RemoveTargetValue deletes a candidate translation. An editor focused on
// a later value of the same record follows it down; an editor on the
// removed value closes without producing a change.
func (w *Workspace) RemoveTargetValue(id string, index int) error {
	before, err := w.store.Get(id)
	if err != nil {
		return err
	}
	if err := w.store.RemoveTargetValue(id, index); err != nil {
		return err
	}

	if w.edit.IsEditing(id, index) {
		w.editOrigin = ""
	}
	w.edit.Shift(id, index)

	after, _ := w.store.Get(id)
	w.emit(OpTargetValueChange, TargetValuePayload{
		Language: w.opts.TargetLanguage,
		RecordID: id,
		Index:    index,
		Value:    before.TargetValues[index],
		Values:   after.TargetValues,
		Removed:  true,
	})
	return nil
}

// BeginEdit focuses a target value. A different cell that had focus is
// blurred first, which persists it if its text changed.
func (w *Workspace) BeginEdit(id string, index int) error {
	r, err := w.store.Get(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(r.TargetValues) {
		return fmt.Errorf("edit %q[%d]: %w", id, index, translation.ErrIndexOutOfRange)
	}

	if w.edit.IsEditing(id, index) {
		return nil
	}

	prev, displaced := w.edit.Begin(id, index)
	if displaced {
		w.flush(prev)
	}
	w.editOrigin = r.TargetValues[index]
	return nil
}

// Type writes value straight into the focused cell. It returns false when no
// cell has focus.
func (w *Workspace) Type(value string) (bool, error) {
	cell, ok := w.edit.Active()
	if !ok {
		return false, nil
	}
	if err := w.store.SetTargetValue(cell.RecordID, cell.ValueIndex, value); err != nil {
		return false, err
	}
	return true, nil
}

// EndEdit blurs the focused cell, persisting it if its text changed.
func (w *Workspace) EndEdit() {
	cell, ok := w.edit.End()
	if ok {
		w.flush(cell)
	}
}

// Editing returns the focused cell.
func (w *Workspace) Editing() (editsession.Cell, bool) {
	return w.edit.Active()
}

// IsEditing reports whether the given cell has focus.
func (w *Workspace) IsEditing(id string, index int) bool {
	return w.edit.IsEditing(id, index)
}

// EditingValue returns the current text of the focused cell.
func (w *Workspace) EditingValue() string {
	cell, ok := w.edit.Active()
	if !ok {
		return ""
	}
	r, err := w.store.Get(cell.RecordID)
	if err != nil || cell.ValueIndex >= len(r.TargetValues) {
		return ""
	}
	return r.TargetValues[cell.ValueIndex]
}

func (w *Workspace) flush(cell editsession.Cell) {
	origin := w.editOrigin
	w.editOrigin = ""

	r, err := w.store.Get(cell.RecordID)
	if err != nil || cell.ValueIndex >= len(r.TargetValues) {
		return
	}
	value := r.TargetValues[cell.ValueIndex]
	if value == origin {
		return
	}
	w.emit(OpTargetValueChange, TargetValuePayload{
		Language: w.opts.TargetLanguage,
		RecordID: cell.RecordID,
		Index:    cell.ValueIndex,
		Value:    value,
		Values:   r.TargetValues,
	})
}

// ToggleMenu opens the row menu of id, closing any other.
func (w *Workspace) ToggleMenu(id string) { w.popover.Toggle(id) }

// CloseMenu closes the open row menu.
func (w *Workspace) CloseMenu() { w.popover.Close() }

// MenuOpen reports whether the row menu of id is open.
func (w *Workspace) MenuOpen(id string) bool { return w.popover.IsOpen(id) }

// ActiveMenu returns the id whose menu is open, or "".
func (w *Workspace) ActiveMenu() string { return w.popover.Active() }

// OpenComments shows the comment thread of id.
func (w *Workspace) OpenComments(id string) error {
	return w.openPanel(PanelComments, id)
}

// OpenActivity shows the activity log of id.
func (w *Workspace) OpenActivity(id string) error {
	return w.openPanel(PanelActivity, id)
}

func (w *Workspace) openPanel(kind PanelKind, id string) error {
	if !w.store.Contains(id) {
		return fmt.Errorf("open annotations %q: %w", id, translation.ErrNotFound)
	}
	w.panel = Panel{Kind: kind, RecordID: id}
	return nil
}

// ClosePanel hides the annotation panel.
func (w *Workspace) ClosePanel() { w.panel = Panel{} }

// Panel returns the annotation panel state.
func (w *Workspace) Panel() Panel { return w.panel }

// AddComment appends a comment by the workspace author to the thread of id.
func (w *Workspace) AddComment(id, text string) (annotation.Comment, error) {
	if !w.store.Contains(id) {
		return annotation.Comment{}, fmt.Errorf("comment %q: %w", id, translation.ErrNotFound)
	}
	c, err := w.notes.AddComment(id, text, w.opts.Author)
	if err != nil {
		return annotation.Comment{}, err
	}
	w.emit(OpCommentAdd, CommentPayload{Language: w.opts.TargetLanguage, RecordID: id, Comment: c})
	return c, nil
}
