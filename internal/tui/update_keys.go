package tui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/translation"
)

const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyTab   = "tab"
	keyCtrlC = "ctrl+c"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m.quit()
	}

	switch m.mode {
	case modeLoading:
		return m, nil
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	case modeMenu:
		return m.handleMenuKey(msg)
	case modeComment:
		return m.handleCommentKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeHelp:
		return m.handleHelpKey(msg)
	default:
		return m.handleGridKey(msg)
	}
}

func (m Model) handleGridKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == keyEsc {
		// Esc clears notices before it closes the side panel.
		if m.toasts.HasToasts() {
			m.toasts.Dismiss()
			return m, nil
		}
		m.ws.ClosePanel()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		} else if m.ws.Page() > 1 {
			m.ws.PrevPage()
			m.row = len(m.ws.View().Rows) - 1
		}
		m.clampCursor()

	case key.Matches(msg, m.keys.Down):
		if m.row < len(m.ws.View().Rows)-1 {
			m.row++
		} else if v := m.ws.View(); v.Page < v.TotalPages {
			m.ws.NextPage()
			m.row = 0
		}
		m.clampCursor()

	case key.Matches(msg, m.keys.Left):
		m.col--
		m.clampCursor()

	case key.Matches(msg, m.keys.Right):
		m.col++
		m.clampCursor()

	case key.Matches(msg, m.keys.NextPage):
		m.ws.NextPage()
		m.row = 0
		m.clampCursor()

	case key.Matches(msg, m.keys.PrevPage):
		m.ws.PrevPage()
		m.row = 0
		m.clampCursor()

	case key.Matches(msg, m.keys.Edit):
		r, ok := m.currentRecord()
		if !ok {
			return m, nil
		}
		if len(r.TargetValues) == 0 {
			return m.addValue(r.StringID)
		}
		return m.beginEdit(r.StringID, m.col)

	case key.Matches(msg, m.keys.AddValue):
		if r, ok := m.currentRecord(); ok {
			return m.addValue(r.StringID)
		}

	case key.Matches(msg, m.keys.RemoveValue):
		r, ok := m.currentRecord()
		if !ok || len(r.TargetValues) == 0 {
			return m, nil
		}
		if err := m.ws.RemoveTargetValue(r.StringID, m.col); err != nil {
			return m, m.fail(err)
		}
		m.clampCursor()

	case key.Matches(msg, m.keys.CycleStatus):
		if r, ok := m.currentRecord(); ok {
			return m.setStatus(r.StringID, nextStatus(r.Status))
		}

	case key.Matches(msg, m.keys.Menu):
		if r, ok := m.currentRecord(); ok {
			m.ws.ToggleMenu(r.StringID)
			m.menuIdx = 0
			m.mode = modeMenu
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.ws.Filter().SearchText)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.StatusFilter):
		m.ws.CycleStatusFilter()
		m.row = 0
		m.clampCursor()

	case key.Matches(msg, m.keys.LangFilter):
		m.ws.CycleSourceLanguageFilter(m.opts.SourceLanguages)
		m.row = 0
		m.clampCursor()

	case key.Matches(msg, m.keys.ClearFilters):
		m.ws.ClearFilters()
		m.row = 0
		m.clampCursor()

	case key.Matches(msg, m.keys.Comments):
		if r, ok := m.currentRecord(); ok {
			return m.openComments(r.StringID)
		}

	case key.Matches(msg, m.keys.Activity):
		if r, ok := m.currentRecord(); ok {
			return m.openActivity(r.StringID)
		}

	case key.Matches(msg, m.keys.NewString):
		return m.openForm()

	case key.Matches(msg, m.keys.Reload):
		m.toasts.DismissAll()
		m.mode = modeLoading
		return m, tea.Batch(m.spinner.Tick, loadRecordsCmd(m.opts.Service, m.opts.Language, m.opts.Timeout))

	case key.Matches(msg, m.keys.Help):
		return m.openHelp()
	}

	return m, nil
}

// quit closes the editor and leaves once every queued effect has been
// persisted.
func (m Model) quit() (Model, tea.Cmd) {
	m.ws.EndEdit()
	m.editor.Blur()
	m.quitting = true
	return m, nil
}

func (m Model) beginEdit(id string, index int) (Model, tea.Cmd) {
	if err := m.ws.BeginEdit(id, index); err != nil {
		return m, m.fail(err)
	}
	m.col = index
	m.mode = modeEdit
	m.editor.SetValue(m.ws.EditingValue())
	m.editor.CursorEnd()
	return m, m.editor.Focus()
}

func (m Model) addValue(id string) (Model, tea.Cmd) {
	idx, err := m.ws.AddTargetValue(id)
	if errors.Is(err, translation.ErrCapacityExceeded) {
		return m, m.notify(LevelWarning, fmt.Sprintf("A string holds at most %d translations", translation.MaxTargetValues))
	}
	if err != nil {
		return m, m.fail(err)
	}
	return m.beginEdit(id, idx)
}

func (m Model) setStatus(id string, status translation.Status) (Model, tea.Cmd) {
	if err := m.ws.SetStatus(id, status); err != nil {
		return m, m.fail(err)
	}
	m.clampCursor()
	return m, nil
}

// nextStatus steps through the known statuses. Unknown values restart at
// the first one.
func nextStatus(s translation.Status) translation.Status {
	order := translation.Statuses()
	i := slices.Index(order, s)
	return order[(i+1)%len(order)]
}

func (m Model) openComments(id string) (Model, tea.Cmd) {
	if err := m.ws.OpenComments(id); err != nil {
		return m, m.fail(err)
	}
	m.mode = modeComment
	m.comment.SetValue("")
	return m, tea.Batch(m.comment.Focus(), loadCommentsCmd(m.opts.Service, m.opts.Language, id, m.opts.Timeout))
}

func (m Model) openActivity(id string) (Model, tea.Cmd) {
	if p := m.ws.Panel(); p.Open() && p.RecordID == id {
		m.ws.ClosePanel()
		return m, nil
	}
	if err := m.ws.OpenActivity(id); err != nil {
		return m, m.fail(err)
	}
	return m, loadActivityCmd(m.opts.Service, id, m.opts.Timeout)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		m.mode = modeGrid
		m.search.Blur()
		return m, nil
	case keyEsc:
		m.mode = modeGrid
		m.search.Blur()
		m.search.SetValue("")
		m.ws.SetSearch("")
		m.row = 0
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.ws.Filter().SearchText {
		m.ws.SetSearch(m.search.Value())
		m.row = 0
		m.clampCursor()
	}
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.ws.EndEdit()
		m.editor.Blur()
		m.mode = modeGrid
		m.clampCursor()
		return m, nil
	case keyTab:
		cell, ok := m.ws.Editing()
		if !ok {
			return m, nil
		}
		r, err := m.ws.Store().Get(cell.RecordID)
		if err != nil || cell.ValueIndex+1 >= len(r.TargetValues) {
			return m, nil
		}
		return m.beginEdit(cell.RecordID, cell.ValueIndex+1)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != m.ws.EditingValue() {
		if _, err := m.ws.Type(m.editor.Value()); err != nil {
			return m, tea.Batch(cmd, m.fail(err))
		}
	}
	return m, cmd
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.comment.Blur()
		m.ws.ClosePanel()
		m.mode = modeGrid
		return m, nil
	case keyEnter:
		p := m.ws.Panel()
		_, err := m.ws.AddComment(p.RecordID, m.comment.Value())
		switch {
		case errors.Is(err, annotation.ErrEmptyComment):
			return m, m.notify(LevelWarning, "Comment is empty")
		case err != nil:
			return m, m.fail(err)
		}
		m.comment.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", keyEnter:
		id := m.confirm
		m.confirm = ""
		m.mode = modeGrid
		if err := m.ws.RemoveRecord(id); err != nil {
			return m, m.fail(err)
		}
		m.clampCursor()
		return m, m.notify(LevelInfo, fmt.Sprintf("Removed %s", id))
	case "n", "N", keyEsc:
		m.confirm = ""
		m.mode = modeGrid
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.String() == keyEsc, key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = modeGrid
		return m, nil
	}

	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}
