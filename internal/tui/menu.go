package tui

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/tms/internal/core/translation"
)

// menuItem is one entry of a row's action menu.
type menuItem struct {
	label string
	run   func(m Model, id string) (Model, tea.Cmd)
}

func statusItem(label string, status translation.Status) menuItem {
	return menuItem{
		label: label,
		run: func(m Model, id string) (Model, tea.Cmd) {
			return m.setStatus(id, status)
		},
	}
}

// menuItems lists the actions offered for record r.
func (m Model) menuItems(r translation.Record) []menuItem {
	items := []menuItem{
		statusItem("Approve", translation.StatusApproved),
		statusItem("Reject", translation.StatusRejected),
		statusItem("Mark in progress", translation.StatusInProgress),
		statusItem("Mark pending", translation.StatusPending),
	}

	if next := nextSourceLanguage(m.opts.SourceLanguages, r.SourceLanguage); next != "" {
		items = append(items, menuItem{
			label: fmt.Sprintf("Source language: %s", next),
			run: func(m Model, id string) (Model, tea.Cmd) {
				if err := m.ws.SetSourceLanguage(id, next); err != nil {
					return m, m.fail(err)
				}
				m.clampCursor()
				return m, nil
			},
		})
	}

	return append(items,
		menuItem{label: "Add translation", run: func(m Model, id string) (Model, tea.Cmd) { return m.addValue(id) }},
		menuItem{label: "Comments", run: func(m Model, id string) (Model, tea.Cmd) { return m.openComments(id) }},
		menuItem{label: "Activity log", run: func(m Model, id string) (Model, tea.Cmd) { return m.openActivity(id) }},
		menuItem{label: "Remove string", run: func(m Model, id string) (Model, tea.Cmd) {
			m.confirm = id
			m.mode = modeConfirm
			return m, nil
		}},
	)
}

// nextSourceLanguage returns the language after current in langs, wrapping
// around. It returns "" when there is nothing to switch to.
func nextSourceLanguage(langs []string, current string) string {
	if len(langs) == 0 || (len(langs) == 1 && langs[0] == current) {
		return ""
	}
	i := slices.Index(langs, current)
	return langs[(i+1)%len(langs)]
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	id := m.ws.ActiveMenu()
	r, err := m.ws.Store().Get(id)
	if err != nil {
		m.ws.CloseMenu()
		m.mode = modeGrid
		return m, nil
	}
	items := m.menuItems(r)

	switch msg.String() {
	case "up", "k":
		m.menuIdx = (m.menuIdx - 1 + len(items)) % len(items)
	case "down", "j":
		m.menuIdx = (m.menuIdx + 1) % len(items)
	case keyEsc, "m", "q":
		m.ws.CloseMenu()
		m.mode = modeGrid
	case keyEnter:
		item := items[min(m.menuIdx, len(items)-1)]
		m.ws.CloseMenu()
		m.mode = modeGrid
		return item.run(m, id)
	}
	return m, nil
}
