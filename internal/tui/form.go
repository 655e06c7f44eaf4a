package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/colonyops/tms/internal/core/translation"
)

// draft holds the values bound to the new string form.
type draft struct {
	id     string
	source string
	lang   string
}

func (m Model) openForm() (Model, tea.Cmd) {
	d := &draft{}
	if len(m.opts.SourceLanguages) > 0 {
		d.lang = m.opts.SourceLanguages[0]
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("String ID").
			Value(&d.id).
			Validate(func(s string) error {
				s = strings.TrimSpace(s)
				if s == "" {
					return errors.New("string id is required")
				}
				if m.ws.Store().Contains(s) {
					return translation.ErrDuplicateID
				}
				return nil
			}),
		huh.NewText().
			Title("Source text").
			Value(&d.source),
	}
	if len(m.opts.SourceLanguages) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Source language").
			Options(huh.NewOptions(m.opts.SourceLanguages...)...).
			Value(&d.lang))
	}

	keymap := huh.NewDefaultKeyMap()
	keymap.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))

	m.form = huh.NewForm(huh.NewGroup(fields...)).
		WithKeyMap(keymap).
		WithTheme(huh.ThemeCharm()).
		WithShowHelp(true).
		WithWidth(min(m.width, 72))
	m.draft = d
	m.mode = modeForm
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		d := m.draft
		m.form, m.draft = nil, nil
		m.mode = modeGrid
		return m.addRecord(translation.Record{
			StringID:       strings.TrimSpace(d.id),
			SourceValue:    d.source,
			SourceLanguage: d.lang,
			Status:         translation.StatusPending,
		})
	case huh.StateAborted:
		m.form, m.draft = nil, nil
		m.mode = modeGrid
		return m, nil
	}
	return m, cmd
}

func (m Model) addRecord(r translation.Record) (Model, tea.Cmd) {
	if err := m.ws.AddRecord(r); err != nil {
		return m, m.fail(err)
	}
	m.row, m.col = 0, 0
	m.clampCursor()
	return m, m.notify(LevelInfo, "Added "+r.StringID)
}
