// Package tui implements the interactive review grid.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/styles"
	"github.com/colonyops/tms/internal/core/translation"
	"github.com/colonyops/tms/internal/tms"
)

const defaultTimeout = 15 * time.Second

// mode is what currently receives key presses.
type mode int

const (
	modeLoading mode = iota
	modeGrid
	modeSearch
	modeEdit
	modeMenu
	modeComment
	modeConfirm
	modeForm
	modeHelp
)

// Options configures the TUI.
type Options struct {
	Service         Service
	Language        string
	LengthLimit     int
	Author          string
	SourceLanguages []string
	Timeout         time.Duration // per backend call
}

// Model is the Bubble Tea model of the review grid.
type Model struct {
	opts Options
	ws   *grid.Workspace
	keys KeyMap

	mode    mode
	row     int // cursor within the visible page
	col     int // focused target value
	menuIdx int
	confirm string // id awaiting removal confirmation
	origin  tms.Origin

	pending    []grid.Effect // produced while a persist is running
	persisting bool          // one persist command at a time
	quitting   bool          // quit once pending is drained

	help     help.Model
	spinner  spinner.Model
	search   textinput.Model
	editor   textinput.Model
	comment  textinput.Model
	helpView viewport.Model
	form     *huh.Form
	draft    *draft

	toasts    *ToastController
	toastView *ToastView

	width  int
	height int
}

// New creates the model with an empty workspace. Records load on Init.
func New(opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	store, _ := translation.NewStore()
	ws := grid.New(store, annotation.NewService(), grid.Options{
		TargetLanguage: opts.Language,
		LengthLimit:    opts.LengthLimit,
		Author:         opts.Author,
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.CellFocusedStyle

	search := textinput.New()
	search.Placeholder = "Search source or translations..."
	search.CharLimit = 100
	search.Prompt = "/ "

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 500

	comment := textinput.New()
	comment.Placeholder = "Write a comment..."
	comment.CharLimit = 1000
	comment.Prompt = "› "

	toasts := NewToastController()

	return Model{
		opts:      opts,
		ws:        ws,
		keys:      DefaultKeyMap(),
		mode:      modeLoading,
		help:      help.New(),
		spinner:   sp,
		search:    search,
		editor:    editor,
		comment:   comment,
		helpView:  viewport.New(80, 20),
		toasts:    toasts,
		toastView: NewToastView(toasts),
		width:     100,
		height:    30,
	}
}

// Workspace exposes the review state, for callers that drive the model
// outside a running program.
func (m Model) Workspace() *grid.Workspace {
	return m.ws
}

// Init starts loading records.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadRecordsCmd(m.opts.Service, m.opts.Language, m.opts.Timeout))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m, cmd = m.update(msg)

	m.pending = append(m.pending, m.ws.TakeEffects()...)
	if next := m.nextPersist(); next != nil {
		cmd = tea.Batch(cmd, next)
	}
	if m.quitting && m.idle() {
		return m, tea.Batch(cmd, tea.Quit)
	}
	return m, cmd
}

// nextPersist starts a persist command for the queued effects unless one is
// already running. Effects reach the backend in the order they were made.
func (m *Model) nextPersist() tea.Cmd {
	if m.persisting || len(m.pending) == 0 {
		return nil
	}
	batch := m.pending
	m.pending = nil
	m.persisting = true
	return persistCmd(m.opts.Service, batch, m.opts.Timeout)
}

// idle reports whether every produced effect has been answered.
func (m Model) idle() bool {
	return !m.persisting && len(m.pending) == 0
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	if m.mode == modeForm {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m.updateForm(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.helpView.Width = msg.Width
		m.helpView.Height = max(msg.Height-4, 5)
		return m, nil

	case spinner.TickMsg:
		if m.mode != modeLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case recordsLoadedMsg:
		return m.handleRecordsLoaded(msg)

	case commentsLoadedMsg:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.ws.Notes().LoadComments(msg.id, msg.comments)
		return m, nil

	case activityLoadedMsg:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.ws.Notes().LoadActivity(msg.id, msg.entries)
		return m, nil

	case persistedMsg:
		m.persisting = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeForm && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleRecordsLoaded(msg recordsLoadedMsg) (Model, tea.Cmd) {
	m.mode = modeGrid
	if msg.err != nil {
		return m, m.fail(msg.err)
	}
	if err := m.ws.Hydrate(msg.records); err != nil {
		return m, m.fail(err)
	}

	m.origin = msg.origin
	m.row, m.col = 0, 0
	if msg.origin == tms.OriginCache {
		return m, m.notify(LevelWarning, "Working offline: showing cached strings")
	}
	return m, nil
}

// notify pushes a toast and starts the countdown if needed.
func (m Model) notify(level Level, message string) tea.Cmd {
	return m.show(Notice{Level: level, Message: message})
}

// fail reports err at the level noticeFor grades it.
func (m Model) fail(err error) tea.Cmd {
	return m.show(noticeFor(err))
}

func (m Model) show(n Notice) tea.Cmd {
	m.toasts.Push(n)
	if m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

// currentRecord returns the record under the cursor.
func (m Model) currentRecord() (translation.Record, bool) {
	rows := m.ws.View().Rows
	if m.row < 0 || m.row >= len(rows) {
		return translation.Record{}, false
	}
	return rows[m.row].Record, true
}

// clampCursor keeps the cursor on an existing row and value.
func (m *Model) clampCursor() {
	rows := m.ws.View().Rows
	m.row = min(max(m.row, 0), max(len(rows)-1, 0))
	if len(rows) == 0 {
		m.col = 0
		return
	}
	n := len(rows[m.row].Record.TargetValues)
	m.col = min(max(m.col, 0), max(n-1, 0))
}
