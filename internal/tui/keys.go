package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings of the review grid.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	Edit         key.Binding
	AddValue     key.Binding
	RemoveValue  key.Binding
	CycleStatus  key.Binding
	Menu         key.Binding
	Search       key.Binding
	StatusFilter key.Binding
	LangFilter   key.Binding
	ClearFilters key.Binding
	Comments     key.Binding
	Activity     key.Binding
	NewString    key.Binding
	Reload       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev value")),
		Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next value")),
		NextPage:     key.NewBinding(key.WithKeys("pgdown", "n"), key.WithHelp("n", "next page")),
		PrevPage:     key.NewBinding(key.WithKeys("pgup", "p"), key.WithHelp("p", "prev page")),
		Edit:         key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		AddValue:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add value")),
		RemoveValue:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove value")),
		CycleStatus:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Menu:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		StatusFilter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
		LangFilter:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language filter")),
		ClearFilters: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Comments:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "comments")),
		Activity:     key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "activity")),
		NewString:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new string")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.CycleStatus, k.Search, k.Menu, k.Comments, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextPage, k.PrevPage},
		{k.Edit, k.AddValue, k.RemoveValue, k.CycleStatus, k.Menu, k.NewString},
		{k.Search, k.StatusFilter, k.LangFilter, k.ClearFilters},
		{k.Comments, k.Activity, k.Reload, k.Help, k.Quit},
	}
}
