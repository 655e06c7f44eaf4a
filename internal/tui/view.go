package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/tms/internal/core/catalog"
	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/projection"
	"github.com/colonyops/tms/internal/core/styles"
	"github.com/colonyops/tms/internal/core/translation"
	"github.com/colonyops/tms/internal/tms"
)

const (
	colID     = 12
	colSource = 28
	colLang   = 4
	colValue  = 24
)

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case modeLoading:
		body = m.renderHeader() + "\n\n" + m.spinner.View() + " Loading strings..."
	case modeHelp:
		body = m.helpView.View() + "\n" + styles.ModalHelpStyle.Render("esc to close")
	case modeForm:
		body = m.renderHeader() + "\n\n" + styles.ModalStyle.Render(
			styles.ModalTitleStyle.Render("New string")+"\n\n"+m.form.View())
	default:
		body = m.renderGrid()
	}

	return m.toastView.Attach(body, m.width)
}

func (m Model) renderHeader() string {
	title := styles.CommandHeaderStyle.Render("tms review")
	lang := catalog.LanguageName(m.opts.Language)
	parts := []string{title, lang, styles.MutedStyle.Render(m.opts.Language)}
	if m.origin == tms.OriginCache {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.ColorWarning).Bold(true).Render("offline"))
	}
	return strings.Join(parts, styles.DividerStyle.Render(" · "))
}

func (m Model) renderGrid() string {
	v := m.ws.View()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(renderFilters(v.Filter))
	b.WriteString("\n\n")

	table := m.renderTable(v)
	if p := m.ws.Panel(); p.Open() {
		table = lipgloss.JoinHorizontal(lipgloss.Top, table, "  ", m.renderPanel(p))
	}
	b.WriteString(table)
	b.WriteString("\n")
	b.WriteString(styles.PagerStyle.Render(fmt.Sprintf("Page %d of %d · %d of %d strings", v.Page, v.TotalPages, v.Matches, v.Total)))

	switch m.mode {
	case modeSearch:
		b.WriteString("\n")
		b.WriteString(m.search.View())
	case modeMenu:
		b.WriteString("\n")
		b.WriteString(m.renderMenu())
	case modeConfirm:
		b.WriteString("\n")
		b.WriteString(styles.ModalStyle.Render(
			styles.ModalTitleStyle.Render(fmt.Sprintf("Remove %s?", m.confirm)) + "\n" +
				styles.ModalHelpStyle.Render("y to confirm · n to cancel")))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderFilters(f projection.FilterState) string {
	chip := func(label, value string) string {
		if value == "" {
			return styles.MutedStyle.Render(label + ": all")
		}
		return styles.FilterActiveStyle.Render(label + ": " + value)
	}

	search := styles.MutedStyle.Render("search: none")
	if f.SearchText != "" {
		search = styles.FilterActiveStyle.Render(fmt.Sprintf("search: %q", f.SearchText))
	}
	return strings.Join([]string{
		search,
		chip("status", string(f.StatusFilter)),
		chip("source", f.SourceLanguageFilter),
	}, "  ")
}

func (m Model) renderTable(v grid.View) string {
	header := styles.ColumnHeaderStyle.Render(
		pad("", 4) + " " + pad("STRING ID", colID) + " " + pad("SOURCE", colSource) + " " +
			pad("LANG", colLang) + " " + "TRANSLATIONS")

	if len(v.Rows) == 0 {
		msg := "No strings"
		if !v.Filter.IsZero() {
			msg = "No strings match the current filters"
		}
		return header + "\n" + styles.MutedStyle.Render(msg)
	}

	lines := make([]string, 0, len(v.Rows)+1)
	lines = append(lines, header)
	for i, row := range v.Rows {
		lines = append(lines, m.renderRow(i, row))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i int, row projection.Row) string {
	r := row.Record
	selected := i == m.row

	cursor, flag := " ", " "
	if selected {
		cursor = styles.CellFocusedStyle.Render("▌")
	}
	if m.ws.Notes().HasComments(r.StringID) {
		flag = "•"
	}
	marker := cursor + flag

	cells := []string{
		styles.Badge(row.Badge) + " ",
		pad(truncate(r.StringID, colID), colID),
		pad(truncate(r.SourceValue, colSource), colSource),
		pad(r.SourceLanguage, colLang),
		m.renderValues(r, row, selected),
	}

	line := marker + strings.Join(cells, " ")
	if selected {
		return styles.RowSelectedStyle.Render(line)
	}
	return styles.RowStyle.Render(line)
}

func (m Model) renderValues(r translation.Record, row projection.Row, selected bool) string {
	if len(r.TargetValues) == 0 {
		return styles.MutedStyle.Render("no translations")
	}

	limit := m.ws.Options().LengthLimit
	cells := make([]string, len(r.TargetValues))
	for j, value := range r.TargetValues {
		var text string
		switch {
		case m.ws.IsEditing(r.StringID, j):
			text = styles.CellEditingStyle.Render(m.editor.View())
		case selected && j == m.col:
			text = styles.CellFocusedStyle.Render(pad(truncate(displayValue(value), colValue), colValue))
		default:
			text = pad(truncate(displayValue(value), colValue), colValue)
		}

		count := fmt.Sprintf("%d/%d", utf8.RuneCountInString(value), limit)
		if row.LengthOK[j] {
			count = styles.LengthOKStyle.Render(count)
		} else {
			count = styles.LengthOverStyle.Render(count)
		}
		cells[j] = text + " " + count
	}
	return strings.Join(cells, styles.DividerStyle.Render(" │ "))
}

func (m Model) renderMenu() string {
	id := m.ws.ActiveMenu()
	r, err := m.ws.Store().Get(id)
	if err != nil {
		return ""
	}

	items := m.menuItems(r)
	lines := make([]string, len(items))
	for i, item := range items {
		if i == m.menuIdx {
			lines[i] = styles.MenuItemSelected.Render(" " + item.label + " ")
		} else {
			lines[i] = styles.MenuItemStyle.Render(" " + item.label + " ")
		}
	}
	return styles.MenuStyle.Render(styles.PanelTitleStyle.Render(id) + "\n" + strings.Join(lines, "\n"))
}

func (m Model) renderPanel(p grid.Panel) string {
	var b strings.Builder
	switch p.Kind {
	case grid.PanelComments:
		b.WriteString(styles.PanelTitleStyle.Render("Comments · " + p.RecordID))
		comments := m.ws.Notes().Comments(p.RecordID)
		if len(comments) == 0 {
			b.WriteString("\n" + styles.MutedStyle.Render("No comments yet"))
		}
		for _, c := range comments {
			b.WriteString("\n")
			b.WriteString(styles.CommentAuthor.Render(c.Author) + " " + styles.CommentTimestamp.Render(c.Timestamp))
			b.WriteString("\n")
			b.WriteString(c.Text)
		}
		if m.mode == modeComment {
			b.WriteString("\n\n")
			b.WriteString(m.comment.View())
		}
	case grid.PanelActivity:
		b.WriteString(styles.PanelTitleStyle.Render("Activity · " + p.RecordID))
		entries := m.ws.Notes().Activity(p.RecordID)
		if len(entries) == 0 {
			b.WriteString("\n" + styles.MutedStyle.Render("No activity recorded"))
		}
		for _, e := range entries {
			b.WriteString("\n")
			b.WriteString(styles.CommentTimestamp.Render(e.Timestamp) + " " + styles.CommentAuthor.Render(e.Actor) + " " + e.Action)
		}
	}
	return styles.PanelStyle.Width(40).Render(b.String())
}

func displayValue(v string) string {
	if v == "" {
		return "∅"
	}
	return v
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

func pad(s string, n int) string {
	return lipgloss.NewStyle().Width(n).Render(s)
}
