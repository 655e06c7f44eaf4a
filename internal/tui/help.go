package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/colonyops/tms/internal/core/styles"
	"github.com/colonyops/tms/internal/core/translation"
)

const helpMarkdown = `# Reviewing strings

Each row is one source string with up to %d candidate translations.
Translations longer than the length limit are flagged in red.

## Moving around

| Key | Action |
|-----|--------|
| ↑ ↓ / k j | previous / next string |
| ← → / h l | previous / next translation |
| n p | next / previous page |

## Editing

| Key | Action |
|-----|--------|
| enter | edit the focused translation |
| tab | move the editor to the next translation |
| a | add a translation |
| x | remove the focused translation |
| s | cycle the approval status |
| m | open the row menu |
| N | add a new string |

Edits are saved when the editor closes. Unchanged text is not sent.

## Filtering

| Key | Action |
|-----|--------|
| / | search source text and translations |
| f | cycle the status filter |
| L | cycle the source language filter |
| c | clear all filters |

## Annotations

| Key | Action |
|-----|--------|
| C | comment thread (enter posts, esc closes) |
| A | activity log |
| esc | dismiss the newest notice, then close the panel |
`

func (m Model) openHelp() (Model, tea.Cmd) {
	body := fmt.Sprintf(helpMarkdown, translation.MaxTargetValues)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(max(m.width-4, 40)),
	)
	if err == nil {
		if out, rerr := renderer.Render(body); rerr == nil {
			body = out
		}
	}

	m.helpView.SetContent(body)
	m.helpView.GotoTop()
	m.mode = modeHelp
	return m, nil
}
