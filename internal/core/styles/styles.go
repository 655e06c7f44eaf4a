// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/tms/internal/core/projection"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
	ColorInfo       lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	MutedStyle         lipgloss.Style

	// Grid styles.
	HeaderStyle       lipgloss.Style
	ColumnHeaderStyle lipgloss.Style
	RowStyle          lipgloss.Style
	RowSelectedStyle  lipgloss.Style
	CellEditingStyle  lipgloss.Style
	CellFocusedStyle  lipgloss.Style
	LengthOverStyle   lipgloss.Style
	LengthOKStyle     lipgloss.Style
	FilterActiveStyle lipgloss.Style
	PagerStyle        lipgloss.Style
	MenuStyle         lipgloss.Style
	MenuItemStyle     lipgloss.Style
	MenuItemSelected  lipgloss.Style

	// Panel and modal styles.
	PanelStyle        lipgloss.Style
	PanelTitleStyle   lipgloss.Style
	CommentAuthor     lipgloss.Style
	CommentTimestamp  lipgloss.Style
	ModalStyle        lipgloss.Style
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
	HelpKeyStyle      lipgloss.Style
	HelpDescStyle     lipgloss.Style
	ProgressCompleted lipgloss.Style
	ProgressPartial   lipgloss.Style
	ProgressLow       lipgloss.Style

	// Toast styles.
	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorInfo = p.Info

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true).
		PaddingBottom(1)
	ColumnHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true)
	RowStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	RowSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(Blend(ColorBackground, ColorSurface, 0.6))
	CellEditingStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface).
		Underline(true)
	CellFocusedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	LengthOverStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	LengthOKStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	FilterActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSecondary).
		Padding(0, 1)
	PagerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	MenuStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	MenuItemStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	MenuItemSelected = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(0, 1)
	PanelTitleStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	CommentAuthor = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommentTimestamp = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	HelpDescStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ProgressCompleted = lipgloss.NewStyle().Foreground(ColorSuccess)
	ProgressPartial = lipgloss.NewStyle().Foreground(ColorWarning)
	ProgressLow = lipgloss.NewStyle().Foreground(ColorError)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toastBase.BorderForeground(ColorInfo).Foreground(ColorForeground)
	ToastWarningStyle = toastBase.BorderForeground(ColorWarning).Foreground(ColorWarning)
	ToastErrorStyle = toastBase.BorderForeground(ColorError).Foreground(ColorError)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// badgeIcons maps the icon names of projection.Badge onto glyphs.
var badgeIcons = map[string]string{
	"clock":   "◷",
	"spinner": "◌",
	"check":   "✔",
	"times":   "✘",
	"circle":  "○",
}

// BadgeColor resolves a projection badge color name against the palette.
func BadgeColor(name string) lipgloss.Color {
	switch name {
	case "amber":
		return ColorWarning
	case "blue":
		return ColorInfo
	case "green":
		return ColorSuccess
	case "red":
		return ColorError
	default:
		return ColorMuted
	}
}

// Badge renders a status badge as a colored glyph.
func Badge(b projection.Badge) string {
	icon, ok := badgeIcons[b.Icon]
	if !ok {
		icon = badgeIcons["circle"]
	}
	return lipgloss.NewStyle().Foreground(BadgeColor(b.Color)).Render(icon)
}
