package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/tms/internal/core/styles"
)

const (
	iconInfo    = "ℹ"
	iconWarning = "⚠"
	iconError   = "✘"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the notices under the grid, newest last.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notice.Level {
	case LevelError:
		icon = iconError
		style = styles.ToastErrorStyle
	case LevelWarning:
		icon = iconWarning
		style = styles.ToastWarningStyle
	default:
		icon = iconInfo
		style = styles.ToastInfoStyle
	}

	content := icon + " " + t.notice.Message
	if t.repeats > 0 {
		content += fmt.Sprintf(" (x%d)", t.repeats+1)
	}
	return style.Width(toastWidth).Render(content)
}

// Attach places the toast stack under background, aligned to the right
// edge of a screen width columns wide.
func (v *ToastView) Attach(background string, width int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}

	placed := lipgloss.PlaceHorizontal(max(width, lipgloss.Width(toastContent)), lipgloss.Right, toastContent)
	return lipgloss.JoinVertical(lipgloss.Left, background, placed)
}
