package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastView_View_empty(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c)

	assert.Empty(t, v.View())
}

func TestToastView_View_renders_each_level(t *testing.T) {
	tests := []struct {
		level Level
		icon  string
	}{
		{LevelError, iconError},
		{LevelWarning, iconWarning},
		{LevelInfo, iconInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			c := NewToastController()
			v := NewToastView(c)

			c.Push(Notice{Level: tt.level, Message: "test msg"})

			out := v.View()
			require.NotEmpty(t, out)
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "test msg")
		})
	}
}

func TestToastView_View_stacks_multiple(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c)

	c.Push(Notice{Level: LevelInfo, Message: "first"})
	c.Push(Notice{Level: LevelError, Message: "second"})

	out := v.View()
	firstIdx := strings.Index(out, "first")
	secondIdx := strings.Index(out, "second")

	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	// Oldest (first) should appear before newest (second) in the output.
	assert.Less(t, firstIdx, secondIdx)
}

func TestToastView_View_counts_repeats(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c)

	failed := Notice{Level: LevelError, Message: "status STR001: Server exploded"}
	c.Push(failed)
	assert.NotContains(t, v.View(), "(x")

	c.Push(failed)
	c.Push(failed)
	assert.Contains(t, v.View(), "(x3)")
}

func TestToastView_Attach_empty_returns_background(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c)

	bg := "background content"
	assert.Equal(t, bg, v.Attach(bg, 80))
}

func TestToastView_Attach_places_below_right(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c)

	c.Push(Notice{Level: LevelInfo, Message: "positioned"})

	width := 120
	bg := "grid"
	out := v.Attach(bg, width)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "grid"))

	toastLine := -1
	for i, line := range lines {
		if strings.Contains(line, "positioned") {
			toastLine = i
			break
		}
	}
	require.NotEqual(t, -1, toastLine, "toast text not found in output lines")
	assert.Positive(t, toastLine, "toast should sit below the background")
	assert.Equal(t, width, lipgloss.Width(lines[toastLine]))
	assert.True(t, strings.HasPrefix(lines[toastLine], " "), "toast should be right aligned")
}
