package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tms/internal/core/projection"
	"github.com/colonyops/tms/internal/core/translation"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		_, ok := GetPalette(name)
		assert.True(t, ok, name)
	}
}

func TestBlend(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#000000"), Blend("#000000", "#ffffff", 0))
	assert.Equal(t, lipgloss.Color("#ffffff"), Blend("#000000", "#ffffff", 1))
	assert.Equal(t, lipgloss.Color("not-a-color"), Blend("not-a-color", "#ffffff", 0.5))
}

func TestBadgeColor_FollowsTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)
	SetTheme(p)

	tests := []struct {
		status translation.Status
		want   lipgloss.Color
	}{
		{status: translation.StatusPending, want: p.Warning},
		{status: translation.StatusInProgress, want: p.Info},
		{status: translation.StatusApproved, want: p.Success},
		{status: translation.StatusRejected, want: p.Error},
		{status: "Archived", want: p.Muted},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, BadgeColor(projection.StatusBadge(tt.status).Color))
		})
	}
}

func TestBadge_UnknownIconFallsBack(t *testing.T) {
	assert.Contains(t, Badge(projection.Badge{Icon: "nope", Color: "gray"}), "○")
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.Heading.Color)
	assert.Equal(t, string(ColorPrimary), *cfg.Heading.Color)
}
