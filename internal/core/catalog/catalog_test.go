package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBand(t *testing.T) {
	tests := []struct {
		progress int
		want     Band
	}{
		{progress: 100, want: BandComplete},
		{progress: 80, want: BandComplete},
		{progress: 79, want: BandPartial},
		{progress: 50, want: BandPartial},
		{progress: 49, want: BandLow},
		{progress: 0, want: BandLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBand(tt.progress), "progress %d", tt.progress)
	}
}

func TestFilterLanguages(t *testing.T) {
	langs := []Language{
		{CountryName: "France", CountryCode: "FR", LanguageName: "French", LanguageCode: "fr"},
		{CountryName: "Germany", CountryCode: "DE", LanguageName: "German", LanguageCode: "de"},
		{CountryName: "Spain", CountryCode: "ES", LanguageName: "Spanish", LanguageCode: "es"},
	}

	names := func(ls []Language) []string {
		out := []string{}
		for _, l := range ls {
			out = append(out, l.LanguageName)
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty keeps all", query: "", want: []string{"French", "German", "Spanish"}},
		{name: "language name", query: "germ", want: []string{"German"}},
		{name: "country code ignores case", query: "es", want: []string{"Spanish"}},
		{name: "no country name match", query: "france", want: []string{}},
		{name: "shared prefix", query: "Fr", want: []string{"French"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterLanguages(langs, tt.query)))
		})
	}
}

func TestFilterProjects(t *testing.T) {
	projects := []Project{
		{ID: "1", Name: "Mobile App", Type: "app", Status: "Active"},
		{ID: "2", Name: "Website", Type: "web", Status: "Archived"},
	}

	assert.Len(t, FilterProjects(projects, ""), 2)
	assert.Equal(t, "2", FilterProjects(projects, "archived")[0].ID)
	assert.Equal(t, "1", FilterProjects(projects, " mobile ")[0].ID)
	assert.Empty(t, FilterProjects(projects, "desktop"))
}

func TestFilterVariants(t *testing.T) {
	variants := []Variant{
		{ID: "v1", Name: "Default", Branch: "main"},
		{ID: "v2", Name: "Holiday", Branch: "release/holiday", Description: "seasonal copy"},
	}

	assert.Equal(t, "v2", FilterVariants(variants, "seasonal")[0].ID)
	assert.Equal(t, "v1", FilterVariants(variants, "MAIN")[0].ID)
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "fr", want: "French (français)"},
		{code: "en", want: "English"},
		{code: "de", want: "German (Deutsch)"},
		{code: "not a tag!", want: "not a tag!"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, LanguageName(tt.code))
		})
	}
}
