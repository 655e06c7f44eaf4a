// Package catalog models the project, variant and language listings that
// lead to the review grid. A reviewer picks a project, then one of its
// variants, then a target language, and reviews that language's records.
package catalog

import (
	"strings"
)

// Project is a translation project.
type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Variant is a branch of a project with its own set of strings.
type Variant struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Branch      string `json:"branch"`
	Status      string `json:"status"`
}

// Language is a target language of a variant together with its review
// progress.
type Language struct {
	ID           string `json:"id"`
	CountryName  string `json:"countryName"`
	CountryCode  string `json:"countryCode"`
	LanguageName string `json:"languageName"`
	LanguageCode string `json:"languageCode"`
	Progress     int    `json:"progress"` // percent, 0..100
	TotalTexts   int    `json:"totalTexts"`
}

// Band groups a progress percentage.
type Band string

const (
	BandComplete Band = "complete"
	BandPartial  Band = "partial"
	BandLow      Band = "low"
)

// ProgressBand classifies a progress percentage: 80 and above is complete,
// 50 and above is partial, anything lower is low.
func ProgressBand(progress int) Band {
	switch {
	case progress >= 80:
		return BandComplete
	case progress >= 50:
		return BandPartial
	default:
		return BandLow
	}
}

// FilterLanguages returns the languages whose name, country code or
// language code contains query, ignoring case. An empty query keeps all.
func FilterLanguages(langs []Language, query string) []Language {
	return filter(langs, query, func(l Language) []string {
		return []string{l.LanguageName, l.CountryCode, l.LanguageCode}
	})
}

// FilterProjects returns the projects whose name, type or status contains
// query, ignoring case. An empty query keeps all.
func FilterProjects(projects []Project, query string) []Project {
	return filter(projects, query, func(p Project) []string {
		return []string{p.Name, p.Type, p.Status}
	})
}

// FilterVariants returns the variants whose name, branch or description
// contains query, ignoring case.
func FilterVariants(variants []Variant, query string) []Variant {
	return filter(variants, query, func(v Variant) []string {
		return []string{v.Name, v.Branch, v.Description}
	})
}

func filter[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q == "" || anyContains(fields(it), q) {
			out = append(out, it)
		}
	}
	return out
}

func anyContains(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
