// Package projection derives display facts for the review grid from the
// record store. Nothing here mutates its input.
package projection

import (
	"strings"
	"unicode/utf8"

	"github.com/colonyops/tms/internal/core/translation"
)

// DefaultLengthLimit is the character budget of a target value.
const DefaultLengthLimit = 50

// LengthCheck returns one flag per value: true when the value fits within
// limit characters.
//
// Characters are runes, not UTF-16 code units: an emoji or any other
// character outside the Basic Multilingual Plane counts once, where a
// JavaScript string length would count it twice. The grid's "n/limit"
// counter uses the same measure, so a value the reviewer sees as fitting
// is never flagged.
func LengthCheck(values []string, limit int) []bool {
	flags := make([]bool, len(values))
	for i, v := range values {
		flags[i] = utf8.RuneCountInString(v) <= limit
	}
	return flags
}

// IsLengthOK reports whether every value fits within limit. A record with
// no target values passes.
func IsLengthOK(values []string, limit int) bool {
	for _, ok := range LengthCheck(values, limit) {
		if !ok {
			return false
		}
	}
	return true
}

// Badge describes how a status is drawn.
type Badge struct {
	Icon  string
	Color string
}

// StatusBadge maps a status onto its icon and color. Unknown statuses get
// a neutral badge.
func StatusBadge(status translation.Status) Badge {
	switch status {
	case translation.StatusPending:
		return Badge{Icon: "clock", Color: "amber"}
	case translation.StatusInProgress:
		return Badge{Icon: "spinner", Color: "blue"}
	case translation.StatusApproved:
		return Badge{Icon: "check", Color: "green"}
	case translation.StatusRejected:
		return Badge{Icon: "times", Color: "red"}
	default:
		return Badge{Icon: "circle", Color: "gray"}
	}
}

// FilterState is the input of FilterRecords. Empty fields do not filter.
type FilterState struct {
	SearchText           string
	StatusFilter         translation.Status
	SourceLanguageFilter string
}

// IsZero reports whether no criterion is set.
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

// Matches reports whether r passes every criterion of f.
func (f FilterState) Matches(r translation.Record) bool {
	if f.StatusFilter != "" && r.Status != f.StatusFilter {
		return false
	}
	if f.SourceLanguageFilter != "" && r.SourceLanguage != f.SourceLanguageFilter {
		return false
	}
	if f.SearchText == "" {
		return true
	}

	q := strings.ToLower(f.SearchText)
	if strings.Contains(strings.ToLower(r.StringID), q) || strings.Contains(strings.ToLower(r.SourceValue), q) {
		return true
	}
	for _, v := range r.TargetValues {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// FilterRecords returns the records that pass f, in their original order.
func FilterRecords(records []translation.Record, f FilterState) []translation.Record {
	out := make([]translation.Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Row is a record together with what the grid needs to draw it.
type Row struct {
	Record   translation.Record
	LengthOK []bool
	AllOK    bool
	Badge    Badge
}

// Project computes the display row of every record.
func Project(records []translation.Record, limit int) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		flags := LengthCheck(r.TargetValues, limit)
		all := true
		for _, ok := range flags {
			all = all && ok
		}
		rows[i] = Row{
			Record:   r,
			LengthOK: flags,
			AllOK:    all,
			Badge:    StatusBadge(r.Status),
		}
	}
	return rows
}
