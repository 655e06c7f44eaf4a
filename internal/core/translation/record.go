// Package translation holds the in-memory collection of translatable strings
// shown in the review grid and the operations that mutate it.
package translation

import (
	"slices"
	"strings"
)

// MaxTargetValues is the hard cap on candidate translations per record.
const MaxTargetValues = 3

// Status is the approval state of a record. Values received from a backend
// that are not one of the known constants are kept as-is.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusApproved   Status = "Approved"
	StatusRejected   Status = "Rejected"
)

// Statuses returns the known statuses in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusApproved, StatusRejected}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return slices.Contains(Statuses(), s)
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus maps user or backend input onto a known status. Matching is
// case-insensitive and ignores spaces, so "in progress" yields InProgress.
func ParseStatus(raw string) (Status, bool) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	for _, s := range Statuses() {
		if strings.ToLower(string(s)) == norm {
			return s, true
		}
	}
	return Status(raw), false
}

// Record is one translatable unit: a source string and up to
// MaxTargetValues candidate translations into the active target language.
type Record struct {
	StringID       string   `json:"stringId"`
	SourceValue    string   `json:"sourceValue"`
	SourceLanguage string   `json:"sourceLanguage,omitempty"`
	TargetValues   []string `json:"targetValues"`
	Status         Status   `json:"status"`
}

// clone returns a copy that shares no slice storage with r.
func (r Record) clone() Record {
	r.TargetValues = slices.Clone(r.TargetValues)
	if r.TargetValues == nil {
		r.TargetValues = []string{}
	}
	return r
}
