package tui

import (
	"errors"
	"net/http"

	"github.com/colonyops/tms/internal/backend/rest"
	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/translation"
	"github.com/colonyops/tms/internal/tms"
)

// reviewerErrors are refusals the reviewer can correct from the grid.
var reviewerErrors = []error{
	translation.ErrNotFound,
	translation.ErrDuplicateID,
	translation.ErrIndexOutOfRange,
	translation.ErrCapacityExceeded,
	grid.ErrMissingID,
	annotation.ErrEmptyComment,
	tms.ErrOffline,
}

// noticeFor grades a failed load, save or edit. API failures take their
// level from the response: no answer and 4xx refusals are warnings, rejected
// credentials and server faults are errors.
func noticeFor(err error) Notice {
	n := Notice{Level: LevelError, Message: err.Error()}

	var apiErr *rest.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden:
			n.Message += " (check backend.token)"
		case apiErr.NoResponse(), apiErr.Status < http.StatusInternalServerError:
			n.Level = LevelWarning
		}
		return n
	}

	for _, target := range reviewerErrors {
		if errors.Is(err, target) {
			n.Level = LevelWarning
			break
		}
	}
	return n
}
