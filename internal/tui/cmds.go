package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/translation"
	"github.com/colonyops/tms/internal/tms"
)

// Service loads and persists review data. *tms.ReviewService implements it.
type Service interface {
	Records(ctx context.Context, lang string) ([]translation.Record, tms.Origin, error)
	Comments(ctx context.Context, lang, id string) ([]annotation.Comment, error)
	Activity(ctx context.Context, id string) ([]annotation.ActivityEntry, error)
	Persist(ctx context.Context, effects []grid.Effect) error
	Offline() bool
}

var _ Service = (*tms.ReviewService)(nil)

type recordsLoadedMsg struct {
	records []translation.Record
	origin  tms.Origin
	err     error
}

type commentsLoadedMsg struct {
	id       string
	comments []annotation.Comment
	err      error
}

type activityLoadedMsg struct {
	id      string
	entries []annotation.ActivityEntry
	err     error
}

type persistedMsg struct {
	count int
	err   error
}

func loadRecordsCmd(svc Service, lang string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		records, origin, err := svc.Records(ctx, lang)
		return recordsLoadedMsg{records: records, origin: origin, err: err}
	}
}

func loadCommentsCmd(svc Service, lang, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		comments, err := svc.Comments(ctx, lang, id)
		return commentsLoadedMsg{id: id, comments: comments, err: err}
	}
}

func loadActivityCmd(svc Service, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := svc.Activity(ctx, id)
		return activityLoadedMsg{id: id, entries: entries, err: err}
	}
}

// persistCmd sends one batch of effects. The model runs at most one at a
// time.
func persistCmd(svc Service, effects []grid.Effect, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return persistedMsg{count: len(effects), err: svc.Persist(ctx, effects)}
	}
}
