package tms

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/colonyops/tms/internal/backend/rest"
	"github.com/colonyops/tms/internal/core/annotation"
	"github.com/colonyops/tms/internal/core/grid"
	"github.com/colonyops/tms/internal/core/logging"
	"github.com/colonyops/tms/internal/core/translation"
	"github.com/colonyops/tms/internal/data/db"
	"github.com/colonyops/tms/internal/data/stores"
)

// Remote is the translation management API as seen by the review service.
// *rest.Client implements it.
type Remote interface {
	grid.Backend
	FetchRecords(ctx context.Context, lang string) ([]translation.Record, error)
	FetchComments(ctx context.Context, lang, id string) ([]annotation.Comment, error)
	FetchActivity(ctx context.Context, id string) ([]annotation.ActivityEntry, error)
}

var _ Remote = (*rest.Client)(nil)

// Origin tells where loaded data came from.
type Origin int

const (
	OriginRemote Origin = iota
	OriginCache
)

func (o Origin) String() string {
	if o == OriginCache {
		return "cache"
	}
	return "remote"
}

// ImportSummary reports what an import changed.
type ImportSummary struct {
	Added   int
	Updated int
	Pushed  int
}

// ReviewService loads records and annotations for the review grid and
// persists the effects the grid produces. With a remote configured it reads
// from the API and mirrors into the local cache; once the API is found
// unreachable it keeps working against the cache for the rest of the run.
type ReviewService struct {
	remote   Remote
	records  *stores.RecordStore
	comments *stores.CommentStore
	activity *stores.ActivityStore
	log      zerolog.Logger
	offline  atomic.Bool
}

// NewReviewService creates a service over database. A nil remote runs
// against the cache only.
func NewReviewService(remote Remote, database *db.DB) *ReviewService {
	s := &ReviewService{
		remote:   remote,
		records:  stores.NewRecordStore(database),
		comments: stores.NewCommentStore(database),
		activity: stores.NewActivityStore(database),
		log:      logging.Component("review"),
	}
	s.offline.Store(remote == nil)
	return s
}

// Offline reports whether the service currently works against the cache.
func (s *ReviewService) Offline() bool {
	return s.offline.Load()
}

// goOffline switches to the cache when err says the API could not be
// reached. It reports whether it did.
func (s *ReviewService) goOffline(ctx context.Context, err error) bool {
	var apiErr *rest.APIError
	if !errors.As(err, &apiErr) || !apiErr.NoResponse() {
		return false
	}
	if !s.offline.Swap(true) {
		s.log.Warn().Ctx(ctx).Err(err).Msg("backend unreachable, switching to local cache")
	}
	return true
}

// Records returns the records of lang.
func (s *ReviewService) Records(ctx context.Context, lang string) ([]translation.Record, Origin, error) {
	ctx = logging.WithLanguage(ctx, lang)

	if !s.Offline() {
		records, err := s.remote.FetchRecords(ctx, lang)
		switch {
		case err == nil:
			if err := s.records.SaveRecords(ctx, lang, records); err != nil {
				s.log.Error().Ctx(ctx).Err(err).Msg("failed to cache records")
			}
			return records, OriginRemote, nil
		case !s.goOffline(ctx, err):
			return nil, OriginRemote, err
		}
	}

	records, err := s.records.LoadRecords(ctx, lang)
	if err != nil {
		return nil, OriginCache, fmt.Errorf("load cached records: %w", err)
	}
	return records, OriginCache, nil
}

// Comments returns the comment thread of id.
func (s *ReviewService) Comments(ctx context.Context, lang, id string) ([]annotation.Comment, error) {
	ctx = logging.WithStringID(logging.WithLanguage(ctx, lang), id)

	if !s.Offline() {
		comments, err := s.remote.FetchComments(ctx, lang, id)
		switch {
		case err == nil:
			if err := s.comments.Replace(ctx, lang, id, comments); err != nil {
				s.log.Error().Ctx(ctx).Err(err).Msg("failed to cache comments")
			}
			return comments, nil
		case !s.goOffline(ctx, err):
			return nil, err
		}
	}

	return s.comments.List(ctx, lang, id)
}

// Activity returns the activity log of id.
func (s *ReviewService) Activity(ctx context.Context, id string) ([]annotation.ActivityEntry, error) {
	ctx = logging.WithStringID(ctx, id)

	if !s.Offline() {
		entries, err := s.remote.FetchActivity(ctx, id)
		switch {
		case err == nil:
			if err := s.activity.Save(ctx, id, entries); err != nil {
				s.log.Error().Ctx(ctx).Err(err).Msg("failed to cache activity")
			}
			return entries, nil
		case !s.goOffline(ctx, err):
			return nil, err
		}
	}

	return s.activity.List(ctx, id)
}

// Persist sends effects in order. Online, each effect goes to the API and,
// once accepted, to the cache. Failures do not stop later effects and
// nothing is rolled back; all failures are returned joined.
func (s *ReviewService) Persist(ctx context.Context, effects []grid.Effect) error {
	var errs []error
	for _, e := range effects {
		ectx := logging.WithStringID(ctx, e.RecordID())

		err := grid.DispatchAll(ectx, e, s.backends()...)
		if err != nil && s.goOffline(ectx, err) {
			err = grid.Dispatch(ectx, s.records, e)
		}
		if err != nil {
			s.log.Warn().Ctx(ectx).Err(err).Str("op", string(e.Op)).Msg("persist failed")
			errs = append(errs, fmt.Errorf("%s %s: %w", e.Op, e.RecordID(), err))
		}
	}
	return errors.Join(errs...)
}

func (s *ReviewService) backends() []grid.Backend {
	if s.Offline() {
		return []grid.Backend{s.records}
	}
	return []grid.Backend{s.remote, s.records}
}

// CachedLanguages lists the target languages with a cached snapshot.
func (s *ReviewService) CachedLanguages(ctx context.Context) ([]string, error) {
	return s.records.Languages(ctx)
}

// Import merges records into the cached snapshot of lang. Records whose id
// is already cached replace the cached copy in place; new records are
// appended. With push set, new records are also sent to the API.
func (s *ReviewService) Import(ctx context.Context, lang string, records []translation.Record, push bool) (ImportSummary, error) {
	ctx = logging.WithLanguage(ctx, lang)

	cached, err := s.records.LoadRecords(ctx, lang)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("load cached records: %w", err)
	}

	index := make(map[string]int, len(cached))
	for i, r := range cached {
		index[r.StringID] = i
	}

	var (
		summary ImportSummary
		added   []translation.Record
	)
	for _, r := range records {
		if i, ok := index[r.StringID]; ok {
			cached[i] = r
			summary.Updated++
			continue
		}
		index[r.StringID] = len(cached)
		cached = append(cached, r)
		added = append(added, r)
		summary.Added++
	}

	if err := s.records.SaveRecords(ctx, lang, cached); err != nil {
		return summary, fmt.Errorf("save records: %w", err)
	}

	if !push {
		return summary, nil
	}
	if s.Offline() {
		return summary, errors.New("push requires a configured backend")
	}

	for _, r := range added {
		if err := s.remote.AddRecord(ctx, grid.RecordAddPayload{Language: lang, Record: r}); err != nil {
			return summary, fmt.Errorf("push %q: %w", r.StringID, err)
		}
		summary.Pushed++
	}
	return summary, nil
}
