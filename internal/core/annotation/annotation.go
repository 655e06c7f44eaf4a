// Package annotation keeps the comment threads and activity logs attached to
// records, keyed by string id. Threads are append-only; activity logs are
// read-only copies of what a backend supplied.
package annotation

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// TimestampLayout is the format of comment and activity timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrEmptyComment is returned when a comment has no text after trimming.
var ErrEmptyComment = errors.New("comment text is empty")

// Comment is one entry of a record's discussion thread.
type Comment struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
}

// ActivityEntry is one historical action performed on a record.
type ActivityEntry struct {
	Action    string `json:"action"`
	Actor     string `json:"actor"`
	Timestamp string `json:"timestamp"`
}

// Service caches annotations for the records of one workspace.
type Service struct {
	now      func() time.Time
	comments map[string][]Comment
	activity map[string][]ActivityEntry
	local    map[string][]Comment // added here, not yet seen in a load
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp new comments.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an empty annotation cache.
func NewService(opts ...Option) *Service {
	s := &Service{
		now:      time.Now,
		comments: make(map[string][]Comment),
		activity: make(map[string][]ActivityEntry),
		local:    make(map[string][]Comment),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddComment appends a comment to the thread of recordID, stamped with the
// local time at second precision.
func (s *Service) AddComment(recordID, text, author string) (Comment, error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, ErrEmptyComment
	}

	c := Comment{
		Text:      text,
		Author:    author,
		Timestamp: s.now().Local().Format(TimestampLayout),
	}
	s.comments[recordID] = append(s.comments[recordID], c)
	s.local[recordID] = append(s.local[recordID], c)
	return c, nil
}

// Comments returns the thread of recordID in insertion order. A record
// without comments yields an empty slice.
func (s *Service) Comments(recordID string) []Comment {
	out := slices.Clone(s.comments[recordID])
	if out == nil {
		out = []Comment{}
	}
	return out
}

// Activity returns the activity log of recordID as supplied.
func (s *Service) Activity(recordID string) []ActivityEntry {
	out := slices.Clone(s.activity[recordID])
	if out == nil {
		out = []ActivityEntry{}
	}
	return out
}

// LoadComments replaces the cached thread of recordID with comments
// fetched from elsewhere. Comments added through AddComment that the
// fetched thread does not contain yet stay at its end, so a fetch started
// before a comment was posted never drops it. A fetched comment matches a
// local one on text and author; the backend may restamp it.
func (s *Service) LoadComments(recordID string, comments []Comment) {
	thread := slices.Clone(comments)

	var unseen []Comment
	for _, c := range s.local[recordID] {
		seen := slices.ContainsFunc(comments, func(f Comment) bool {
			return f.Text == c.Text && f.Author == c.Author
		})
		if !seen {
			unseen = append(unseen, c)
		}
	}

	if len(unseen) == 0 {
		delete(s.local, recordID)
	} else {
		s.local[recordID] = unseen
		thread = append(thread, unseen...)
	}
	s.comments[recordID] = thread
}

// LoadActivity replaces the cached activity log of recordID.
func (s *Service) LoadActivity(recordID string, entries []ActivityEntry) {
	s.activity[recordID] = slices.Clone(entries)
}

// HasComments reports whether any comment is cached for recordID.
func (s *Service) HasComments(recordID string) bool {
	return len(s.comments[recordID]) > 0
}
