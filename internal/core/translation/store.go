package translation

import (
	"fmt"
	"slices"
)

// Store is the single source of truth for the records shown in the grid.
// It is owned by one screen and is not safe for concurrent use; every
// mutation is applied synchronously and either fully or not at all.
type Store struct {
	records   []Record // newest first
	listeners []func(Event)
}

// NewStore creates a store seeded with records in the given order.
// It returns an error under the same conditions as Hydrate.
func NewStore(records ...Record) (*Store, error) {
	s := &Store{}
	if err := s.Hydrate(records); err != nil {
		return nil, err
	}
	return s, nil
}

// Subscribe registers fn to be called after every successful mutation.
func (s *Store) Subscribe(fn func(Event)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) emit(kind EventKind, id string) {
	ev := Event{Kind: kind, RecordID: id}
	for _, fn := range s.listeners {
		fn(ev)
	}
}

// Hydrate replaces the collection with records, preserving their order.
// Records with a duplicate id or more than MaxTargetValues target values are
// rejected and the store keeps its previous contents.
func (s *Store) Hydrate(records []Record) error {
	seen := make(map[string]struct{}, len(records))
	next := make([]Record, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.StringID]; ok {
			return fmt.Errorf("hydrate %q: %w", r.StringID, ErrDuplicateID)
		}
		if len(r.TargetValues) > MaxTargetValues {
			return fmt.Errorf("hydrate %q: %w", r.StringID, ErrCapacityExceeded)
		}
		seen[r.StringID] = struct{}{}
		next = append(next, r.clone())
	}

	s.records = next
	s.emit(EventHydrated, "")
	return nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns the records in store order. The returned slice is a copy;
// record values are never mutated in place, so it is safe to keep.
func (s *Store) Records() []Record {
	return slices.Clone(s.records)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Record{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return s.records[i], nil
}

// Contains reports whether a record with id exists.
func (s *Store) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r Record) bool { return r.StringID == id })
}

// Add inserts r at the head of the collection.
func (s *Store) Add(r Record) error {
	if s.Contains(r.StringID) {
		return fmt.Errorf("add %q: %w", r.StringID, ErrDuplicateID)
	}
	if len(r.TargetValues) > MaxTargetValues {
		return fmt.Errorf("add %q: %w", r.StringID, ErrCapacityExceeded)
	}

	s.records = slices.Insert(s.records, 0, r.clone())
	s.emit(EventRecordAdded, r.StringID)
	return nil
}

// Remove deletes the record with the given id. Subscribers receive
// EventRecordRemoved so they can drop anything keyed by that id.
func (s *Store) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}

	s.records = slices.Delete(s.records, i, i+1)
	s.emit(EventRecordRemoved, id)
	return nil
}

// update replaces the record at id with the value returned by fn. fn
// receives a private copy and may return an error to abort.
func (s *Store) update(op, id string, fn func(r Record) (Record, error)) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%s %q: %w", op, id, ErrNotFound)
	}

	next, err := fn(s.records[i].clone())
	if err != nil {
		return fmt.Errorf("%s %q: %w", op, id, err)
	}

	records := slices.Clone(s.records)
	records[i] = next
	s.records = records
	s.emit(EventRecordUpdated, id)
	return nil
}

// UpdateSourceLanguage sets the source language of a record.
func (s *Store) UpdateSourceLanguage(id, lang string) error {
	return s.update("update source language", id, func(r Record) (Record, error) {
		r.SourceLanguage = lang
		return r, nil
	})
}

// UpdateStatus sets the approval status of a record.
func (s *Store) UpdateStatus(id string, status Status) error {
	return s.update("update status", id, func(r Record) (Record, error) {
		r.Status = status
		return r, nil
	})
}

// AddTargetValue appends an empty candidate translation and returns its
// index. A record that already holds MaxTargetValues values is left
// unchanged and ErrCapacityExceeded is returned.
func (s *Store) AddTargetValue(id string) (int, error) {
	idx := -1
	err := s.update("add target value", id, func(r Record) (Record, error) {
		if len(r.TargetValues) >= MaxTargetValues {
			return r, ErrCapacityExceeded
		}
		r.TargetValues = append(r.TargetValues, "")
		idx = len(r.TargetValues) - 1
		return r, nil
	})
	if err != nil {
		return -1, err
	}
	return idx, nil
}

// SetTargetValue replaces the candidate translation at index.
func (s *Store) SetTargetValue(id string, index int, value string) error {
	return s.update("set target value", id, func(r Record) (Record, error) {
		if index < 0 || index >= len(r.TargetValues) {
			return r, ErrIndexOutOfRange
		}
		r.TargetValues[index] = value
		return r, nil
	})
}

// RemoveTargetValue deletes the candidate translation at index, shifting
// later values down.
func (s *Store) RemoveTargetValue(id string, index int) error {
	return s.update("remove target value", id, func(r Record) (Record, error) {
		if index < 0 || index >= len(r.TargetValues) {
			return r, ErrIndexOutOfRange
		}
		r.TargetValues = slices.Delete(r.TargetValues, index, index+1)
		return r, nil
	})
}
