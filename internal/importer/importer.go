// Package importer loads seed records from JSON files into the review
// workspace. A seed file holds a JSON array in the hydrate shape.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/tms/internal/core/logging"
	"github.com/colonyops/tms/internal/core/translation"
)

// Result is the outcome of loading one or more seed files.
type Result struct {
	Records []translation.Record
	Files   []string
	// Duplicates lists ids that appeared more than once; the first
	// occurrence wins.
	Duplicates []string
}

// Files expands doublestar patterns into a sorted, de-duplicated file list.
// A pattern that matches nothing is an error.
func Files(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("expand %q: no files matched", pattern)
		}
		files = append(files, matches...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// Load reads every file matched by patterns, in path order.
func Load(patterns []string) (Result, error) {
	files, err := Files(patterns)
	if err != nil {
		return Result{}, err
	}

	logger := logging.Component("importer")

	var all []translation.Record
	for _, file := range files {
		records, err := LoadFile(file)
		if err != nil {
			return Result{}, err
		}
		logger.Debug().Str("file", file).Int("records", len(records)).Msg("loaded seed file")
		all = append(all, records...)
	}

	records, dups := Dedupe(all)
	for _, id := range dups {
		logger.Warn().Str("string_id", id).Msg("duplicate string id skipped")
	}

	return Result{Records: records, Files: files, Duplicates: dups}, nil
}

// LoadFile decodes and normalizes one seed file.
func LoadFile(path string) ([]translation.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []translation.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	records, err = Normalize(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Normalize validates records and canonicalizes them: ids and source
// languages are trimmed, a missing status becomes Pending and known status
// spellings are mapped onto their constant. Unknown statuses are kept.
func Normalize(records []translation.Record) ([]translation.Record, error) {
	var errs criterio.FieldErrorsBuilder
	out := make([]translation.Record, 0, len(records))

	for i, r := range records {
		r.StringID = strings.TrimSpace(r.StringID)
		r.SourceLanguage = strings.TrimSpace(r.SourceLanguage)

		if r.StringID == "" {
			errs = errs.Append(fmt.Sprintf("[%d].stringId", i), fmt.Errorf("is required"))
			continue
		}
		if len(r.TargetValues) > translation.MaxTargetValues {
			errs = errs.Append(fmt.Sprintf("[%d].targetValues", i),
				fmt.Errorf("has %d values, at most %d allowed", len(r.TargetValues), translation.MaxTargetValues))
			continue
		}

		switch status, ok := translation.ParseStatus(string(r.Status)); {
		case r.Status == "":
			r.Status = translation.StatusPending
		case ok:
			r.Status = status
		}
		if r.TargetValues == nil {
			r.TargetValues = []string{}
		}
		out = append(out, r)
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return out, nil
}

// Dedupe drops repeated ids from records, keeping the first occurrence, and
// returns the ids that were dropped.
func Dedupe(records []translation.Record) ([]translation.Record, []string) {
	seen := make(map[string]bool, len(records))
	out := make([]translation.Record, 0, len(records))
	var dups []string
	for _, r := range records {
		if seen[r.StringID] {
			dups = append(dups, r.StringID)
			continue
		}
		seen[r.StringID] = true
		out = append(out, r)
	}
	return out, dups
}
