package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tms/internal/core/translation"
)

func writeSeed(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSeed(t, dir, "seeds/a.json", "[]")
	b := writeSeed(t, dir, "seeds/nested/b.json", "[]")
	writeSeed(t, dir, "seeds/notes.txt", "")

	files, err := Files([]string{
		filepath.Join(dir, "seeds/**/*.json"),
		filepath.Join(dir, "seeds/a.json"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)

	_, err = Files([]string{filepath.Join(dir, "missing/*.json")})
	assert.ErrorContains(t, err, "no files matched")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSeed(t, dir, "01.json", `[
		{"stringId": "STR001", "sourceValue": "Hello", "sourceLanguage": "en", "targetValues": ["Bonjour"], "status": "Approved"},
		{"stringId": "STR002", "sourceValue": "Goodbye", "targetValues": []}
	]`)
	writeSeed(t, dir, "02.json", `[
		{"stringId": "STR001", "sourceValue": "Hello again"},
		{"stringId": "STR003", "sourceValue": "Thanks", "status": "in progress"}
	]`)

	res, err := Load([]string{filepath.Join(dir, "*.json")})
	require.NoError(t, err)

	assert.Len(t, res.Files, 2)
	assert.Equal(t, []string{"STR001"}, res.Duplicates)
	require.Len(t, res.Records, 3)
	assert.Equal(t, "Hello", res.Records[0].SourceValue)
	assert.Equal(t, translation.StatusPending, res.Records[1].Status)
	assert.Equal(t, translation.StatusInProgress, res.Records[2].Status)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "not json", body: "{", wantErr: "decode"},
		{name: "object instead of array", body: `{"stringId": "x"}`, wantErr: "decode"},
		{name: "missing id", body: `[{"sourceValue": "x"}]`, wantErr: "[0].stringId"},
		{name: "too many values", body: `[{"stringId": "a", "targetValues": ["1","2","3","4"]}]`, wantErr: "[0].targetValues"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSeed(t, dir, tt.name+".json", tt.body)
			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize([]translation.Record{
		{StringID: "  STR001 ", SourceLanguage: " en "},
		{StringID: "STR002", Status: "APPROVED"},
		{StringID: "STR003", Status: "Escalated"},
	})
	require.NoError(t, err)

	assert.Equal(t, []translation.Record{
		{StringID: "STR001", SourceLanguage: "en", TargetValues: []string{}, Status: translation.StatusPending},
		{StringID: "STR002", TargetValues: []string{}, Status: translation.StatusApproved},
		{StringID: "STR003", TargetValues: []string{}, Status: translation.Status("Escalated")},
	}, got)
}

func TestNormalize_CollectsAllErrors(t *testing.T) {
	_, err := Normalize([]translation.Record{
		{StringID: ""},
		{StringID: "ok"},
		{StringID: "big", TargetValues: []string{"a", "b", "c", "d"}},
	})

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"[0].stringId", "[2].targetValues"}, fields)
}

func TestDedupe(t *testing.T) {
	records, dups := Dedupe([]translation.Record{
		{StringID: "a"}, {StringID: "b"}, {StringID: "a"}, {StringID: "a"},
	})
	assert.Len(t, records, 2)
	assert.Equal(t, []string{"a", "a"}, dups)
}
