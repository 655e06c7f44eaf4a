package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tms/internal/core/config"
	"github.com/colonyops/tms/internal/core/translation"
	"github.com/colonyops/tms/internal/data/db"
	"github.com/colonyops/tms/internal/data/stores"
	"github.com/colonyops/tms/internal/tms"
)

type harness struct {
	flags *Flags
	app   *tms.App
	db    *db.DB
	out   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.Review.Author = "Ada"
	cfg.Review.LengthLimit = 10

	database, err := db.Open(dir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return &harness{
		flags: &Flags{Config: &cfg},
		app:   tms.NewApp(&cfg, database, true),
		db:    database,
		out:   &bytes.Buffer{},
	}
}

func (h *harness) seed(t *testing.T, records ...translation.Record) {
	t.Helper()
	require.NoError(t, stores.NewRecordStore(h.db).SaveRecords(context.Background(), "fr", records))
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	root := &cli.Command{Name: "tms", Writer: h.out}
	root = NewLsCmd(h.flags, h.app).Register(root)
	root = NewImportCmd(h.flags, h.app).Register(root)
	root = NewCommentCmd(h.flags, h.app).Register(root)
	root = NewCatalogCmd(h.flags, h.app).Register(root)
	root = NewCacheCmd(h.flags, h.app).Register(root)
	return root.Run(context.Background(), append([]string{"tms"}, args...))
}

func decodeLines[T any](t *testing.T, out string) []T {
	t.Helper()
	var items []T
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var item T
		require.NoError(t, json.Unmarshal([]byte(line), &item))
		items = append(items, item)
	}
	return items
}

func seedRecords() []translation.Record {
	return []translation.Record{
		{StringID: "STR001", SourceValue: "Hello", SourceLanguage: "en", TargetValues: []string{"Bonjour"}, Status: translation.StatusApproved},
		{StringID: "STR002", SourceValue: "Goodbye", SourceLanguage: "en", TargetValues: []string{"Au revoir tout le monde"}, Status: translation.StatusPending},
		{StringID: "STR003", SourceValue: "Thanks", SourceLanguage: "de", TargetValues: []string{}, Status: translation.StatusPending},
	}
}

func TestLsCmd_JSON(t *testing.T) {
	h := newHarness(t)
	h.seed(t, seedRecords()...)

	require.NoError(t, h.run(t, "ls", "--json", "--status", "pending", "--source-lang", "en"))

	items := decodeLines[recordInfo](t, h.out.String())
	require.Len(t, items, 1)
	assert.Equal(t, "STR002", items[0].StringID)
	assert.Equal(t, []bool{false}, items[0].LengthOK)
}

func TestLsCmd_Table(t *testing.T) {
	h := newHarness(t)
	h.seed(t, seedRecords()...)

	require.NoError(t, h.run(t, "ls", "--search", "o"))
	out := h.out.String()
	assert.Contains(t, out, "STR001")
	assert.Contains(t, out, "Bonjour (7/10)")
	assert.Contains(t, out, "Page 1 of 1 · 2 of 3 strings")
}

func TestLsCmd_UnknownStatus(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "ls", "--status", "maybe")
	assert.ErrorContains(t, err, `unknown status "maybe"`)
}

func TestImportCmd_Globs(t *testing.T) {
	h := newHarness(t)
	h.seed(t, seedRecords()[0])

	dir := t.TempDir()
	seed := `[
		{"stringId": "STR001", "sourceValue": "Hello there", "targetValues": ["Salut"], "status": "approved"},
		{"stringId": "STR009", "sourceValue": "New", "targetValues": []}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.json"), []byte(seed), 0o644))

	require.NoError(t, h.run(t, "import", filepath.Join(dir, "*.json")))
	assert.Contains(t, h.out.String(), "1 added, 1 updated")

	got, err := stores.NewRecordStore(h.db).LoadRecords(context.Background(), "fr")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Hello there", got[0].SourceValue)
	assert.Equal(t, translation.StatusPending, got[1].Status)
}

func TestImportCmd_Stdin(t *testing.T) {
	h := newHarness(t)
	cmd := NewImportCmd(h.flags, h.app)
	cmd.input.WithStdin(strings.NewReader(`[{"stringId":" STR001 ","sourceValue":"Hi","targetValues":["Salut"]},{"stringId":"STR001","sourceValue":"dup"}]`))

	records, err := cmd.read(nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "STR001", records[0].StringID)
	assert.Equal(t, "Hi", records[0].SourceValue)
}

func TestImportCmd_PushOffline(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`[{"stringId":"A","sourceValue":"a"}]`), 0o644))

	err := h.run(t, "import", "--push", filepath.Join(dir, "a.json"))
	assert.ErrorContains(t, err, "requires a configured backend")
}

func TestCommentCmd_AddAndList(t *testing.T) {
	h := newHarness(t)
	h.seed(t, seedRecords()...)

	require.NoError(t, h.run(t, "comment", "add", "STR001", "check", "the", "accent"))
	assert.Contains(t, h.out.String(), "Commented on STR001 as Ada")

	h.out.Reset()
	require.NoError(t, h.run(t, "comment", "ls", "--json", "STR001"))
	items := decodeLines[struct {
		Text   string `json:"text"`
		Author string `json:"author"`
	}](t, h.out.String())
	require.Len(t, items, 1)
	assert.Equal(t, "check the accent", items[0].Text)
	assert.Equal(t, "Ada", items[0].Author)
}

func TestCommentCmd_Empty(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "comment", "add", "STR001", "   ")
	assert.Error(t, err)
}

func TestCatalogCmd_OfflineLanguages(t *testing.T) {
	h := newHarness(t)
	h.seed(t, seedRecords()...)

	require.NoError(t, h.run(t, "languages"))
	assert.Contains(t, h.out.String(), "French (français)")

	err := h.run(t, "projects")
	assert.ErrorIs(t, err, tms.ErrOffline)
}

func TestCacheCmd_Clear(t *testing.T) {
	h := newHarness(t)
	h.seed(t, seedRecords()...)
	require.NoError(t, h.run(t, "comment", "add", "STR001", "keep?"))

	h.out.Reset()
	require.NoError(t, h.run(t, "cache", "clear"))
	assert.Contains(t, h.out.String(), "Cleared the local cache (1 languages)")

	got, err := stores.NewRecordStore(h.db).LoadRecords(context.Background(), "fr")
	require.NoError(t, err)
	assert.Empty(t, got)

	thread, err := stores.NewCommentStore(h.db).List(context.Background(), "fr", "STR001")
	require.NoError(t, err)
	assert.Empty(t, thread)
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct    int
		filled int
		label  string
	}{
		{0, 0, "  0%"},
		{55, 5, " 55%"},
		{100, 10, "100%"},
		{140, 10, "100%"},
		{-5, 0, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := progressBar(tt.pct)
			assert.Equal(t, tt.filled, strings.Count(got, "█"))
			assert.Equal(t, progressWidth-tt.filled, strings.Count(got, "░"))
			assert.Contains(t, got, tt.label)
		})
	}
}

func TestIssues(t *testing.T) {
	assert.Nil(t, issues(nil))

	got := issues(criterio.NewFieldErrors("review.length_limit", errors.New("must be greater than zero")))
	require.Len(t, got, 1)
	assert.Equal(t, validationIssue{Field: "review.length_limit", Message: "must be greater than zero"}, got[0])

	got = issues(errors.New("boom"))
	assert.Equal(t, []validationIssue{{Message: "boom"}}, got)
}

func TestLanguageFlag(t *testing.T) {
	cfg := config.DefaultConfig()
	f := &Flags{Config: &cfg}
	assert.Equal(t, "fr", f.LanguageFlag(""))
	assert.Equal(t, "de", f.LanguageFlag("de"))
}
