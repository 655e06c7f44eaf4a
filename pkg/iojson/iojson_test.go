package iojson

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, []item{{ID: "a", Size: 1}, {ID: "b", Size: 2}}))
	assert.Equal(t, "{\"id\":\"a\",\"size\":1}\n{\"id\":\"b\",\"size\":2}\n", buf.String())
}

func TestWriteLine_MarshalFailure(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLine(&buf, math.Inf(1))
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestMarshalError(t *testing.T) {
	assert.JSONEq(t, `{"message":"boom","data":{"id":"STR001"}}`, MarshalError("boom", map[string]any{"id": "STR001"}))

	got := MarshalError("boom", map[string]any{"bad": math.NaN()})
	assert.Contains(t, got, `"json_error"`)
}

func TestFileReader(t *testing.T) {
	t.Run("stdin", func(t *testing.T) {
		fr := NewFileReader[[]item]().WithStdin(strings.NewReader(`[{"id":"x","size":3}]`))
		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, []item{{ID: "x", Size: 3}}, got)
	})

	t.Run("file wins over stdin", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id":"f"}]`), 0o644))

		fr := NewFileReader[[]item]().WithStdin(strings.NewReader(`[{"id":"s"}]`))
		fr.fileFlagValue = path
		require.True(t, fr.HasFile())

		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, "f", got[0].ID)
	})

	t.Run("terminal stdin", func(t *testing.T) {
		fr := &FileReader[[]item]{stdin: strings.NewReader(""), isTerminal: func() bool { return true }}
		_, err := fr.Read()
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("invalid json", func(t *testing.T) {
		fr := NewFileReader[[]item]().WithStdin(strings.NewReader(`{`))
		_, err := fr.Read()
		assert.ErrorContains(t, err, "decode JSON")
	})
}
