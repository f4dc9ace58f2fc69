package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config_lottery.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDocument(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "object", content: `{"a":1,"nested":{"b":[1,2,3]}}`},
		{name: "array", content: `[{"draw":1},{"draw":2}]`},
		{name: "number scalar", content: `42`},
		{name: "string scalar", content: `"enabled"`},
		{name: "null", content: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.content)

			doc, err := ReadDocument(path)
			require.NoError(t, err)
			assert.JSONEq(t, tt.content, string(doc))
		})
	}
}

func TestReadDocument_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	doc, err := ReadDocument(path)
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, err.Error(), "config file not found")
	assert.Contains(t, err.Error(), path)
}

func TestReadDocument_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"a":`)

	doc, err := ReadDocument(path)
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, err.Error(), "invalid JSON")
	assert.Contains(t, err.Error(), path)
}

func TestReadDocument_EmptyFile(t *testing.T) {
	path := writeTempConfig(t, "")

	doc, err := ReadDocument(path)
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, err.Error(), "invalid JSON")
}
