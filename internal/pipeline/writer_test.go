package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dossierlab/dossier/internal/pipeline"
)

func TestWriteJSONFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, pipeline.WriteJSON(path, map[string]string{"url": "https://example.com/?a=1&b=2"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Two-space indent, no HTML escaping of & in URLs.
	assert.Equal(t, "{\n  \"url\": \"https://example.com/?a=1&b=2\"\n}\n", string(data))
}

func TestWriteJSONOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, pipeline.WriteJSON(path, []int{1, 2, 3}))
	require.NoError(t, pipeline.WriteJSON(path, []int{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
