package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, generate(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "quotetok configuration", schema["title"])
	assert.Contains(t, string(data), `"request_interval"`)
	assert.Contains(t, string(data), `"watch"`)

	err = generate(filepath.Join(t.TempDir(), "missing", "schema.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write schema")
}
