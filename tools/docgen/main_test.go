package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenCLI(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, genCLI(dir))

	for _, name := range []string{"spa.md", "spa_alerts_add.md", "spa_prices_history.md"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestGenOpenAPI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "openapi.yaml")

	require.NoError(t, genOpenAPI(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/api/v1/users/{user_id}/alerts")
	assert.Contains(t, string(data), "/api/v1/prices/latest")
}
