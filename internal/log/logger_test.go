package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(dir)
	require.NoError(t, err)
	logger.Quiet()

	logger.Printf("saved %s\n", "shakshuka")
	logger.Errorf("write failed: %v", "disk full")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "saved shakshuka")
	assert.Contains(t, string(data), "ERROR write failed: disk full")
}

func TestLogger_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	logger, err := New(dir)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)
}

func TestGlobalFallback(t *testing.T) {
	require.NoError(t, Close())
	// Without Init the package functions must not panic.
	Printf("no logger %d\n", 1)
	Println("still fine")
	Errorf("and errors %s", "too")
}
