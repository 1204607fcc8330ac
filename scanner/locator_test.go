package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLibraryLocator_ResolvesDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "locator_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	libDir := filepath.Join(tempDir, "requests")
	require.NoError(t, os.MkdirAll(libDir, 0755))

	locator := NewHostLibraryLocator([]string{tempDir})

	path, ok := locator.Resolve("requests")
	assert.True(t, ok)
	assert.Equal(t, libDir, path)
}

func TestHostLibraryLocator_ResolvesSingleFileModule(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "locator_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "six.py"), []byte("# six\n"), 0644))

	locator := NewHostLibraryLocator([]string{tempDir})

	path, ok := locator.Resolve("six")
	assert.True(t, ok)
	assert.Equal(t, tempDir, path)
}

func TestHostLibraryLocator_SearchesRootsInOrder(t *testing.T) {
	first, err := os.MkdirTemp("", "locator_test")
	require.NoError(t, err)
	defer os.RemoveAll(first)
	second, err := os.MkdirTemp("", "locator_test")
	require.NoError(t, err)
	defer os.RemoveAll(second)

	require.NoError(t, os.MkdirAll(filepath.Join(first, "requests"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(second, "requests"), 0755))

	locator := NewHostLibraryLocator([]string{first, second})

	path, ok := locator.Resolve("requests")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(first, "requests"), path)
}

func TestHostLibraryLocator_MissReturnsFalse(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "locator_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	locator := NewHostLibraryLocator([]string{tempDir})

	_, ok := locator.Resolve("nonexistent")
	assert.False(t, ok)
}
