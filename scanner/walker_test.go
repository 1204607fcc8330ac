package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope/scanner/models"
)

// buildProject creates a small project layout for walker tests.
func buildProject(t *testing.T) string {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "walker_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "src"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "vendor"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "a.py"), []byte("import os\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "src", "b.py"), []byte("import requests\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "vendor", "x.txt"), []byte("vendored\n"), 0644))
	return tempDir
}

func TestTreeWalker_WalkIsIdempotent(t *testing.T) {
	root := buildProject(t)
	rules, err := CompileRules(nil)
	require.NoError(t, err)

	first, err := NewTreeWalker(rules, models.NewWarningList()).Walk(root)
	require.NoError(t, err)
	second, err := NewTreeWalker(rules, models.NewWarningList()).Walk(root)
	require.NoError(t, err)

	assert.Equal(t, RenderCodemap(first), RenderCodemap(second))
	assert.Equal(t, collectPaths(first), collectPaths(second))
}

func TestTreeWalker_LexicographicOrder(t *testing.T) {
	root := buildProject(t)
	rules, err := CompileRules(nil)
	require.NoError(t, err)

	tree, err := NewTreeWalker(rules, models.NewWarningList()).Walk(root)
	require.NoError(t, err)

	names := make([]string, 0, len(tree.Children))
	for _, child := range tree.Children {
		names = append(names, child.Name)
	}
	assert.Equal(t, []string{"a.py", "src", "vendor"}, names)
}

func TestTreeWalker_ExcludedEntriesAreAbsent(t *testing.T) {
	root := buildProject(t)
	rules, err := CompileRules([]string{".txt", "vendor/"})
	require.NoError(t, err)

	tree, err := NewTreeWalker(rules, models.NewWarningList()).Walk(root)
	require.NoError(t, err)

	for _, path := range collectPaths(tree) {
		assert.NotContains(t, path, "vendor")
		assert.NotContains(t, path, ".txt")
	}
}

func TestTreeWalker_FileSizesRecorded(t *testing.T) {
	root := buildProject(t)
	rules, err := CompileRules(nil)
	require.NoError(t, err)

	tree, err := NewTreeWalker(rules, models.NewWarningList()).Walk(root)
	require.NoError(t, err)

	require.NotEmpty(t, tree.Children)
	aFile := tree.Children[0]
	assert.Equal(t, "a.py", aFile.Name)
	assert.Equal(t, models.KindFile, aFile.Kind)
	assert.Equal(t, int64(len("import os\n")), aFile.Size)
}

func TestTreeWalker_SymlinksAreLeafEntries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires elevation on windows")
	}
	root := buildProject(t)
	// Self-referential link; following it would loop forever.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "loop")))

	rules, err := CompileRules(nil)
	require.NoError(t, err)

	tree, err := NewTreeWalker(rules, models.NewWarningList()).Walk(root)
	require.NoError(t, err)

	var link *models.TreeNode
	for _, child := range tree.Children {
		if child.Name == "loop" {
			link = child
		}
	}
	require.NotNil(t, link)
	assert.Equal(t, models.KindSymlink, link.Kind)
	assert.Empty(t, link.Children)
}

func TestTreeWalker_UnreadableDirectoryIsSkippedWithWarning(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced the same way on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}

	root := buildProject(t)
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.MkdirAll(locked, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "hidden.py"), []byte("import os\n"), 0644))
	require.NoError(t, os.Chmod(locked, 0000))
	defer os.Chmod(locked, 0755)

	warnings := models.NewWarningList()
	rules, err := CompileRules(nil)
	require.NoError(t, err)

	tree, err := NewTreeWalker(rules, warnings).Walk(root)
	require.NoError(t, err)

	// The walk completed for the remaining siblings.
	assert.Contains(t, collectPaths(tree), filepath.Join(root, "a.py"))
	for _, path := range collectPaths(tree) {
		assert.NotContains(t, path, "locked")
	}

	require.Len(t, warnings.All(), 1)
	assert.Equal(t, models.ReadWarning, warnings.All()[0].Kind)
	assert.Equal(t, locked, warnings.All()[0].Path)
}

func TestTreeWalker_InvalidRootIsFatal(t *testing.T) {
	rules, err := CompileRules(nil)
	require.NoError(t, err)

	_, err = NewTreeWalker(rules, models.NewWarningList()).Walk("/does/not/exist")
	assert.Error(t, err)
}

func collectPaths(root *models.TreeNode) []string {
	var paths []string
	var walk func(node *models.TreeNode)
	walk = func(node *models.TreeNode) {
		paths = append(paths, node.Path)
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(root)
	return paths
}
