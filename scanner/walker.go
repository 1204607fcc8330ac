package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/codescope/codescope/scanner/models"
)

// TreeWalker traverses a root directory and builds the structural tree of its
// non-excluded entries. Entries are visited in lexicographic order so two
// walks over an unmodified directory produce identical trees.
type TreeWalker struct {
	filter   *RuleSet
	warnings *models.WarningList
}

// NewTreeWalker creates a walker using the given rule set. Recovered
// conditions are appended to warnings.
func NewTreeWalker(filter *RuleSet, warnings *models.WarningList) *TreeWalker {
	return &TreeWalker{filter: filter, warnings: warnings}
}

// Walk builds the tree rooted at rootDir. An invalid root is the only fatal
// condition; a directory that becomes unreadable mid-walk is skipped with a
// recorded warning and the walk continues with its siblings.
func (w *TreeWalker) Walk(rootDir string) (*models.TreeNode, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory %s: %w", rootDir, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("root directory is not readable: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", absRoot)
	}

	root := &models.TreeNode{
		Name: filepath.Base(absRoot),
		Path: absRoot,
		Kind: models.KindDir,
	}
	w.walkDir(root)
	return root, nil
}

// walkDir fills in the children of dir. It reports false when the directory
// could not be read at all, so a caller can drop the node entirely.
func (w *TreeWalker) walkDir(dir *models.TreeNode) bool {
	// os.ReadDir returns entries sorted by name, which is the traversal
	// order the snapshot contract requires.
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		w.warnings.Add(models.ReadWarning, dir.Path, fmt.Sprintf("directory unreadable: %v", err))
		return false
	}

	for _, entry := range entries {
		path := filepath.Join(dir.Path, entry.Name())

		// Symlinks become leaf entries and are never followed.
		if entry.Type()&os.ModeSymlink != 0 {
			if !w.filter.Included(path, false) {
				continue
			}
			dir.Children = append(dir.Children, &models.TreeNode{
				Name: entry.Name(),
				Path: path,
				Kind: models.KindSymlink,
			})
			continue
		}

		if !w.filter.Included(path, entry.IsDir()) {
			continue
		}

		if entry.IsDir() {
			child := &models.TreeNode{
				Name: entry.Name(),
				Path: path,
				Kind: models.KindDir,
			}
			if w.walkDir(child) {
				dir.Children = append(dir.Children, child)
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			w.warnings.Add(models.ReadWarning, path, fmt.Sprintf("file unreadable: %v", err))
			continue
		}
		dir.Children = append(dir.Children, &models.TreeNode{
			Name: entry.Name(),
			Path: path,
			Kind: models.KindFile,
			Size: info.Size(),
		})
	}
	return true
}
