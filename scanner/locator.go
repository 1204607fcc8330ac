package scanner

import (
	"os"
	"path/filepath"
)

// HostLibraryLocator resolves library names against a configured list of
// install roots. It knows nothing about any particular ecosystem; the roots
// encode the host's layout.
type HostLibraryLocator struct {
	roots []string
}

// NewHostLibraryLocator creates a locator over the given roots. With no roots
// configured, the conventional install locations of the common ecosystems are
// probed.
func NewHostLibraryLocator(roots []string) *HostLibraryLocator {
	if len(roots) == 0 {
		roots = defaultLibraryRoots()
	}
	return &HostLibraryLocator{roots: roots}
}

// Resolve returns the installation directory of the named library, probing
// each root for a directory or single-file module with that name.
func (l *HostLibraryLocator) Resolve(name string) (string, bool) {
	for _, root := range l.roots {
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
		// Single-file modules (e.g. python's six.py) resolve to their root.
		for _, ext := range []string{".py", ".js", ".rb"} {
			if _, err := os.Stat(candidate + ext); err == nil {
				return root, true
			}
		}
	}
	return "", false
}

// libraryFootprint returns the file count and total size in bytes of an
// installed library directory. Unreadable entries simply don't count.
func libraryFootprint(dir string) (int, int64) {
	var count int
	var size int64
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			count++
			size += info.Size()
		}
		return nil
	})
	return count, size
}

func defaultLibraryRoots() []string {
	var roots []string

	if venv := os.Getenv("VIRTUAL_ENV"); venv != "" {
		matches, _ := filepath.Glob(filepath.Join(venv, "lib", "python*", "site-packages"))
		roots = append(roots, matches...)
	}
	matches, _ := filepath.Glob("/usr/lib/python3*/dist-packages")
	roots = append(roots, matches...)
	matches, _ = filepath.Glob("/usr/lib/python3*/site-packages")
	roots = append(roots, matches...)

	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, filepath.Join(cwd, "node_modules"), filepath.Join(cwd, "vendor"))
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		roots = append(roots, filepath.Join(gopath, "pkg", "mod"))
	}
	return roots
}
