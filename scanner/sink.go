package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DirectorySink writes payloads as files into one flat directory.
type DirectorySink struct {
	dir string
}

// NewDirectorySink creates the destination directory and returns a sink over
// it.
func NewDirectorySink(dir string) (*DirectorySink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &DirectorySink{dir: dir}, nil
}

// Put writes data under name inside the sink directory.
func (s *DirectorySink) Put(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Dir returns the directory the sink writes into.
func (s *DirectorySink) Dir() string {
	return s.dir
}

// MemorySink collects payloads in memory. Used by the deps command and by
// tests, where nothing should touch the disk.
type MemorySink struct {
	entries map[string][]byte
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{entries: make(map[string][]byte)}
}

// Put stores data under name, replacing any previous payload with that name.
func (s *MemorySink) Put(name string, data []byte) error {
	s.entries[name] = append([]byte(nil), data...)
	return nil
}

// Get returns the payload stored under name.
func (s *MemorySink) Get(name string) ([]byte, bool) {
	data, ok := s.entries[name]
	return data, ok
}

// Names returns the stored payload names in sorted order.
func (s *MemorySink) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
