package contracts

import "github.com/codescope/codescope/scanner/models"

// IScanner is the orchestrator surface consumed by the command layer.
type IScanner interface {
	Scan(rootDir string) (*models.Snapshot, error)
}

// ILibraryLocator resolves a library name to its installation path on the
// host. Implementations encode a particular ecosystem layout; the analyzer
// itself stays independent of any of them.
type ILibraryLocator interface {
	Resolve(name string) (string, bool)
}

// IOutputSink accepts named byte payloads. A sink may be backed by a
// directory, an archive or an in-memory buffer; writes are serialized by the
// caller.
type IOutputSink interface {
	Put(name string, data []byte) error
}
