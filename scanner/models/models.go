package models

import "time"

// NodeKind distinguishes the kinds of file-system entries a walk can produce.
type NodeKind int

const (
	KindFile NodeKind = iota
	KindDir
	// KindSymlink marks a symbolic link. Links are recorded as leaf entries
	// and never followed, so a self-referential link cannot loop the walk.
	KindSymlink
)

// TreeNode represents one file-system entry in the structural tree of a
// project. A directory node owns its non-excluded immediate entries, in
// lexicographic order. The tree is not mutated after the walk completes.
type TreeNode struct {
	Name     string
	Path     string
	Kind     NodeKind
	Size     int64
	Children []*TreeNode
}

// IsDir reports whether the node is a directory.
func (n *TreeNode) IsDir() bool {
	return n.Kind == KindDir
}

// ExtractedFile pairs a file node with its captured content, the flat output
// name it was written under and the capture timestamp.
type ExtractedFile struct {
	Node         *TreeNode
	RelativePath string
	FlatName     string
	Content      []byte
	CapturedAt   time.Time
}

// LibraryReference is a library name discovered in source text, the set of
// project files that reference it and, when the locator could find it, its
// installation path on the host.
type LibraryReference struct {
	Name  string
	Files []string
	Path  string
}

// Resolved reports whether an installation path was found for the library.
func (r LibraryReference) Resolved() bool {
	return r.Path != ""
}

// Snapshot is the full output of one run over one root: the structural tree,
// its rendered codemap, the extracted files, the discovered libraries and one
// nested Snapshot per expanded dependency. It is built within a single
// invocation and never persisted.
type Snapshot struct {
	Name         string
	Root         *TreeNode
	Codemap      string
	Files        []ExtractedFile
	Libraries    []LibraryReference
	FileTypes    []string
	Dependencies []*Snapshot
	Warnings     []Warning
}
