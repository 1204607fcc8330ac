package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/zeebo/xxh3"

	"github.com/codescope/codescope/scanner/contracts"
	"github.com/codescope/codescope/scanner/models"
)

// CodebaseExtractor copies every file reachable from a tree into one flat
// destination. Output names embed a hash of the relative path, so two
// distinct source files can never collide on the same output name.
type CodebaseExtractor struct {
	warnings *models.WarningList
	now      func() time.Time
}

// NewCodebaseExtractor creates an extractor. Recovered read failures are
// appended to warnings.
func NewCodebaseExtractor(warnings *models.WarningList) *CodebaseExtractor {
	return &CodebaseExtractor{warnings: warnings, now: time.Now}
}

// Extract reads every file node under root and writes it to the sink under
// its flat name. Text files get a capture-timestamp header line; binary files
// are copied byte-for-byte, with the timestamp carried on the ExtractedFile.
// An unreadable file is skipped with a recorded warning.
func (e *CodebaseExtractor) Extract(root *models.TreeNode, sink contracts.IOutputSink) []models.ExtractedFile {
	var files []models.ExtractedFile

	var walk func(node *models.TreeNode)
	walk = func(node *models.TreeNode) {
		for _, child := range node.Children {
			walk(child)
		}
		if node.Kind != models.KindFile {
			return
		}

		rel, err := filepath.Rel(root.Path, node.Path)
		if err != nil {
			rel = node.Name
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(node.Path)
		if err != nil {
			e.warnings.Add(models.ReadWarning, node.Path, fmt.Sprintf("file unreadable: %v", err))
			return
		}

		capturedAt := e.now()
		flatName := FlatName(rel)

		payload := content
		if isTextContent(content) {
			header := fmt.Sprintf("# captured %s\n", capturedAt.UTC().Format(time.RFC3339))
			payload = append([]byte(header), content...)
		}

		if err := sink.Put(flatName, payload); err != nil {
			e.warnings.Add(models.ReadWarning, node.Path, fmt.Sprintf("write failed: %v", err))
			return
		}

		files = append(files, models.ExtractedFile{
			Node:         node,
			RelativePath: rel,
			FlatName:     flatName,
			Content:      content,
			CapturedAt:   capturedAt,
		})
	}
	walk(root)

	// The walk already visits files in path order; the explicit sort keeps
	// the output contract independent of traversal details.
	sort.Slice(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})
	return files
}

// FlatName maps a slash-separated relative path to its collision-free flat
// output name: an 8-hex-digit xxh3 prefix of the path, then the path with
// separators replaced by dashes. The hash prefix disambiguates paths that
// flatten to the same dashed form (a/b-c versus a-b/c).
func FlatName(relPath string) string {
	sum := xxh3.HashString(relPath)
	return fmt.Sprintf("%08x-%s", uint32(sum), strings.ReplaceAll(relPath, "/", "-"))
}

// isTextContent reports whether data looks like text. The mimetype tree roots
// every textual format at text/plain.
func isTextContent(data []byte) bool {
	for mtype := mimetype.Detect(data); mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("text/plain") {
			return true
		}
	}
	return false
}
