package scanner

import (
	"fmt"
	"strings"

	"github.com/codescope/codescope/scanner/contracts"
	"github.com/codescope/codescope/scanner/models"
)

// SinkFactory hands the orchestrator one output sink per analyzed root. The
// project itself is requested under its base name; expanded dependencies
// under "lib-<name>".
type SinkFactory func(label string) (contracts.IOutputSink, error)

// SnapshotOrchestrator sequences one run: walk the project, render its
// codemap, extract the codebase, analyze dependencies and, when expansion is
// enabled, repeat the whole sequence per resolved library up to the depth
// limit. It holds no state across runs.
type SnapshotOrchestrator struct {
	Filter      *RuleSet
	Locator     contracts.ILibraryLocator
	Sinks       SinkFactory
	AnalyzeDeps bool
	DepthLimit  int
}

// NewSnapshotOrchestrator wires an orchestrator from its collaborators.
func NewSnapshotOrchestrator(filter *RuleSet, locator contracts.ILibraryLocator, sinks SinkFactory, analyzeDeps bool, depthLimit int) contracts.IScanner {
	return &SnapshotOrchestrator{
		Filter:      filter,
		Locator:     locator,
		Sinks:       sinks,
		AnalyzeDeps: analyzeDeps,
		DepthLimit:  depthLimit,
	}
}

// Scan produces the snapshot of the project rooted at rootDir. The only fatal
// condition is an invalid root; everything recoverable ends up in the
// snapshot's warning list.
func (o *SnapshotOrchestrator) Scan(rootDir string) (*models.Snapshot, error) {
	return o.scan(rootDir, "", o.DepthLimit)
}

func (o *SnapshotOrchestrator) scan(rootDir string, label string, depth int) (*models.Snapshot, error) {
	warnings := models.NewWarningList()

	walker := NewTreeWalker(o.Filter, warnings)
	root, err := walker.Walk(rootDir)
	if err != nil {
		return nil, err
	}

	if label == "" {
		label = root.Name
	}
	sink, err := o.Sinks(label)
	if err != nil {
		return nil, fmt.Errorf("failed to open output sink for %s: %w", label, err)
	}

	extractor := NewCodebaseExtractor(warnings)
	files := extractor.Extract(root, sink)

	analyzer := NewDependencyAnalyzer(root)
	libraries := analyzer.Analyze(files)

	snapshot := &models.Snapshot{
		Name:      root.Name,
		Root:      root,
		Files:     files,
		FileTypes: CollectFileTypes(root),
	}

	if o.AnalyzeDeps {
		for i := range libraries {
			path, ok := o.Locator.Resolve(libraries[i].Name)
			if !ok {
				warnings.Add(models.ResolutionWarning, libraries[i].Name, "library not found on host")
				continue
			}
			libraries[i].Path = path

			// The depth limit bounds expansion through transitive
			// dependencies; resolution itself still happens at every level.
			if depth <= 0 {
				continue
			}
			nested, err := o.scan(path, "lib-"+libraries[i].Name, depth-1)
			if err != nil {
				warnings.Add(models.ResolutionWarning, path, fmt.Sprintf("library not scannable: %v", err))
				continue
			}
			snapshot.Dependencies = append(snapshot.Dependencies, nested)
		}
	}
	snapshot.Libraries = libraries

	snapshot.Codemap = o.assembleCodemap(snapshot)
	if err := sink.Put(root.Name+"-codemap.txt", []byte(snapshot.Codemap)); err != nil {
		return nil, fmt.Errorf("failed to write codemap: %w", err)
	}
	if err := sink.Put("dependencies.txt", []byte(RenderDependencyReport(snapshot))); err != nil {
		return nil, fmt.Errorf("failed to write dependency report: %w", err)
	}

	snapshot.Warnings = warnings.All()
	return snapshot, nil
}

// assembleCodemap wraps the rendered tree with the artifact header and the
// included-libraries footer.
func (o *SnapshotOrchestrator) assembleCodemap(snapshot *models.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/\n", snapshot.Name)
	if len(snapshot.FileTypes) > 0 {
		fmt.Fprintf(&sb, "File types: %s\n", strings.Join(snapshot.FileTypes, " "))
	}
	sb.WriteString("\n")
	sb.WriteString(RenderCodemap(snapshot.Root))

	sb.WriteString("\nIncluded Libraries:\n")
	for _, lib := range snapshot.Libraries {
		fmt.Fprintf(&sb, "%s\n", lib.Name)
	}
	return sb.String()
}

// RenderDependencyReport serializes the library set: one line per library
// with its referencing files and resolved install path, or "unresolved".
func RenderDependencyReport(snapshot *models.Snapshot) string {
	var sb strings.Builder
	for _, lib := range snapshot.Libraries {
		fmt.Fprintf(&sb, "%s\n", lib.Name)
		fmt.Fprintf(&sb, "  referenced by: %s\n", strings.Join(lib.Files, ", "))
		if lib.Resolved() {
			count, size := libraryFootprint(lib.Path)
			fmt.Fprintf(&sb, "  path: %s (%d files, %d KB)\n", lib.Path, count, size/1024)
		} else {
			sb.WriteString("  path: unresolved\n")
		}
	}
	return sb.String()
}
