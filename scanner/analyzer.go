package scanner

import (
	"sort"
	"strings"

	"github.com/codescope/codescope/scanner/models"
)

// DependencyAnalyzer scans extracted source files for import statements and
// collects the referenced library names. References to the project's own
// modules are not dependencies and are filtered out.
type DependencyAnalyzer struct {
	selfNames map[string]bool
}

// NewDependencyAnalyzer builds an analyzer for the project rooted at root.
// The project's own name, its top-level directory names and its file stems
// form the self-reference set.
func NewDependencyAnalyzer(root *models.TreeNode) *DependencyAnalyzer {
	selfNames := map[string]bool{strings.ToLower(root.Name): true}
	var walk func(node *models.TreeNode)
	walk = func(node *models.TreeNode) {
		for _, child := range node.Children {
			name := child.Name
			if child.Kind == models.KindFile {
				name = strings.TrimSuffix(name, filepathExtOf(name))
			}
			if name != "" {
				selfNames[strings.ToLower(name)] = true
			}
			if child.Kind == models.KindDir {
				walk(child)
			}
		}
	}
	walk(root)
	return &DependencyAnalyzer{selfNames: selfNames}
}

// Analyze extracts the deduplicated, name-sorted set of libraries referenced
// by the given files. Each reference lists the relative paths of the files
// that mention it.
func (a *DependencyAnalyzer) Analyze(files []models.ExtractedFile) []models.LibraryReference {
	referencing := make(map[string]map[string]bool)

	for _, file := range files {
		language := DetectLanguage(file.Node.Name)
		patterns, ok := importPatterns[language]
		if !ok {
			continue
		}

		for _, pattern := range patterns {
			for _, match := range pattern.FindAllStringSubmatch(string(file.Content), -1) {
				name := normalizeLibraryName(language, match[1])
				if name == "" || a.selfNames[strings.ToLower(name)] {
					continue
				}
				if referencing[name] == nil {
					referencing[name] = make(map[string]bool)
				}
				referencing[name][file.RelativePath] = true
			}
		}
	}

	refs := make([]models.LibraryReference, 0, len(referencing))
	for name, fileSet := range referencing {
		paths := make([]string, 0, len(fileSet))
		for path := range fileSet {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		refs = append(refs, models.LibraryReference{Name: name, Files: paths})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs
}

// normalizeLibraryName reduces a raw import target to the library name: the
// first path or package segment. Relative imports resolve within the project
// and are dropped here.
func normalizeLibraryName(language, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, ".") {
		return ""
	}

	switch language {
	case "javascript", "typescript":
		// Scoped packages keep the @scope/name pair.
		if strings.HasPrefix(raw, "@") {
			parts := strings.SplitN(raw, "/", 3)
			if len(parts) >= 2 {
				return parts[0] + "/" + parts[1]
			}
			return raw
		}
		return firstSegment(raw, "/")
	case "go":
		// A Go import path is the library identity as-is.
		return raw
	case "php":
		return firstSegment(raw, `\`)
	default:
		return firstSegment(raw, ".")
	}
}

func firstSegment(s, sep string) string {
	if idx := strings.Index(s, sep); idx > 0 {
		return s[:idx]
	}
	return s
}

func filepathExtOf(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[idx:]
	}
	return ""
}
