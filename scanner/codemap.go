package scanner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codescope/codescope/scanner/models"
)

// RenderCodemap serializes the tree into the hierarchical text form of the
// codemap artifact. It is a pure function of the tree: the same tree always
// renders to byte-identical text. Directories carry a trailing slash,
// symlinks a trailing @, files their size in bytes. The full tree is
// rendered; scope is controlled by the rule set during the walk, never here.
func RenderCodemap(root *models.TreeNode) string {
	var sb strings.Builder
	renderNodes(&sb, root.Children, 0)
	return sb.String()
}

func renderNodes(sb *strings.Builder, nodes []*models.TreeNode, depth int) {
	indent := strings.Repeat("│   ", depth) + "├── "
	for _, node := range nodes {
		switch node.Kind {
		case models.KindDir:
			fmt.Fprintf(sb, "%s%s/\n", indent, node.Name)
			renderNodes(sb, node.Children, depth+1)
		case models.KindSymlink:
			fmt.Fprintf(sb, "%s%s@\n", indent, node.Name)
		default:
			fmt.Fprintf(sb, "%s%s (%d B)\n", indent, node.Name, node.Size)
		}
	}
}

// CollectFileTypes returns the sorted set of extensions of the file nodes
// reachable from root. Extensionless files are not counted.
func CollectFileTypes(root *models.TreeNode) []string {
	seen := make(map[string]bool)
	var walk func(node *models.TreeNode)
	walk = func(node *models.TreeNode) {
		if node.Kind == models.KindFile {
			if idx := strings.LastIndex(node.Name, "."); idx > 0 {
				seen[strings.ToLower(node.Name[idx:])] = true
			}
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(root)

	types := make([]string, 0, len(seen))
	for ext := range seen {
		types = append(types, ext)
	}
	sort.Strings(types)
	return types
}
