package scanner

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// importPatterns maps a language identifier to the text patterns that capture
// the imported library name in group 1. Supporting a new source language is a
// matter of adding an entry here; the analyzer's control flow never changes.
var importPatterns = map[string][]*regexp.Regexp{
	"python": {
		regexp.MustCompile(`(?m)^\s*import\s+([A-Za-z_][\w.]*)`),
		regexp.MustCompile(`(?m)^\s*from\s+([A-Za-z_][\w.]*)\s+import\b`),
	},
	"go": {
		regexp.MustCompile(`(?m)^import\s+(?:\w+\s+)?"([^"\s]+)"`),
		regexp.MustCompile(`(?m)^\t(?:\w+\s+)?"([^"\s]+)"`),
	},
	"javascript": {
		regexp.MustCompile(`(?m)\bimport\s+(?:[\w{},*\s]+\s+from\s+)?['"]([^'"]+)['"]`),
		regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`),
	},
	"typescript": {
		regexp.MustCompile(`(?m)\bimport\s+(?:[\w{},*\s]+\s+from\s+)?['"]([^'"]+)['"]`),
		regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`),
	},
	"java": {
		regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+)\s*;`),
	},
	"csharp": {
		regexp.MustCompile(`(?m)^\s*using\s+(?:static\s+)?([\w.]+)\s*;`),
	},
	"rust": {
		regexp.MustCompile(`(?m)^\s*use\s+([A-Za-z_]\w*)`),
		regexp.MustCompile(`(?m)^\s*extern\s+crate\s+(\w+)`),
	},
	"ruby": {
		regexp.MustCompile(`(?m)^\s*require\s+['"]([^'"]+)['"]`),
	},
	"php": {
		regexp.MustCompile(`(?m)^\s*use\s+([\w\\]+)`),
	},
}

// extensionLanguages is the fallback table for files chroma cannot classify.
var extensionLanguages = map[string]string{
	".py":   "python",
	".go":   "go",
	".js":   "javascript",
	".mjs":  "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".java": "java",
	".cs":   "csharp",
	".rs":   "rust",
	".rb":   "ruby",
	".php":  "php",
}

// chromaLanguages maps chroma lexer names to pattern-table identifiers.
var chromaLanguages = map[string]string{
	"python":     "python",
	"go":         "go",
	"javascript": "javascript",
	"jsx":        "javascript",
	"typescript": "typescript",
	"tsx":        "typescript",
	"java":       "java",
	"c#":         "csharp",
	"rust":       "rust",
	"ruby":       "ruby",
	"php":        "php",
}

// DetectLanguage identifies the source language of a file, preferring the
// chroma lexer registry and falling back to the extension table.
func DetectLanguage(filename string) string {
	if lexer := lexers.Match(filename); lexer != nil {
		name := strings.ToLower(lexer.Config().Name)
		if lang, ok := chromaLanguages[name]; ok {
			return lang
		}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return extensionLanguages[ext]
}
