package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// RuleScope limits an ignore rule to files, directories or both.
type RuleScope int

const (
	ScopeBoth RuleScope = iota
	ScopeFile
	ScopeDir
)

// IgnoreRule is one compiled exclusion pattern. Rules are loaded once at
// startup and never mutated afterwards.
type IgnoreRule struct {
	Pattern string
	Scope   RuleScope

	ext  string    // lowercase extension, set for extension rules
	name string    // exact base name, set for literal rules
	glob glob.Glob // compiled matcher, set for glob rules
}

// RuleSet decides whether a file-system entry takes part in a snapshot.
type RuleSet struct {
	rules []IgnoreRule
}

// defaultIgnorePatterns are always active, so vendor trees, VCS metadata and
// binary media never surface in a snapshot unless the caller overrides them.
var defaultIgnorePatterns = []string{
	".git/",
	".svn/",
	".idea/",
	".vscode/",
	".cache/",
	"node_modules/",
	"__pycache__/",
	"dist/",
	"bin/",
	"obj/",
	"out/",
	".exe",
	".dll",
	".so",
	".dylib",
	".log",
	".bak",
	".tmp",
	".jpg",
	".jpeg",
	".png",
	".gif",
	".mp3",
	".mp4",
	".avi",
	".mov",
	".zip",
	".tar",
	".gz",
	".pyc",
	".class",
	"codescope-config.yml",
	"codescope-config.yaml",
	"codescope-config.json",
	".codescopeignore",
}

// LoadRules builds the rule set from the built-in defaults plus the optional
// ignore file in the project root. An uncompilable pattern is a fatal
// configuration error; nothing is checked per entry later on.
func LoadRules(projectDir string, ignoreFile string) (*RuleSet, error) {
	patterns := append([]string{}, defaultIgnorePatterns...)

	if ignoreFile != "" {
		path := ignoreFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(projectDir, path)
		}
		loaded, err := readIgnoreFile(path)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, loaded...)
	}

	return CompileRules(patterns)
}

// CompileRules parses raw pattern lines into a RuleSet. A leading dot marks
// an extension rule, a trailing slash a directory rule, glob metacharacters a
// glob rule; anything else is an exact base name applying to both kinds.
func CompileRules(patterns []string) (*RuleSet, error) {
	rs := &RuleSet{}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}

		rule := IgnoreRule{Pattern: pattern, Scope: ScopeBoth}
		switch {
		case strings.HasSuffix(pattern, "/"):
			rule.Scope = ScopeDir
			trimmed := strings.TrimSuffix(pattern, "/")
			if strings.ContainsAny(trimmed, "*?[{") {
				g, err := glob.Compile(trimmed)
				if err != nil {
					return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
				}
				rule.glob = g
			} else {
				rule.name = trimmed
			}
		case strings.ContainsAny(pattern, "*?[{"):
			g, err := glob.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
			}
			rule.glob = g
		case strings.HasPrefix(pattern, ".") && !strings.Contains(pattern[1:], "."):
			rule.Scope = ScopeFile
			rule.ext = strings.ToLower(pattern)
		default:
			rule.name = pattern
		}
		rs.rules = append(rs.rules, rule)
	}
	return rs, nil
}

// Included reports whether the entry at path takes part in the snapshot.
// Directory-scoped rules are checked here before any descent, so an excluded
// directory is never traversed at all.
func (rs *RuleSet) Included(path string, isDir bool) bool {
	base := filepath.Base(path)

	for _, rule := range rs.rules {
		if isDir && rule.Scope == ScopeFile {
			continue
		}
		if !isDir && rule.Scope == ScopeDir {
			continue
		}

		switch {
		case rule.ext != "":
			if !isDir && strings.EqualFold(filepath.Ext(base), rule.ext) {
				return false
			}
		case rule.glob != nil:
			if rule.glob.Match(base) || rule.glob.Match(filepath.ToSlash(path)) {
				return false
			}
		default:
			if base == rule.name {
				return false
			}
		}
	}
	return true
}

// readIgnoreFile returns the non-comment pattern lines of an ignore file. A
// missing file is not an error; the defaults still apply.
func readIgnoreFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}
