package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope/scanner/models"
)

func fileNode(name string) *models.TreeNode {
	return &models.TreeNode{Name: name, Kind: models.KindFile}
}

func projTree(fileNames ...string) *models.TreeNode {
	root := &models.TreeNode{Name: "proj", Kind: models.KindDir}
	for _, name := range fileNames {
		root.Children = append(root.Children, fileNode(name))
	}
	return root
}

func extracted(name, content string) models.ExtractedFile {
	return models.ExtractedFile{
		Node:         fileNode(name),
		RelativePath: name,
		Content:      []byte(content),
	}
}

func TestDependencyAnalyzer_PythonImports(t *testing.T) {
	analyzer := NewDependencyAnalyzer(projTree("a.py"))

	refs := analyzer.Analyze([]models.ExtractedFile{
		extracted("a.py", "import os\nimport requests\nfrom collections import defaultdict\n"),
	})

	names := refNames(refs)
	assert.Equal(t, []string{"collections", "os", "requests"}, names)
}

func TestDependencyAnalyzer_SelfReferencesExcluded(t *testing.T) {
	analyzer := NewDependencyAnalyzer(projTree("a.py", "b.py"))

	refs := analyzer.Analyze([]models.ExtractedFile{
		extracted("a.py", "import os\nimport requests\n"),
		extracted("b.py", "import proj.a\nfrom a import thing\n"),
	})

	assert.Equal(t, []string{"os", "requests"}, refNames(refs))
}

func TestDependencyAnalyzer_DeduplicatesAcrossFiles(t *testing.T) {
	analyzer := NewDependencyAnalyzer(projTree("a.py", "b.py"))

	refs := analyzer.Analyze([]models.ExtractedFile{
		extracted("a.py", "import requests\n"),
		extracted("b.py", "import requests\n"),
	})

	require.Len(t, refs, 1)
	assert.Equal(t, "requests", refs[0].Name)
	assert.Equal(t, []string{"a.py", "b.py"}, refs[0].Files)
}

func TestDependencyAnalyzer_JavascriptImports(t *testing.T) {
	analyzer := NewDependencyAnalyzer(projTree("app.js"))

	refs := analyzer.Analyze([]models.ExtractedFile{
		extracted("app.js", `import React from "react";
import { render } from "react-dom/client";
import helper from "./helper";
const lodash = require("lodash");
import scoped from "@scope/pkg/deep";
`),
	})

	assert.Equal(t, []string{"@scope/pkg", "lodash", "react", "react-dom"}, refNames(refs))
}

func TestDependencyAnalyzer_GoImports(t *testing.T) {
	analyzer := NewDependencyAnalyzer(projTree("main.go"))

	refs := analyzer.Analyze([]models.ExtractedFile{
		extracted("main.go", "package main\n\nimport (\n\t\"fmt\"\n\t\"github.com/spf13/cobra\"\n)\n\nimport \"os\"\n"),
	})

	assert.Equal(t, []string{"fmt", "github.com/spf13/cobra", "os"}, refNames(refs))
}

func TestDependencyAnalyzer_JavaImports(t *testing.T) {
	analyzer := NewDependencyAnalyzer(projTree("Main.java"))

	refs := analyzer.Analyze([]models.ExtractedFile{
		extracted("Main.java", "import java.util.List;\nimport static org.junit.Assert.assertTrue;\n"),
	})

	assert.Equal(t, []string{"java", "org"}, refNames(refs))
}

func TestDependencyAnalyzer_UnknownLanguageIsIgnored(t *testing.T) {
	analyzer := NewDependencyAnalyzer(projTree("notes.rst"))

	refs := analyzer.Analyze([]models.ExtractedFile{
		extracted("notes.rst", "import nothing here\n"),
	})

	assert.Empty(t, refs)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "python", DetectLanguage("a.py"))
	assert.Equal(t, "go", DetectLanguage("main.go"))
	assert.Equal(t, "typescript", DetectLanguage("app.ts"))
	assert.Equal(t, "", DetectLanguage("data.unknownext"))
}

func refNames(refs []models.LibraryReference) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}
