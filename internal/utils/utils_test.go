package utils_test

import (
	"path/filepath"
	"testing"

	"github.com/temirov/promptdump/internal/utils"
)

// builtInPatterns mirrors the patterns added when an exclusion file is loaded.
var builtInPatterns = []string{utils.GitDirectoryName, utils.EditorDirectoryName}

// TestIsExcluded verifies each of the four pattern shapes.
func TestIsExcluded(testingInstance *testing.T) {
	testCases := []struct {
		testName     string
		relativePath string
		patterns     []string
		expected     bool
	}{
		{testName: "rooted directory matches itself", relativePath: "build", patterns: []string{"/build/"}, expected: true},
		{testName: "rooted directory matches descendants", relativePath: "build/output.txt", patterns: []string{"/build/"}, expected: true},
		{testName: "rooted directory ignores nested directory", relativePath: "src/build/output.txt", patterns: []string{"/build/"}, expected: false},
		{testName: "rooted directory ignores name prefix", relativePath: "buildkit/main.go", patterns: []string{"/build/"}, expected: false},
		{testName: "directory matches top level", relativePath: "build/output.txt", patterns: []string{"build/"}, expected: true},
		{testName: "directory matches itself", relativePath: "build", patterns: []string{"build/"}, expected: true},
		{testName: "directory compares full relative path", relativePath: "src/build/output.txt", patterns: []string{"build/"}, expected: false},
		{testName: "directory with nested prefix", relativePath: "src/build/output.txt", patterns: []string{"src/build/"}, expected: true},
		{testName: "rooted path matches file", relativePath: "secrets.env", patterns: []string{"/secrets.env"}, expected: true},
		{testName: "rooted path matches descendants", relativePath: "vendor/lib/a.go", patterns: []string{"/vendor"}, expected: true},
		{testName: "rooted path ignores name prefix", relativePath: "vendored.go", patterns: []string{"/vendor"}, expected: false},
		{testName: "glob matches whole path", relativePath: "debug.log", patterns: []string{"*.log"}, expected: true},
		{testName: "glob matches nested segment", relativePath: "logs/2024/debug.log", patterns: []string{"*.log"}, expected: true},
		{testName: "bare name matches directory anywhere", relativePath: "web/node_modules/react/index.js", patterns: []string{"node_modules"}, expected: true},
		{testName: "glob does not match", relativePath: "main.go", patterns: []string{"*.log"}, expected: false},
		{testName: "built-in git directory", relativePath: ".git/config", patterns: builtInPatterns, expected: true},
		{testName: "built-in editor directory nested", relativePath: "app/.vscode/settings.json", patterns: builtInPatterns, expected: true},
		{testName: "built-ins keep ordinary files", relativePath: ".gitignore", patterns: builtInPatterns, expected: false},
		{testName: "unterminated bracket is literal", relativePath: "a[b", patterns: []string{"a[b"}, expected: true},
		{testName: "star crosses separators in whole path", relativePath: "src/a/b.py", patterns: []string{"src/*.py"}, expected: true},
		{testName: "trailing star covers nested paths", relativePath: "docs/api/x.md", patterns: []string{"docs/*"}, expected: true},
		{testName: "bang negates a bracket set", relativePath: "b.txt", patterns: []string{"[!a].txt"}, expected: true},
		{testName: "bang negation excludes listed characters", relativePath: "a.txt", patterns: []string{"[!a].txt"}, expected: false},
		{testName: "question mark matches one character", relativePath: "log1.txt", patterns: []string{"log?.txt"}, expected: true},
		{testName: "empty pattern set", relativePath: "main.go", patterns: nil, expected: false},
		{testName: "backslash pattern is normalized", relativePath: "build/output.txt", patterns: []string{`build\`}, expected: true},
	}
	for _, testCase := range testCases {
		testCase := testCase
		testingInstance.Run(testCase.testName, func(t *testing.T) {
			actual := utils.IsExcluded(testCase.relativePath, testCase.patterns)
			if actual != testCase.expected {
				t.Fatalf("IsExcluded(%q, %v) = %t, expected %t", testCase.relativePath, testCase.patterns, actual, testCase.expected)
			}
		})
	}
}

// TestMatchGlob verifies shell-style glob translation.
func TestMatchGlob(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		pattern  string
		name     string
		expected bool
	}{
		{testName: "star matches empty run", pattern: "*.go", name: ".go", expected: true},
		{testName: "star crosses slash", pattern: "a*z", name: "a/b/z", expected: true},
		{testName: "question mark needs one character", pattern: "?.md", name: ".md", expected: false},
		{testName: "character range", pattern: "file[0-9].txt", name: "file7.txt", expected: true},
		{testName: "character range rejects outside", pattern: "file[0-9].txt", name: "fileA.txt", expected: false},
		{testName: "leading caret is literal", pattern: "[^a]", name: "^", expected: true},
		{testName: "leading caret does not negate", pattern: "[^a]", name: "b", expected: false},
		{testName: "closing bracket first is a member", pattern: "[]a]", name: "]", expected: true},
		{testName: "trailing dash is literal", pattern: "[a-]", name: "-", expected: true},
		{testName: "regexp metacharacters are literal", pattern: "a+b.(c)", name: "a+b.(c)", expected: true},
		{testName: "dot is not a wildcard", pattern: "a.b", name: "axb", expected: false},
		{testName: "whole name must match", pattern: "*.log", name: "debug.log.gz", expected: false},
		{testName: "reversed range never matches", pattern: "[z-a]", name: "m", expected: false},
	}
	for _, testCase := range testCases {
		testCase := testCase
		testingInstance.Run(testCase.testName, func(t *testing.T) {
			if actual := utils.MatchGlob(testCase.pattern, testCase.name); actual != testCase.expected {
				t.Fatalf("MatchGlob(%q, %q) = %t, expected %t", testCase.pattern, testCase.name, actual, testCase.expected)
			}
		})
	}
}

// TestDeduplicatePatterns verifies that DeduplicatePatterns removes duplicate patterns.
func TestDeduplicatePatterns(testingInstance *testing.T) {
	actual := utils.DeduplicatePatterns([]string{"a", "b", "a", ".git"})
	expected := []string{"a", "b", ".git"}
	if len(actual) != len(expected) {
		testingInstance.Fatalf("expected %v, got %v", expected, actual)
	}
	for position, value := range actual {
		if value != expected[position] {
			testingInstance.Errorf("expected %s at position %d, got %s", expected[position], position, value)
		}
	}
}

// TestRelativePathOrSelf verifies relative path computation in forward-slash form.
func TestRelativePathOrSelf(testingInstance *testing.T) {
	rootDirectory := testingInstance.TempDir()
	if actual := utils.RelativePathOrSelf(rootDirectory, rootDirectory); actual != "." {
		testingInstance.Fatalf("expected \".\" for the root itself, got %q", actual)
	}
	nestedPath := filepath.Join(rootDirectory, "src", "main.go")
	if actual := utils.RelativePathOrSelf(nestedPath, rootDirectory); actual != "src/main.go" {
		testingInstance.Fatalf("expected src/main.go, got %q", actual)
	}
}

// TestFormatCount verifies thousands grouping.
func TestFormatCount(testingInstance *testing.T) {
	testCases := map[int64]string{
		0:       "0",
		999:     "999",
		1234:    "1,234",
		1234567: "1,234,567",
	}
	for value, expected := range testCases {
		if actual := utils.FormatCount(value); actual != expected {
			testingInstance.Errorf("FormatCount(%d) = %q, expected %q", value, actual, expected)
		}
	}
}

// TestCharacterCount verifies that characters rather than bytes are counted.
func TestCharacterCount(testingInstance *testing.T) {
	if actual := utils.CharacterCount("├── a"); actual != 5 {
		testingInstance.Fatalf("expected 5 characters, got %d", actual)
	}
}
