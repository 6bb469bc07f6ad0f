package commands

import (
	"os"
	"testing"
)

func writeFixture(path string, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestQuotePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "src/main.go", expected: "'src/main.go'"},
		{name: "single_quote_switches", input: "it's.md", expected: `"it's.md"`},
		{name: "both_quotes_escape_single", input: `a'b".md`, expected: `'a\'b".md'`},
		{name: "backslash_escaped", input: `dir\file.c`, expected: `'dir\\file.c'`},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := quotePath(testCase.input); actual != testCase.expected {
				t.Fatalf("quotePath(%q) = %s, expected %s", testCase.input, actual, testCase.expected)
			}
		})
	}
}

func TestReadFileNormalizesLineEndings(t *testing.T) {
	scanner := NewScanner(t.TempDir(), nil, nil)
	writeError := writeFixture(scanner.absolutePath("win.txt"), "\r\n line one\r\nline two\r\n\r\n")
	if writeError != nil {
		t.Fatalf("write fixture: %v", writeError)
	}
	entry := scanner.ReadFile("win.txt")
	if entry.Content != "line one\nline two" {
		t.Fatalf("unexpected content %q", entry.Content)
	}
	if entry.SizeBytes != 25 {
		t.Fatalf("expected raw size 25, got %d", entry.SizeBytes)
	}
}

func TestReadFileMissing(t *testing.T) {
	scanner := NewScanner(t.TempDir(), nil, nil)
	entry := scanner.ReadFile("gone.txt")
	if entry.ReadError == nil {
		t.Fatalf("expected a read error")
	}
	block := RenderFileBlock(entry)
	expectedPrefix := "### ERROR READING FILE 'gone.txt': "
	if len(block) <= len(expectedPrefix) || block[:len(expectedPrefix)] != expectedPrefix {
		t.Fatalf("unexpected block %q", block)
	}
}
