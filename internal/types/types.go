// Package types defines every cross‑package data structure used by the promptdump CLI.
package types

import "go.uber.org/zap"

const (
	FileStateContent = "content"
	FileStateEmpty   = "empty"
	FileStateError   = "error"

	OutputStdout = "-"

	DefaultDirectory     = "."
	DefaultExclusionFile = ".gitignore"
	DefaultTokenModel    = "gpt-4o"
)

// DefaultExtensions lists the source extensions selected when none are given.
var DefaultExtensions = []string{".md", ".py", ".cpp", ".hpp", ".js", ".ts", ".java", ".go", ".rs", ".c", ".h"}

// DefaultFiles lists the file names selected by name when none are given.
var DefaultFiles = []string{"pyproject.toml"}

// ScanOptions describes a single prompt assembly run.
type ScanOptions struct {
	Directory     string
	Extensions    []string
	Files         []string
	ExclusionFile string
	ExtraPatterns []string
	Logger        *zap.Logger
}

// FileEntry is one selected file after it has been read.
type FileEntry struct {
	RelativePath string
	AbsolutePath string
	SizeBytes    int64
	Content      string
	State        string
	ReadError    error
}
