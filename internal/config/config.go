// Package config loads exclusion files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/promptdump/internal/utils"
)

const (
	commentPrefix = "#"

	warningCloseFormat = "Warning: failed to close %s: %v\n"
	errorReadFormat    = "reading exclusion file %s: %w"
)

// builtInPatterns are added to every pattern set loaded from an exclusion file.
var builtInPatterns = []string{utils.GitDirectoryName, utils.EditorDirectoryName}

// LoadExclusionPatterns reads an exclusion file and returns its patterns followed by
// the built-in version-control and editor directory patterns. Blank lines and lines
// starting with # are skipped. A missing file yields an empty set without built-ins.
//
// #nosec G304
func LoadExclusionPatterns(exclusionFilePath string) ([]string, error) {
	if exclusionFilePath == "" {
		return nil, nil
	}
	fileHandle, openFileError := os.Open(exclusionFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf(errorReadFormat, exclusionFilePath, openFileError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseFormat, exclusionFilePath, closeError)
		}
	}()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorReadFormat, exclusionFilePath, scanError)
	}
	patterns = append(patterns, builtInPatterns...)
	return utils.DeduplicatePatterns(patterns), nil
}

// ResolveExclusionFile returns the exclusion file to load, or an empty string when
// none applies. Relative paths resolve against the working directory only, so a
// scan of another directory does not pick up that directory's ignore file.
func ResolveExclusionFile(exclusionFilePath string) string {
	trimmedPath := strings.TrimSpace(exclusionFilePath)
	if trimmedPath == "" || !isRegularFile(trimmedPath) {
		return ""
	}
	return trimmedPath
}

// MergePatterns appends extra patterns to loaded ones, dropping blanks and duplicates.
func MergePatterns(loadedPatterns []string, extraPatterns []string) []string {
	combinedPatterns := append([]string{}, loadedPatterns...)
	for _, pattern := range extraPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		combinedPatterns = append(combinedPatterns, trimmedPattern)
	}
	return utils.DeduplicatePatterns(combinedPatterns)
}

func isRegularFile(path string) bool {
	information, statError := os.Stat(path)
	return statError == nil && information.Mode().IsRegular()
}
