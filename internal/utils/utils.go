// Package utils contains general helper functions used across promptdump.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// EditorDirectoryName is the name of the VS Code settings directory.
	EditorDirectoryName = ".vscode"
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".promptdump.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".promptdump"
	// GlobalConfigFileName is the name of the global configuration file.
	GlobalConfigFileName = "config.yaml"
)

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// NormalizePath converts path separators to forward slashes regardless of platform.
func NormalizePath(value string) string {
	return strings.ReplaceAll(filepath.ToSlash(value), "\\", pathSegmentSeparator)
}

// RelativePathOrSelf calculates the relative path from root to fullPath in forward-slash form.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return NormalizePath(relativePath)
}

// IsExcluded reports whether a path relative to the scan root matches any of the
// exclusion patterns. Patterns come in four shapes:
//
//	/dir/   rooted directory: the path equals dir or lies beneath it
//	dir/    directory: same comparison, made against the full relative path
//	/name   rooted path: the path equals name or lies beneath it
//	glob    the glob matches the whole path or any single segment of it
//
// Globs follow MatchGlob, so '*' in a whole-path comparison also crosses '/'.
func IsExcluded(relativePath string, patterns []string) bool {
	normalizedPath := NormalizePath(relativePath)
	for _, patternValue := range patterns {
		if matchesPattern(normalizedPath, NormalizePath(patternValue)) {
			return true
		}
	}
	return false
}

func matchesPattern(normalizedPath string, pattern string) bool {
	if pattern == "" {
		return false
	}
	isRooted := strings.HasPrefix(pattern, pathSegmentSeparator)
	isDirectory := strings.HasSuffix(pattern, pathSegmentSeparator)

	if isRooted || isDirectory {
		stripped := strings.TrimSuffix(strings.TrimPrefix(pattern, pathSegmentSeparator), pathSegmentSeparator)
		if stripped == "" {
			return false
		}
		return normalizedPath == stripped || strings.HasPrefix(normalizedPath, stripped+pathSegmentSeparator)
	}

	if MatchGlob(pattern, normalizedPath) {
		return true
	}
	for _, segment := range strings.Split(normalizedPath, pathSegmentSeparator) {
		if MatchGlob(pattern, segment) {
			return true
		}
	}
	return false
}
