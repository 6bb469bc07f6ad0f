// Package commands contains the scanning, selection, and rendering logic behind the prompt document.
package commands

import (
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/promptdump/internal/utils"
)

// Scanner renders and selects files beneath RootDirectory, skipping every path
// matched by IgnorePatterns.
type Scanner struct {
	RootDirectory  string
	IgnorePatterns []string
	Logger         *zap.Logger
}

// NewScanner constructs a Scanner for an absolute root directory.
func NewScanner(rootDirectory string, ignorePatterns []string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		RootDirectory:  rootDirectory,
		IgnorePatterns: ignorePatterns,
		Logger:         logger,
	}
}

func (scanner *Scanner) isExcluded(relativePath string) bool {
	return utils.IsExcluded(relativePath, scanner.IgnorePatterns)
}

func (scanner *Scanner) absolutePath(relativePath string) string {
	if relativePath == "." {
		return scanner.RootDirectory
	}
	return filepath.Join(scanner.RootDirectory, filepath.FromSlash(relativePath))
}

// directoryListing holds the entries of one directory split by kind, each sorted by name.
type directoryListing struct {
	directories []os.DirEntry
	files       []os.DirEntry
}

// listDirectory reads a directory relative to the root. Unreadable directories yield
// an empty listing. Symbolic links are classified by their target; linked
// directories are listed as directories.
func (scanner *Scanner) listDirectory(relativeDirectory string) directoryListing {
	var listing directoryListing
	directoryEntries, readError := os.ReadDir(scanner.absolutePath(relativeDirectory))
	if readError != nil {
		scanner.Logger.Debug("Skipping unreadable directory", zap.String("path", relativeDirectory), zap.Error(readError))
		return listing
	}
	for _, directoryEntry := range directoryEntries {
		if scanner.isDirectoryEntry(relativeDirectory, directoryEntry) {
			listing.directories = append(listing.directories, directoryEntry)
		} else {
			listing.files = append(listing.files, directoryEntry)
		}
	}
	return listing
}

func (scanner *Scanner) isDirectoryEntry(relativeDirectory string, directoryEntry os.DirEntry) bool {
	if directoryEntry.IsDir() {
		return true
	}
	if directoryEntry.Type()&os.ModeSymlink == 0 {
		return false
	}
	targetInformation, statError := os.Stat(scanner.absolutePath(joinRelative(relativeDirectory, directoryEntry.Name())))
	return statError == nil && targetInformation.IsDir()
}

// walkDirectories visits the root and every non-excluded directory beneath it,
// top-down. Each directory's file names are reported before its subdirectories are
// descended. Linked directories are not descended.
func (scanner *Scanner) walkDirectories(visit func(relativeDirectory string, fileNames []string)) {
	scanner.walkDirectory(".", visit)
}

func (scanner *Scanner) walkDirectory(relativeDirectory string, visit func(string, []string)) {
	listing := scanner.listDirectory(relativeDirectory)
	fileNames := make([]string, 0, len(listing.files))
	for _, fileEntry := range listing.files {
		fileNames = append(fileNames, fileEntry.Name())
	}
	visit(relativeDirectory, fileNames)

	for _, directoryEntry := range listing.directories {
		if !directoryEntry.IsDir() {
			continue
		}
		childDirectory := joinRelative(relativeDirectory, directoryEntry.Name())
		if scanner.isExcluded(childDirectory) {
			continue
		}
		scanner.walkDirectory(childDirectory, visit)
	}
}

// joinRelative joins a relative directory and an entry name in forward-slash form.
func joinRelative(relativeDirectory string, name string) string {
	if relativeDirectory == "." || relativeDirectory == "" {
		return name
	}
	return path.Join(relativeDirectory, name)
}
