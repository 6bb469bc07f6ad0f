package commands

import (
	"os"
	"sort"
	"strings"
)

const (
	treeRootMarker = "/ "

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPrefix    = "│   "
	treeLastPrefix      = "    "
)

// RenderTree returns the directory tree below the root as text: a root marker line
// followed by one line per non-excluded entry. Each line shows the entry's path
// relative to the root. Directories sort before files, then names compare
// case-insensitively.
func (scanner *Scanner) RenderTree() string {
	lines := []string{treeRootMarker}
	lines = append(lines, scanner.treeLines(".", "")...)
	return strings.Join(lines, "\n")
}

type treeEntry struct {
	relativePath string
	name         string
	isDirectory  bool
	descend      bool
}

func (scanner *Scanner) treeLines(relativeDirectory string, prefix string) []string {
	listing := scanner.listDirectory(relativeDirectory)
	entries := make([]treeEntry, 0, len(listing.directories)+len(listing.files))
	appendEntries := func(directoryEntries []os.DirEntry, isDirectory bool) {
		for _, directoryEntry := range directoryEntries {
			relativePath := joinRelative(relativeDirectory, directoryEntry.Name())
			if scanner.isExcluded(relativePath) {
				continue
			}
			entries = append(entries, treeEntry{
				relativePath: relativePath,
				name:         directoryEntry.Name(),
				isDirectory:  isDirectory,
				descend:      directoryEntry.IsDir(),
			})
		}
	}
	appendEntries(listing.directories, true)
	appendEntries(listing.files, false)
	sortTreeEntries(entries)

	var lines []string
	for entryIndex, entry := range entries {
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPrefix
		if entryIndex == len(entries)-1 {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPrefix
		}
		lines = append(lines, prefix+connector+entry.relativePath)
		if entry.isDirectory && entry.descend {
			lines = append(lines, scanner.treeLines(entry.relativePath, childPrefix)...)
		}
	}
	return lines
}

func sortTreeEntries(entries []treeEntry) {
	sort.SliceStable(entries, func(left, right int) bool {
		if entries[left].isDirectory != entries[right].isDirectory {
			return entries[left].isDirectory
		}
		leftName := strings.ToLower(entries[left].name)
		rightName := strings.ToLower(entries[right].name)
		if leftName != rightName {
			return leftName < rightName
		}
		return entries[left].name < entries[right].name
	})
}
