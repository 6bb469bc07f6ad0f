package commands

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/promptdump/internal/types"
	"github.com/temirov/promptdump/internal/utils"
)

const (
	emptyFileMarkerFormat = "### FILE %s IS EMPTY\n"
	startFileMarkerFormat = "### START OF FILE %s: %s bytes\n\n"
	endFileMarkerFormat   = "\n### END OF FILE %s"
	errorFileMarkerFormat = "### ERROR READING FILE %s: %s"
	codeFence             = "```"
)

// errInvalidEncoding is reported for files whose bytes are not valid UTF-8.
var errInvalidEncoding = errors.New("content is not valid UTF-8")

// CollectFiles returns the relative paths of the selected files in selection order.
// Files named in fileNames are selected first: a direct child of the root (or an
// absolute path to an existing file) wins, otherwise every file in the tree with
// that base name is taken. Files whose names end with one of extensions follow;
// an empty extension matches every file. A path is never selected twice.
func (scanner *Scanner) CollectFiles(fileNames []string, extensions []string) []string {
	var selected []string
	processed := make(map[string]struct{})
	selectPath := func(relativePath string) {
		if _, seen := processed[relativePath]; seen {
			return
		}
		if scanner.isExcluded(relativePath) {
			return
		}
		processed[relativePath] = struct{}{}
		selected = append(selected, relativePath)
	}

	for _, fileName := range fileNames {
		if fileName == "" {
			continue
		}
		candidatePath := fileName
		if !filepath.IsAbs(candidatePath) {
			candidatePath = scanner.absolutePath(utils.NormalizePath(fileName))
		}
		directChild := utils.RelativePathOrSelf(candidatePath, scanner.RootDirectory)
		if isRegularFile(scanner.absolutePath(directChild)) {
			selectPath(directChild)
			continue
		}
		for _, relativePath := range scanner.findFilesByName(fileName) {
			selectPath(relativePath)
		}
	}

	if len(extensions) == 0 {
		return selected
	}
	scanner.walkDirectories(func(relativeDirectory string, directoryFileNames []string) {
		for _, directoryFileName := range directoryFileNames {
			if !hasAnySuffix(directoryFileName, extensions) {
				continue
			}
			selectPath(joinRelative(relativeDirectory, directoryFileName))
		}
	})
	return selected
}

// findFilesByName returns every file in the tree whose base name equals fileName, in walk order.
func (scanner *Scanner) findFilesByName(fileName string) []string {
	var matches []string
	scanner.walkDirectories(func(relativeDirectory string, directoryFileNames []string) {
		for _, directoryFileName := range directoryFileNames {
			if directoryFileName == fileName {
				matches = append(matches, joinRelative(relativeDirectory, directoryFileName))
			}
		}
	})
	return matches
}

// ReadFile loads one selected file. Read and decoding failures are recorded on the
// returned entry rather than returned.
func (scanner *Scanner) ReadFile(relativePath string) types.FileEntry {
	scanner.Logger.Debug("Processing: " + quotePath(relativePath))
	entry := types.FileEntry{
		RelativePath: relativePath,
		AbsolutePath: scanner.absolutePath(relativePath),
	}
	// #nosec G304
	fileBytes, readError := os.ReadFile(entry.AbsolutePath)
	if readError == nil && !utf8.Valid(fileBytes) {
		readError = errInvalidEncoding
	}
	if readError != nil {
		entry.State = types.FileStateError
		entry.ReadError = readError
		scanner.Logger.Debug("Failed to read file", zap.String("path", relativePath), zap.Error(readError))
		return entry
	}
	entry.SizeBytes = int64(len(fileBytes))
	entry.Content = strings.TrimSpace(normalizeLineEndings(string(fileBytes)))
	if entry.Content == "" {
		entry.State = types.FileStateEmpty
	} else {
		entry.State = types.FileStateContent
	}
	return entry
}

// RenderFileBlock formats a file entry as a marker block of the prompt document.
func RenderFileBlock(entry types.FileEntry) string {
	quotedPath := quotePath(entry.RelativePath)
	switch entry.State {
	case types.FileStateError:
		message := ""
		if entry.ReadError != nil {
			message = entry.ReadError.Error()
		}
		return fmt.Sprintf(errorFileMarkerFormat, quotedPath, message)
	case types.FileStateEmpty:
		return fmt.Sprintf(emptyFileMarkerFormat, quotedPath)
	}
	return strings.Join([]string{
		fmt.Sprintf(startFileMarkerFormat, quotedPath, utils.FormatCount(entry.SizeBytes)),
		codeFence + LanguageTag(entry.RelativePath),
		entry.Content,
		codeFence,
		fmt.Sprintf(endFileMarkerFormat, quotedPath),
	}, "\n")
}

// LanguageTag returns the code fence tag for a file: its lowercased extension
// without the dot, or an empty string when the name has no extension. Leading
// dots of hidden files do not count as an extension.
func LanguageTag(relativePath string) string {
	baseName := strings.TrimLeft(path.Base(utils.NormalizePath(relativePath)), ".")
	return strings.TrimPrefix(strings.ToLower(path.Ext(baseName)), ".")
}

// quotePath renders a path between quotes: single quotes unless the path contains a
// single quote and no double quote.
func quotePath(relativePath string) string {
	quote := "'"
	if strings.Contains(relativePath, "'") && !strings.Contains(relativePath, `"`) {
		quote = `"`
	}
	escaped := strings.ReplaceAll(relativePath, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, quote, `\`+quote)
	return quote + escaped + quote
}

func normalizeLineEndings(content string) string {
	return strings.ReplaceAll(strings.ReplaceAll(content, "\r\n", "\n"), "\r", "\n")
}

func hasAnySuffix(fileName string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(fileName, suffix) {
			return true
		}
	}
	return false
}

func isRegularFile(absolutePath string) bool {
	information, statError := os.Stat(absolutePath)
	return statError == nil && information.Mode().IsRegular()
}
