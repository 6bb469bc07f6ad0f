package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/promptdump/internal/config"
	"github.com/temirov/promptdump/internal/types"
)

const (
	projectHeaderFormat       = "# Project: %s\n"
	directoryStructureHeading = "## Directory Structure\n"
	fileContentsHeading       = "## File contents\n"
	treeFenceClose            = codeFence + "\n"

	allExtensionsLabel = "all"

	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	errorDirectoryFormat    = "%w: %s"
)

// ErrDirectoryNotFound is returned when the scan root is not an existing directory.
var ErrDirectoryNotFound = errors.New("directory not found")

// AssemblePrompt builds the prompt document for options: a project header, the
// directory tree, and the rendered content of every selected file.
func AssemblePrompt(options types.ScanOptions) (string, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rootDirectory, resolveError := resolveScanRoot(options.Directory)
	if resolveError != nil {
		return "", resolveError
	}

	exclusionFile := config.ResolveExclusionFile(options.ExclusionFile)
	loadedPatterns, loadError := config.LoadExclusionPatterns(exclusionFile)
	if loadError != nil {
		return "", loadError
	}
	ignorePatterns := config.MergePatterns(loadedPatterns, options.ExtraPatterns)

	logger.Debug("Scanning directory: " + rootDirectory)
	if exclusionFile != "" {
		logger.Debug("Using exclusion patterns from: " + exclusionFile)
	}
	extensionsLabel := allExtensionsLabel
	if len(options.Extensions) > 0 {
		extensionsLabel = strings.Join(options.Extensions, ", ")
	}
	logger.Debug("Including files with extensions: " + extensionsLabel)
	if len(options.Files) > 0 {
		logger.Debug("Including specific files: " + strings.Join(options.Files, ", "))
	}

	scanner := NewScanner(rootDirectory, ignorePatterns, logger)
	blocks := []string{
		fmt.Sprintf(projectHeaderFormat, filepath.Base(rootDirectory)),
		directoryStructureHeading,
		codeFence,
		scanner.RenderTree(),
		treeFenceClose,
		fileContentsHeading,
	}
	for _, relativePath := range scanner.CollectFiles(options.Files, options.Extensions) {
		blocks = append(blocks, RenderFileBlock(scanner.ReadFile(relativePath)))
	}
	return strings.Join(blocks, "\n"), nil
}

// resolveScanRoot returns the absolute, cleaned scan root or ErrDirectoryNotFound.
func resolveScanRoot(directory string) (string, error) {
	if directory == "" {
		directory = types.DefaultDirectory
	}
	absoluteDirectory, absoluteError := filepath.Abs(directory)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, directory, absoluteError)
	}
	cleanDirectory := filepath.Clean(absoluteDirectory)
	information, statError := os.Stat(cleanDirectory)
	if statError != nil || !information.IsDir() {
		return "", fmt.Errorf(errorDirectoryFormat, ErrDirectoryNotFound, cleanDirectory)
	}
	return cleanDirectory, nil
}
