package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/promptdump/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	workingDirectory := t.TempDir()
	path, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	if !strings.Contains(string(content), "extensions:") {
		t.Fatalf("unexpected configuration content: %s", string(content))
	}

	t.Setenv("HOME", t.TempDir())
	loaded, loadErr := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadErr != nil {
		t.Fatalf("generated configuration does not load: %v", loadErr)
	}
	if len(loaded.Extensions) != 11 || len(loaded.Files) != 1 || loaded.ExcludeFile != ".gitignore" {
		t.Fatalf("unexpected configuration values: %+v", loaded)
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if path != filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName) {
		t.Fatalf("unexpected global configuration path %s", path)
	}
}

func TestInitializeConfigurationRefusesOverwrite(t *testing.T) {
	workingDirectory := t.TempDir()
	options := InitOptions{WorkingDirectory: workingDirectory}
	if _, err := InitializeConfiguration(options); err != nil {
		t.Fatalf("first initialization: %v", err)
	}
	if _, err := InitializeConfiguration(options); err == nil {
		t.Fatalf("expected error when configuration exists")
	}
	options.Force = true
	if _, err := InitializeConfiguration(options); err != nil {
		t.Fatalf("forced initialization: %v", err)
	}
}
