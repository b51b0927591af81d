package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitializeConfigurationCreatesLoadableLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDirectory := t.TempDir()
	path, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, ".repoloader.yaml")
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}

	loaded, loadErr := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadErr != nil {
		t.Fatalf("template should load: %v", loadErr)
	}
	if loaded.Output != "output.txt" || loaded.Tokens.Model != "gpt-4o" {
		t.Fatalf("unexpected template values %+v", loaded)
	}
	if loaded.UseGitignore == nil || !*loaded.UseGitignore {
		t.Fatalf("expected use_gitignore true")
	}
	if loaded.Clipboard == nil || *loaded.Clipboard {
		t.Fatalf("expected clipboard false")
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, Force: true})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(homeDir, ".repoloader", "config.yaml")
	if path != expectedPath {
		t.Fatalf("expected %s, got %s", expectedPath, path)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("expected file to exist at %s: %v", path, statErr)
	}
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(t *testing.T) {
	workingDirectory := t.TempDir()
	path := filepath.Join(workingDirectory, ".repoloader.yaml")
	if err := os.WriteFile(path, []byte("existing"), 0o600); err != nil {
		t.Fatalf("write seed config: %v", err)
	}
	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal}); err == nil {
		t.Fatalf("expected error when configuration already exists")
	}
	if _, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal, Force: true}); err != nil {
		t.Fatalf("expected forced overwrite to succeed: %v", err)
	}
}

func TestParseInitTarget(t *testing.T) {
	for _, value := range []string{"local", "global"} {
		if target, err := ParseInitTarget(value); err != nil || string(target) != value {
			t.Fatalf("ParseInitTarget(%q) = %q, %v", value, target, err)
		}
	}
	if _, err := ParseInitTarget("project"); err == nil {
		t.Fatalf("expected error for unsupported target")
	}
}
