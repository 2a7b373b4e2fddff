package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dateprefix/internal/scanner"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.BackupEnabled() {
		t.Error("backups should be enabled by default")
	}
	if cfg.SymlinkPolicy != scanner.SymlinkPolicySkip {
		t.Errorf("SymlinkPolicy = %q, want skip", cfg.SymlinkPolicy)
	}
	if cfg.DebounceSeconds != 2 {
		t.Errorf("DebounceSeconds = %d, want 2", cfg.DebounceSeconds)
	}
}

func TestLoadFull(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
backup: false
backupDir: /var/backups/photos
recursive: true
symlinkPolicy: follow
ignorePatterns:
  - "*.crdownload"
debounceSeconds: 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.BackupEnabled() {
		t.Error("backup: false should disable backups")
	}
	if cfg.BackupDir != "/var/backups/photos" {
		t.Errorf("BackupDir = %q", cfg.BackupDir)
	}
	if !cfg.Recursive {
		t.Error("recursive: true should carry through")
	}
	if cfg.SymlinkPolicy != scanner.SymlinkPolicyFollow {
		t.Errorf("SymlinkPolicy = %q, want follow", cfg.SymlinkPolicy)
	}
	if len(cfg.IgnorePatterns) != 1 || cfg.IgnorePatterns[0] != "*.crdownload" {
		t.Errorf("IgnorePatterns = %v", cfg.IgnorePatterns)
	}
	if cfg.DebounceSeconds != 5 {
		t.Errorf("DebounceSeconds = %d, want 5", cfg.DebounceSeconds)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "backupDir: /tmp/b\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !cfg.BackupEnabled() {
		t.Error("unset backup should default to enabled")
	}
	if cfg.SymlinkPolicy != scanner.SymlinkPolicySkip {
		t.Errorf("SymlinkPolicy = %q, want skip", cfg.SymlinkPolicy)
	}
	if cfg.DebounceSeconds != 2 {
		t.Errorf("DebounceSeconds = %d, want 2", cfg.DebounceSeconds)
	}
	if len(cfg.IgnorePatterns) == 0 {
		t.Error("IgnorePatterns should fall back to defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		wantType ConfigErrorType
	}{
		{"invalid yaml", "backup: [unclosed", InvalidYAML},
		{"bad symlink policy", "symlinkPolicy: sometimes\n", ValidationError},
		{"negative debounce", "debounceSeconds: -1\n", ValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, tt.content)
			_, err := Load(path)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want *ConfigError", err)
			}
			if cfgErr.Type != tt.wantType {
				t.Errorf("error type = %s, want %s", cfgErr.Type, tt.wantType)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != FileNotFound {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadForDir(t *testing.T) {
	// Missing file falls back to defaults.
	cfg, err := LoadForDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadForDir returned error: %v", err)
	}
	if !cfg.BackupEnabled() || cfg.DebounceSeconds != 2 {
		t.Error("missing file should yield defaults")
	}

	// A malformed file is still an error.
	dir := t.TempDir()
	writeConfig(t, dir, "backup: [unclosed")
	if _, err := LoadForDir(dir); err == nil {
		t.Error("malformed config should fail even in LoadForDir")
	}
}

func TestResolveDirs(t *testing.T) {
	cfg := Default()

	want := filepath.Join("/photos", StateDirName, "backup")
	if got := cfg.ResolveBackupDir("/photos"); got != want {
		t.Errorf("ResolveBackupDir = %q, want %q", got, want)
	}
	want = filepath.Join("/photos", StateDirName, "audit")
	if got := cfg.ResolveAuditDir("/photos"); got != want {
		t.Errorf("ResolveAuditDir = %q, want %q", got, want)
	}

	cfg.BackupDir = "/elsewhere/b"
	cfg.AuditDir = "/elsewhere/a"
	if got := cfg.ResolveBackupDir("/photos"); got != "/elsewhere/b" {
		t.Errorf("ResolveBackupDir override = %q", got)
	}
	if got := cfg.ResolveAuditDir("/photos"); got != "/elsewhere/a" {
		t.Errorf("ResolveAuditDir override = %q", got)
	}
}
