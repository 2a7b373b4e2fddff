// Package config loads optional YAML settings for dateprefix.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dateprefix/internal/scanner"
)

// FileName is the per-directory configuration file looked up by default.
const FileName = ".dateprefix.yaml"

// StateDirName holds backups and the audit journal inside the target
// directory. The scanner never descends into it.
const StateDirName = ".dateprefix"

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidYAML     ConfigErrorType = "INVALID_YAML"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidYAML:
		return fmt.Sprintf("invalid YAML in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// Config holds all settings. Zero values mean "use the default"; booleans
// that default to true are pointers so an explicit false survives loading.
type Config struct {
	// Backup controls whether originals are copied aside before renaming.
	Backup *bool `yaml:"backup"`
	// BackupDir overrides the default backup location.
	BackupDir string `yaml:"backupDir"`
	// Recursive makes runs descend into subdirectories by default.
	Recursive bool `yaml:"recursive"`
	// AuditDir overrides the default audit journal location.
	AuditDir string `yaml:"auditDir"`
	// SymlinkPolicy is "follow", "skip", or "error".
	SymlinkPolicy string `yaml:"symlinkPolicy"`
	// IgnorePatterns are glob patterns for basenames that watch mode ignores.
	IgnorePatterns []string `yaml:"ignorePatterns"`
	// DebounceSeconds is the watch-mode settle delay.
	DebounceSeconds int `yaml:"debounceSeconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	backup := true
	return &Config{
		Backup:          &backup,
		SymlinkPolicy:   scanner.SymlinkPolicySkip,
		IgnorePatterns:  []string{"*.tmp", "*.part", "*.download"},
		DebounceSeconds: 2,
	}
}

// BackupEnabled reports whether backups should be made.
func (c *Config) BackupEnabled() bool {
	return c.Backup == nil || *c.Backup
}

// ResolveBackupDir returns the backup directory for a target directory.
func (c *Config) ResolveBackupDir(targetDir string) string {
	if c.BackupDir != "" {
		return c.BackupDir
	}
	return filepath.Join(targetDir, StateDirName, "backup")
}

// ResolveAuditDir returns the audit journal directory for a target directory.
func (c *Config) ResolveAuditDir(targetDir string) string {
	if c.AuditDir != "" {
		return c.AuditDir
	}
	return filepath.Join(targetDir, StateDirName, "audit")
}

// Validate checks field values and fills unset ones with defaults.
func (c *Config) Validate() error {
	if c.SymlinkPolicy == "" {
		c.SymlinkPolicy = scanner.SymlinkPolicySkip
	}
	switch c.SymlinkPolicy {
	case scanner.SymlinkPolicyFollow, scanner.SymlinkPolicySkip, scanner.SymlinkPolicyError:
	default:
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("symlinkPolicy must be follow, skip, or error, got %q", c.SymlinkPolicy),
		}
	}

	if c.DebounceSeconds < 0 {
		return &ConfigError{
			Type:    ValidationError,
			Message: "debounceSeconds cannot be negative",
		}
	}
	if c.DebounceSeconds == 0 {
		c.DebounceSeconds = 2
	}
	if c.IgnorePatterns == nil {
		c.IgnorePatterns = Default().IgnorePatterns
	}
	return nil
}

// Load reads and validates a configuration file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Type: FileNotFound, Path: path}
		}
		return nil, &ConfigError{Type: FileNotFound, Path: path, Message: err.Error()}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Type: InvalidYAML, Message: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadForDir loads the directory's config file if present, otherwise the
// defaults. A malformed file is still an error.
func LoadForDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) && ce.Type == FileNotFound {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}
