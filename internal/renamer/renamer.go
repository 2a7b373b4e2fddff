// Package renamer applies the date-prefix convention to individual files.
package renamer

import (
	"fmt"
	"os"
	"path/filepath"

	"dateprefix/internal/dateparser"
	"dateprefix/internal/normalizer"
	"dateprefix/internal/scanner"
)

// SkipReason explains why a file was left untouched.
type SkipReason string

const (
	// NoDate means no recognized date pattern was found in the name.
	NoDate SkipReason = "NO_DATE"
	// AlreadyNormalized means the computed target name equals the current
	// name, so the file already carries its canonical prefix.
	AlreadyNormalized SkipReason = "ALREADY_NORMALIZED"
)

// RenameErrorType represents the type of rename error.
type RenameErrorType string

const (
	// SourceNotFound indicates the source file disappeared before the rename.
	SourceNotFound RenameErrorType = "SOURCE_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions for the operation.
	PermissionDenied RenameErrorType = "PERMISSION_DENIED"
	// BackupFailed indicates the pre-rename backup copy could not be written.
	BackupFailed RenameErrorType = "BACKUP_FAILED"
)

// RenameError represents an error that occurred while renaming one file.
// These are recoverable per file and never abort the batch.
type RenameError struct {
	Type RenameErrorType
	Path string
	Err  error
}

func (e *RenameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// Options controls how Process treats a file.
type Options struct {
	BackupDir string // copy originals here before renaming; empty disables
	DryRun    bool   // compute the outcome without touching the filesystem
}

// Outcome records what happened (or would happen) to one file.
type Outcome struct {
	OldPath   string
	NewPath   string
	OldName   string
	NewName   string
	Canonical string
	Format    dateparser.DateFormat
	Skipped   bool
	Reason    SkipReason
	Collision bool // target existed and a numeric suffix was appended
	BackedUp  bool
}

// Process extracts a date from the file's name and renames it to the
// canonical <date>_<residual><ext> form in place. Files without a date and
// files already carrying their canonical name are reported as skips.
func Process(file scanner.FileEntry, opts Options) (*Outcome, error) {
	ex, err := dateparser.Extract(file.Name)
	if err != nil {
		if dateparser.IsNoDate(err) {
			return &Outcome{
				OldPath: file.FullPath,
				OldName: file.Name,
				Skipped: true,
				Reason:  NoDate,
			}, nil
		}
		return nil, err
	}

	newName := normalizer.TargetName(ex.Canonical, ex.Residual, ex.Ext)
	outcome := &Outcome{
		OldPath:   file.FullPath,
		OldName:   file.Name,
		NewName:   newName,
		Canonical: ex.Canonical,
		Format:    ex.Format,
	}

	// Re-running over an organized directory must be a no-op, never a
	// double prefix.
	if newName == file.Name {
		outcome.Skipped = true
		outcome.Reason = AlreadyNormalized
		outcome.NewPath = file.FullPath
		return outcome, nil
	}

	dir := filepath.Dir(file.FullPath)
	if opts.DryRun {
		outcome.NewPath = filepath.Join(dir, newName)
		outcome.Collision = fileExists(outcome.NewPath)
		return outcome, nil
	}

	if _, err := os.Stat(file.FullPath); os.IsNotExist(err) {
		return nil, &RenameError{Type: SourceNotFound, Path: file.FullPath, Err: err}
	}

	if opts.BackupDir != "" {
		if err := Backup(file.FullPath, opts.BackupDir); err != nil {
			return nil, err
		}
		outcome.BackedUp = true
	}

	if unique := UniqueName(dir, newName); unique != newName {
		newName = unique
		outcome.NewName = newName
		outcome.Collision = true
	}

	newPath := filepath.Join(dir, newName)
	if err := os.Rename(file.FullPath, newPath); err != nil {
		if os.IsPermission(err) {
			return nil, &RenameError{Type: PermissionDenied, Path: file.FullPath, Err: err}
		}
		// Cross-device renames fall back to copy+delete.
		if err := copyAndDelete(file.FullPath, newPath); err != nil {
			return nil, err
		}
	}

	outcome.NewPath = newPath
	return outcome, nil
}

// copyAndDelete copies a file to a new location and deletes the original.
// Used as a fallback when os.Rename fails.
func copyAndDelete(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return &RenameError{Type: SourceNotFound, Path: src, Err: err}
		}
		if os.IsPermission(err) {
			return &RenameError{Type: PermissionDenied, Path: src, Err: err}
		}
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode()); err != nil {
		if os.IsPermission(err) {
			return &RenameError{Type: PermissionDenied, Path: dst, Err: err}
		}
		return err
	}

	if err := os.Remove(src); err != nil {
		// Keep exactly one copy: undo the destination write.
		os.Remove(dst)
		if os.IsPermission(err) {
			return &RenameError{Type: PermissionDenied, Path: src, Err: err}
		}
		return err
	}

	return nil
}
