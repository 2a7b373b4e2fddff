package renamer

import (
	"os"
	"path/filepath"
)

// Backup copies src into backupDir under its original basename, creating the
// directory if needed. The copy keeps the source file's permissions. Any
// failure is reported as a BACKUP_FAILED RenameError so the caller can record
// it and move on to the next file.
func Backup(src, backupDir string) error {
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return &RenameError{Type: BackupFailed, Path: backupDir, Err: err}
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return &RenameError{Type: BackupFailed, Path: src, Err: err}
	}

	info, err := os.Stat(src)
	if err != nil {
		return &RenameError{Type: BackupFailed, Path: src, Err: err}
	}

	dst := filepath.Join(backupDir, filepath.Base(src))
	if err := os.WriteFile(dst, data, info.Mode()); err != nil {
		return &RenameError{Type: BackupFailed, Path: dst, Err: err}
	}

	return nil
}
