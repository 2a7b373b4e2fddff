// Package scanner enumerates the files a rename run will consider.
package scanner

import (
	"errors"
	"os"
	"path/filepath"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the target does not exist or is not a directory.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
	// SymlinkError indicates a symlink was encountered under the "error" policy.
	SymlinkError ScanErrorType = "SYMLINK_ERROR"
)

// Symlink policy constants.
const (
	SymlinkPolicyFollow = "follow"
	SymlinkPolicySkip   = "skip"
	SymlinkPolicyError  = "error"
)

// ScanError represents an error that occurred during directory scanning.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ScanOptions configures scanning behavior.
type ScanOptions struct {
	MaxDepth      int      // 0 = immediate children only, -1 = unlimited
	SymlinkPolicy string   // "follow", "skip", or "error"
	IgnoreDirs    []string // directory basenames that are never descended into
}

// DefaultScanOptions returns the default scan options. The tool's own state
// directory is always skipped so backups and audit logs are never renamed.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		MaxDepth:      0,
		SymlinkPolicy: SymlinkPolicySkip,
		IgnoreDirs:    []string{".dateprefix"},
	}
}

// FileEntry represents a file found during scanning.
type FileEntry struct {
	Name     string // filename only
	FullPath string // absolute path
}

// Scan enumerates the immediate files of directory with default options.
func Scan(directory string) ([]FileEntry, error) {
	return ScanWithOptions(directory, DefaultScanOptions())
}

// ScanWithOptions scans directory with configurable depth and symlink policy.
// A missing or non-directory target yields a DIRECTORY_NOT_FOUND ScanError.
func ScanWithOptions(directory string, opts ScanOptions) ([]FileEntry, error) {
	info, err := os.Lstat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ScanError{Type: DirectoryNotFound, Path: directory, Err: err}
		}
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: directory, Err: err}
		}
		return nil, err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		switch opts.SymlinkPolicy {
		case SymlinkPolicyError:
			return nil, &ScanError{
				Type: SymlinkError,
				Path: directory,
				Err:  errors.New("symlink encountered with error policy"),
			}
		case SymlinkPolicySkip:
			return []FileEntry{}, nil
		case SymlinkPolicyFollow:
			info, err = os.Stat(directory)
			if err != nil {
				return nil, err
			}
		}
	}

	if !info.IsDir() {
		return nil, &ScanError{
			Type: DirectoryNotFound,
			Path: directory,
			Err:  errors.New("path is not a directory"),
		}
	}

	return scanDirectory(directory, opts, 0)
}

func scanDirectory(directory string, opts ScanOptions, depth int) ([]FileEntry, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: directory, Err: err}
		}
		return nil, err
	}

	var files []FileEntry
	for _, entry := range entries {
		fullPath := filepath.Join(directory, entry.Name())
		absPath, err := filepath.Abs(fullPath)
		if err != nil {
			absPath = fullPath
		}

		info, err := os.Lstat(fullPath)
		if err != nil {
			continue // entry vanished or is unreadable, skip it
		}

		if info.Mode()&os.ModeSymlink != 0 {
			switch opts.SymlinkPolicy {
			case SymlinkPolicyError:
				return nil, &ScanError{
					Type: SymlinkError,
					Path: fullPath,
					Err:  errors.New("symlink encountered with error policy"),
				}
			case SymlinkPolicySkip:
				continue
			case SymlinkPolicyFollow:
				info, err = os.Stat(fullPath)
				if err != nil {
					continue // broken symlink
				}
			}
		}

		if info.IsDir() {
			if ignoredDir(entry.Name(), opts.IgnoreDirs) {
				continue
			}
			if opts.MaxDepth == -1 || depth < opts.MaxDepth {
				subFiles, err := scanDirectory(fullPath, opts, depth+1)
				if err != nil {
					return nil, err
				}
				files = append(files, subFiles...)
			}
			continue
		}

		files = append(files, FileEntry{Name: entry.Name(), FullPath: absPath})
	}

	return files, nil
}

func ignoredDir(name string, ignore []string) bool {
	for _, dir := range ignore {
		if name == dir {
			return true
		}
	}
	return false
}
