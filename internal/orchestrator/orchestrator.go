// Package orchestrator coordinates a full rename run over a directory.
package orchestrator

import (
	"fmt"
	"time"

	"dateprefix/internal/audit"
	"dateprefix/internal/config"
	"dateprefix/internal/renamer"
	"dateprefix/internal/scanner"
)

// Options configures a run.
type Options struct {
	Directory     string
	Recursive     bool
	DryRun        bool
	BackupDir     string // empty disables backups
	SymlinkPolicy string
	Journal       *audit.Writer // optional; nil disables journaling
}

// Result is the outcome of processing a single file.
type Result struct {
	Outcome *renamer.Outcome
	Path    string
	Err     error
}

// Run scans the target directory and applies the date-prefix rename to every
// file. A missing or unreadable target directory is fatal; everything that
// goes wrong for an individual file is recorded in the summary and the batch
// continues.
func Run(opts Options) (*Summary, error) {
	start := time.Now()

	scanOpts := scanner.DefaultScanOptions()
	scanOpts.IgnoreDirs = []string{config.StateDirName}
	if opts.Recursive {
		scanOpts.MaxDepth = -1
	}
	if opts.SymlinkPolicy != "" {
		scanOpts.SymlinkPolicy = opts.SymlinkPolicy
	}

	files, err := scanner.ScanWithOptions(opts.Directory, scanOpts)
	if err != nil {
		return nil, fmt.Errorf("cannot scan target directory: %w", err)
	}

	if opts.Journal != nil {
		if _, err := opts.Journal.BeginRun(audit.RunTypeRename); err != nil {
			return nil, err
		}
	}

	summary := &Summary{TotalFiles: len(files)}
	for _, file := range files {
		result := processFile(file, opts)
		summary.add(result)
	}
	summary.Duration = time.Since(start)

	if opts.Journal != nil {
		if err := opts.Journal.EndRun(summary.String()); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// Preview computes what Run would do without touching the filesystem or the
// journal.
func Preview(opts Options) (*Summary, error) {
	opts.DryRun = true
	opts.BackupDir = ""
	opts.Journal = nil
	return Run(opts)
}

func processFile(file scanner.FileEntry, opts Options) Result {
	backupDir := opts.BackupDir
	if opts.DryRun {
		backupDir = ""
	}

	outcome, err := renamer.Process(file, renamer.Options{
		BackupDir: backupDir,
		DryRun:    opts.DryRun,
	})
	result := Result{Outcome: outcome, Path: file.FullPath, Err: err}
	journal(opts.Journal, result)
	return result
}

// journal records one per-file event; a nil writer means journaling is off.
func journal(w *audit.Writer, r Result) {
	if w == nil {
		return
	}

	switch {
	case r.Err != nil:
		w.Record(audit.Event{
			Type:       audit.EventError,
			SourcePath: r.Path,
			Error:      r.Err.Error(),
		})
	case r.Outcome.Skipped:
		w.Record(audit.Event{
			Type:       audit.EventSkip,
			SourcePath: r.Path,
			Reason:     string(r.Outcome.Reason),
		})
	default:
		w.Record(audit.Event{
			Type:            audit.EventRename,
			SourcePath:      r.Outcome.OldPath,
			DestinationPath: r.Outcome.NewPath,
		})
	}
}
