package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dateprefix/internal/audit"
	"dateprefix/internal/renamer"
	"dateprefix/internal/scanner"
	"dateprefix/internal/watcher"
)

// NewWatchCommand creates the watch command, which monitors a directory and
// renames files as they appear.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a directory and rename new files as they arrive",
		Long: `Monitor the target directory and apply the date-prefix rename to each
new file once its activity settles. In-progress downloads (*.tmp, *.part,
*.download) and hidden files are ignored. Stop with Ctrl-C to print the
session summary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().Bool("no-backup", false, "do not copy originals aside before renaming")
	cmd.Flags().String("backup-dir", "", "directory for backup copies (default: <target>/.dateprefix/backup)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := targetDir(args)

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	// Reject a bad target before starting the watcher.
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("target is not a directory: %s", dir)
	}

	journal, err := audit.NewWriter(cfg.ResolveAuditDir(dir))
	if err != nil {
		return err
	}
	defer journal.Close()
	if _, err := journal.BeginRun(audit.RunTypeRename); err != nil {
		return err
	}

	backupDir := resolveBackup(cmd, cfg, dir)
	out := cmd.OutOrStdout()

	handler := func(path string) (bool, error) {
		file := scanner.FileEntry{Name: filepath.Base(path), FullPath: path}
		outcome, err := renamer.Process(file, renamer.Options{BackupDir: backupDir})
		switch {
		case err != nil:
			journal.Record(audit.Event{Type: audit.EventError, SourcePath: path, Error: err.Error()})
			fmt.Fprintf(cmd.ErrOrStderr(), "error %s: %v\n", path, err)
			return false, err
		case outcome.Skipped:
			journal.Record(audit.Event{Type: audit.EventSkip, SourcePath: path, Reason: string(outcome.Reason)})
			return false, nil
		default:
			journal.Record(audit.Event{
				Type:            audit.EventRename,
				SourcePath:      outcome.OldPath,
				DestinationPath: outcome.NewPath,
			})
			fmt.Fprintf(out, "renamed %s -> %s\n", outcome.OldName, outcome.NewName)
			return true, nil
		}
	}

	w := watcher.New(&watcher.Config{
		Debounce:       time.Duration(cfg.DebounceSeconds) * time.Second,
		IgnorePatterns: cfg.IgnorePatterns,
	}, handler)

	if err := w.Start(dir); err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	summary := w.Stop()
	journal.EndRun(fmt.Sprintf("watch session: %d renamed, %d skipped, %d errors",
		summary.Renamed, summary.Skipped, summary.Errors))

	fmt.Fprintf(out, "\nWatched for %s: %d renamed, %d skipped, %d errors\n",
		summary.Duration.Round(time.Second), summary.Renamed, summary.Skipped, summary.Errors)
	return nil
}
