package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dateprefix/internal/audit"
)

// NewUndoCommand creates the undo command, which reverses the most recent
// completed rename run recorded in the directory's audit journal.
func NewUndoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo [directory]",
		Short: "Reverse the most recent rename run",
		Long: `Reverse the most recent completed rename run using the audit journal
kept under <target>/.dateprefix/audit. Renames are reversed newest-first;
entries whose renamed file has since moved, or whose original name is now
occupied, are skipped and reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUndo,
	}
}

func runUndo(cmd *cobra.Command, args []string) error {
	dir := targetDir(args)

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	outcome, err := audit.UndoLastRun(cfg.ResolveAuditDir(dir))
	if err != nil {
		if errors.Is(err, audit.ErrNoRuns) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to undo.")
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Undid run %s: restored %d file(s)\n", outcome.RunID, outcome.Restored)
	for _, reason := range outcome.Skipped {
		fmt.Fprintf(out, "  skipped %s\n", reason)
	}
	return nil
}
