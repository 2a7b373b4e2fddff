// Package cmd defines the dateprefix command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates the root cobra command. The root command itself
// performs the rename run; preview, undo, and watch are subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dateprefix [directory]",
		Short: "Rename files by normalizing embedded dates to a YYYYMMDD_ prefix",
		Long: `dateprefix scans a directory for filenames containing a date in any of
several common spellings (2023-12-25, 12-03-2024, 08Dec2022, Mar_8_21,
20231225, 20240315_120530), normalizes the date to a canonical YYYYMMDD
prefix, and strips the original date token from the rest of the name:

  invoice_12-03-2024.pdf  ->  20240312_invoice.pdf

Dashed dates with a 4-digit year are always read day-first: 12-03-2024 is
March 12, not December 3. Two-digit years 00-79 map to 2000-2079 and 80-99
to 1980-1999.

Files without a recognizable date are skipped, and files already carrying
their canonical prefix are left alone, so running twice is safe. Originals
are copied to <target>/.dateprefix/backup before renaming unless backups
are disabled.`,
		Version:      Version,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runRename,
		SilenceUsage: true,
	}

	cmd.Flags().BoolP("recursive", "r", false, "process subdirectories recursively")
	cmd.Flags().Bool("dry-run", false, "show what would be renamed without changing anything")
	cmd.Flags().Bool("verbose", false, "show the matched date format for each rename")
	cmd.Flags().Bool("no-backup", false, "do not copy originals aside before renaming")
	cmd.Flags().String("backup-dir", "", "directory for backup copies (default: <target>/.dateprefix/backup)")
	cmd.PersistentFlags().String("config", "", "path to config file (default: <target>/.dateprefix.yaml)")

	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewUndoCommand())
	cmd.AddCommand(NewWatchCommand())

	return cmd
}

// targetDir resolves the positional directory argument.
func targetDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
