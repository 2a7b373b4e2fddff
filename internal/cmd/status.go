package cmd

import (
	"github.com/spf13/cobra"

	"dateprefix/internal/orchestrator"
	"dateprefix/internal/output"
)

// NewStatusCommand creates the status command, a read-only preview of what a
// rename run would do.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [directory]",
		Short: "Preview pending renames without changing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStatus,
	}

	cmd.Flags().BoolP("recursive", "r", false, "process subdirectories recursively")
	cmd.Flags().Bool("verbose", false, "show the matched date format for each rename")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir := targetDir(args)

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	recursive := resolveRecursive(cmd, cfg)
	verbose, _ := cmd.Flags().GetBool("verbose")

	summary, err := orchestrator.Preview(orchestrator.Options{
		Directory:     dir,
		Recursive:     recursive,
		SymlinkPolicy: cfg.SymlinkPolicy,
	})
	if err != nil {
		return err
	}

	printerCfg := output.DefaultConfig()
	printerCfg.Verbose = verbose
	printerCfg.Writer = cmd.OutOrStdout()
	printerCfg.ErrWriter = cmd.ErrOrStderr()
	output.New(printerCfg).Summary(summary, true)

	return nil
}
