package cmd

import (
	"github.com/spf13/cobra"

	"dateprefix/internal/audit"
	"dateprefix/internal/config"
	"dateprefix/internal/orchestrator"
	"dateprefix/internal/output"
)

// runRename implements the root command: a full rename run over the target
// directory. Per-file skips and errors are reported in the summary and do
// not affect the exit code; only fatal conditions (bad target directory,
// unreadable config, journal lock held) return an error.
func runRename(cmd *cobra.Command, args []string) error {
	dir := targetDir(args)

	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	recursive := resolveRecursive(cmd, cfg)
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts := orchestrator.Options{
		Directory:     dir,
		Recursive:     recursive,
		DryRun:        dryRun,
		BackupDir:     resolveBackup(cmd, cfg, dir),
		SymlinkPolicy: cfg.SymlinkPolicy,
	}

	if !dryRun {
		journal, err := audit.NewWriter(cfg.ResolveAuditDir(dir))
		if err != nil {
			return err
		}
		defer journal.Close()
		opts.Journal = journal
	}

	summary, err := orchestrator.Run(opts)
	if err != nil {
		return err
	}

	printerCfg := output.DefaultConfig()
	printerCfg.Verbose = verbose
	printerCfg.Writer = cmd.OutOrStdout()
	printerCfg.ErrWriter = cmd.ErrOrStderr()
	output.New(printerCfg).Summary(summary, dryRun)

	return nil
}

// loadConfig reads the explicit --config file, or the target directory's
// config if one exists, falling back to defaults.
func loadConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadForDir(dir)
}

// resolveRecursive prefers an explicit --recursive flag over the config.
func resolveRecursive(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Flags().Changed("recursive") {
		recursive, _ := cmd.Flags().GetBool("recursive")
		return recursive
	}
	return cfg.Recursive
}

// resolveBackup combines the backup flags with the configuration. An empty
// result disables backups.
func resolveBackup(cmd *cobra.Command, cfg *config.Config, dir string) string {
	if noBackup, _ := cmd.Flags().GetBool("no-backup"); noBackup {
		return ""
	}
	if flagDir, _ := cmd.Flags().GetString("backup-dir"); flagDir != "" {
		return flagDir
	}
	if !cfg.BackupEnabled() {
		return ""
	}
	return cfg.ResolveBackupDir(dir)
}
