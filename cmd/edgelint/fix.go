package main

import (
	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.edge|directory>...",
	Short: "Apply auto-fixes to Edge templates",
	Long:  `Run the fixable rules, rewrite files in place, and report whatever could not be fixed automatically. Exits 1 when errors remain.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	fixCmd.Flags().String("config", "", "config file path (default: discover .edgelint.toml upward)")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	fixCmd.Flags().Bool("no-cache", false, "disable the persistent result cache")
	fixCmd.Flags().Bool("no-progress", false, "disable the interactive progress display")
	fixCmd.Flags().Bool("no-source", false, "omit source context from pretty output")
	fixCmd.Flags().Bool("dry-run", false, "compute fixes without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	return runLintOrFix(cmd, args, true, dryRun)
}
