package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"edgelint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "edgelint",
	Short: "Linter for Edge templates",
	Long:  `edgelint finds and fixes problems in Edge template files`,
}

// main wires subcommands and persistent flags, then executes the root
// command. Usage errors exit with status 2; lint findings are handled by
// the lint command itself.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves the --color tri-state against the output terminal.
func colorEnabled(cmd *cobra.Command) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
