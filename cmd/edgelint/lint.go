package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"edgelint/internal/config"
	"edgelint/internal/diagfmt"
	"edgelint/internal/driver"
	"edgelint/internal/linter"
	"edgelint/internal/rules"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <file.edge|directory>...",
	Short: "Lint Edge templates",
	Long:  `Run every configured rule over the given templates and report diagnostics. Exits 1 when errors are found.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	lintCmd.Flags().String("config", "", "config file path (default: discover .edgelint.toml upward)")
	lintCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	lintCmd.Flags().Bool("no-cache", false, "disable the persistent result cache")
	lintCmd.Flags().Bool("no-progress", false, "disable the interactive progress display")
	lintCmd.Flags().Bool("no-source", false, "omit source context from pretty output")
	lintCmd.Flags().Bool("fix", false, "apply auto-fixes and rewrite files in place")
	lintCmd.Flags().Bool("fix-dry-run", false, "compute auto-fixes without writing files")
}

func runLint(cmd *cobra.Command, args []string) error {
	applyFixes, err := cmd.Flags().GetBool("fix")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("fix-dry-run")
	if err != nil {
		return err
	}
	return runLintOrFix(cmd, args, applyFixes || dryRun, dryRun)
}

// runLintOrFix is the shared body of the lint and fix commands.
func runLintOrFix(cmd *cobra.Command, args []string, applyFixes, dryRun bool) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "short", "json":
		// supported
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, short or json)", format)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	noProgress, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		return err
	}
	noSource, err := cmd.Flags().GetBool("no-source")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(configPath, args[0])
	if err != nil {
		return err
	}
	l := linter.New(rules.Builtin(), cfg)

	var files []string
	for _, arg := range args {
		found, err := driver.ListTemplates(arg, cfg.IgnorePatterns)
		if err != nil {
			return fmt.Errorf("lint: %w", err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "no templates found")
		}
		return nil
	}

	opts := driver.Options{
		Fix:    applyFixes,
		DryRun: dryRun,
		Jobs:   jobs,
	}
	if !noCache && !applyFixes {
		// a missing cache is not fatal, the run just re-lints everything
		if cache, err := driver.OpenDiskCache("edgelint"); err == nil {
			opts.Cache = cache
		}
	}

	var results []driver.FileResult
	useUI := format == "pretty" && !noProgress && !quiet && isTerminal(os.Stdout)
	if useUI {
		results, err = runWithUI(cmd, l, files, opts)
	} else {
		results, err = driver.Run(cmd.Context(), l, files, opts)
	}
	if err != nil {
		return err
	}

	ioErrors := 0
	lintResults := make([]*linter.Result, 0, len(results))
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			ioErrors++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			continue
		}
		lintResults = append(lintResults, &r.Result)
	}

	out := cmd.OutOrStdout()
	errorCount := 0
	switch format {
	case "json":
		jsonOpts := diagfmt.JSONOpts{Indent: true, IncludeOutput: dryRun}
		if err := diagfmt.JSON(out, lintResults, jsonOpts); err != nil {
			return err
		}
	case "short":
		for _, res := range lintResults {
			if err := diagfmt.Short(out, res); err != nil {
				return err
			}
		}
	default:
		prettyOpts := diagfmt.PrettyOpts{
			Color:      colorEnabled(cmd),
			ShowSource: !noSource,
			Max:        maxDiagnostics,
		}
		for _, res := range lintResults {
			if err := diagfmt.Pretty(out, res, prettyOpts); err != nil {
				return err
			}
		}
		if !quiet {
			if err := diagfmt.Summary(out, lintResults, prettyOpts); err != nil {
				return err
			}
		}
	}
	for _, res := range lintResults {
		errorCount += res.ErrorCount
	}

	if errorCount > 0 || ioErrors > 0 {
		os.Exit(1)
	}
	return nil
}

// resolveConfig loads the explicit config file, or discovers the nearest
// one above the first target. Without any config the recommended rule set
// applies.
func resolveConfig(path, firstTarget string) (linter.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	dir := firstTarget
	if info, err := os.Stat(firstTarget); err == nil && !info.IsDir() {
		dir = filepath.Dir(firstTarget)
	}
	if found, ok := config.Discover(dir); ok {
		return config.Load(found)
	}
	return rules.RecommendedConfig(), nil
}
