package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssvariant"
	"go.uber.org/zap"
)

var consolidateCmd = &cobra.Command{
	Use:     "consolidate [patterns...]",
	Aliases: []string{"merge"},
	Short:   "Merge CSS injection calls in bundled JavaScript",
	Long: `Find the marked CSS injection calls in each bundled file and replace them
with a single call that delivers all CSS in original order.
Each file is treated as an independent compiled unit.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runConsolidate,
}

func init() {
	f := consolidateCmd.Flags()
	f.StringSlice("include", nil, "Glob patterns for bundle files to consolidate")
	f.String("base-dir", "", "Directory the include patterns are relative to")
	f.String("ignore-file", "", "Ignore file in gitignore syntax (default: <base-dir>/"+cssvariant.DefaultIgnoreFile+")")
	f.String("out-dir", "", "Write results here instead of rewriting files in place")
	f.String("delivery", "", "Merged call shape: concat|map (default concat)")
	f.String("anchor", "", "Merged call position: first|last (default first)")
	f.Bool("source-map", false, "Write a source map next to each rewritten file")
	f.Int("workers", 0, "Files processed in parallel (0=number of CPUs)")
	f.Bool("fail-fast", false, "Stop at the first file that fails")
	f.Bool("dry-run", false, "Report what would change without writing")
	f.String("output-format", "", "Output format: text|json")
}

func runConsolidate(_ *cobra.Command, args []string) error {
	config, err := buildBatchConfig(args)
	if err != nil {
		return err
	}
	format, err := cssvariant.ParseOutputFormat(
		getStringWithFallback("output-format", "consolidate.output-format", "text"))
	if err != nil {
		return err
	}

	log := commandLogger()
	defer func() { _ = log.Sync() }()
	config.Logger = log

	result, runErr := cssvariant.ConsolidateFiles(config)
	if result == nil {
		return fmt.Errorf("consolidation failed: %w", runErr)
	}

	opts := cssvariant.OutputOptions{
		UseColors: useColors(),
		Verbose:   getBoolWithFallback("verbose", "verbose", false),
		Quiet:     getBoolWithFallback("quiet", "quiet", false),
	}
	if err := cssvariant.WriteOutput(os.Stdout, result, format, opts); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if runErr != nil {
		log.Debug("consolidation failed", zap.Error(runErr))
		if len(result.Issues) == 0 {
			return fmt.Errorf("consolidation failed: %w", runErr)
		}
		return errIssuesFound
	}
	return nil
}
