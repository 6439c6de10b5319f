package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// errIssuesFound makes the process exit non-zero after issues were printed.
var errIssuesFound = errors.New("issues found")

var rootCmd = &cobra.Command{
	Use:   "cssvariant",
	Short: "Variant recipe compiler and CSS injection consolidator",
	Long: `Compile variant recipes into self-contained selector functions and
merge the per-module CSS injection calls of a production bundle into one.`,
	// Default behavior: run consolidate when no subcommand is given.
	// We must call loadConfig here because PreRunE of consolidateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runConsolidate(consolidateCmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().String("color", "auto", "Color output: auto|always|never")
	rootCmd.PersistentFlags().String("config", defaultConfigFile, "Config file path")

	rootCmd.AddCommand(consolidateCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(runtimeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
