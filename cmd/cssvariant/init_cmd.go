package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default " + defaultConfigFile + " config file",
	Long:  `Create a ` + defaultConfigFile + ` configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created "+defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# cssvariant configuration

# Shared settings
verbose: false
color: auto                # auto | always | never

# Marker delimiters shared by compiled modules and the consolidator
protocol:
  start: "/*__VE_RUNTIME_START__*/"
  end: "/*__VE_RUNTIME_END__*/"

# Recipe module settings
recipe:
  mode: production         # production | development
  runtime-id: virtual:cssvariant/runtime
  inline-functions: false
  skip-css: false

# Bundle consolidation settings
consolidate:
  include:
    - "dist/**/*.js"
    - "dist/**/*.mjs"
  base-dir: .
  out-dir: ""              # empty = rewrite in place
  delivery: concat         # concat | map
  anchor: first            # first | last
  source-map: false
  workers: 0               # 0 = number of CPUs
  fail-fast: false
  output-format: text      # text | json
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
