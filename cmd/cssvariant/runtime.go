package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssvariant"
	"github.com/yacobolo/cssvariant/internal/inject"
)

var runtimeCmd = &cobra.Command{
	Use:   "runtime",
	Short: "Print the CSS injection runtime module",
	Long: `Print the JavaScript module that receives injection calls. Serve it under
the runtime id that compiled modules import.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode, err := parseMode(getStringWithFallback("mode", "recipe.mode", "production"))
		if err != nil {
			return err
		}
		delivery, err := parseDelivery(getStringWithFallback("delivery", "consolidate.delivery", "concat"))
		if err != nil {
			return err
		}

		rm := inject.RuntimeProduction
		if mode == cssvariant.ModeDevelopment {
			rm = inject.RuntimeDevelopment
		}
		src := inject.RuntimeSource(rm, delivery)

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), src)
			return err
		}
		if err := os.WriteFile(out, []byte(src), 0644); err != nil {
			return fmt.Errorf("writing runtime: %w", err)
		}
		return nil
	},
}

func init() {
	f := runtimeCmd.Flags()
	f.StringP("out", "o", "", "Output file (default: stdout)")
	f.String("mode", "", "Runtime flavour: production|development (default production)")
	f.String("delivery", "", "Call shape the runtime accepts: concat|map (default concat)")
}
