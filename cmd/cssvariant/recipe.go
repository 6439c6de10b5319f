package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssvariant"
	"github.com/yacobolo/cssvariant/internal/recipe"
	"go.uber.org/zap"
)

var recipeCmd = &cobra.Command{
	Use:     "recipe <file>",
	Aliases: []string{"compile"},
	Short:   "Compile a recipe document into a JavaScript module",
	Long: `Read a YAML or JSON recipe document and write the JavaScript module that
exports one selector function per recipe and injects the document's CSS.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRecipe,
}

func init() {
	f := recipeCmd.Flags()
	f.StringP("out", "o", "", "Output file (default: stdout)")
	f.String("css-out", "", "Also write the module's CSS to this file")
	f.String("mode", "", "Build mode: production|development (default production)")
	f.String("runtime-id", "", "Import specifier of the injection runtime")
	f.Bool("inline-functions", false, "Write selector functions as source instead of constructor calls")
	f.Bool("skip-css", false, "Emit the module without CSS injection")
}

func runRecipe(cmd *cobra.Command, args []string) error {
	opts, err := buildModuleOptions()
	if err != nil {
		return err
	}
	log := commandLogger()
	defer func() { _ = log.Sync() }()
	opts.Logger = log

	doc, err := recipe.LoadFile(args[0])
	if err != nil {
		return err
	}

	mod, err := cssvariant.BuildModule(cssvariant.Unit{
		Path:    filepath.ToSlash(cssvariant.GetRelativePath(args[0])),
		Recipes: doc.Recipes,
		CSS:     doc.CSS,
	}, opts)
	if err != nil {
		return fmt.Errorf("building module: %w", err)
	}

	if cssOut, _ := cmd.Flags().GetString("css-out"); cssOut != "" {
		if err := os.WriteFile(cssOut, []byte(mod.CSS), 0644); err != nil {
			return fmt.Errorf("writing css: %w", err)
		}
		log.Info("wrote css", zap.String("path", cssOut), zap.Int("bytes", len(mod.CSS)))
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), mod.Code)
		return err
	}
	if err := os.WriteFile(out, []byte(mod.Code), 0644); err != nil {
		return fmt.Errorf("writing module: %w", err)
	}
	log.Info("wrote module", zap.String("path", out), zap.Int("recipes", len(mod.Recipes)))
	return nil
}
