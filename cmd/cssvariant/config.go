package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssvariant"
	"github.com/yacobolo/cssvariant/internal/report"
)

const defaultConfigFile = ".cssvariant.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags that were explicitly set are loaded; flag defaults would
	// otherwise shadow the config file keys read by the fallback helpers.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("CSSVARIANT_", ".", func(s string) string {
		// CSSVARIANT_CONSOLIDATE_DELIVERY -> consolidate.delivery
		// CSSVARIANT_RECIPE_MODE -> recipe.mode
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSVARIANT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildBatchConfig constructs the library's BatchConfig from koanf state.
// Positional arguments take precedence over configured include patterns.
func buildBatchConfig(args []string) (cssvariant.BatchConfig, error) {
	delivery, err := parseDelivery(getStringWithFallback("delivery", "consolidate.delivery", "concat"))
	if err != nil {
		return cssvariant.BatchConfig{}, err
	}
	anchor, err := parseAnchor(getStringWithFallback("anchor", "consolidate.anchor", "first"))
	if err != nil {
		return cssvariant.BatchConfig{}, err
	}

	config := cssvariant.BatchConfig{
		BaseDir:    getStringWithFallback("base-dir", "consolidate.base-dir", "."),
		IgnoreFile: getStringWithFallback("ignore-file", "consolidate.ignore-file", ""),
		OutDir:     getStringWithFallback("out-dir", "consolidate.out-dir", ""),
		Protocol:   buildProtocol(),
		Delivery:   delivery,
		Anchor:     anchor,
		SourceMap:  getBoolWithFallback("source-map", "consolidate.source-map", false),
		Workers:    getIntWithFallback("workers", "consolidate.workers", 0),
		FailFast:   getBoolWithFallback("fail-fast", "consolidate.fail-fast", false),
		DryRun:     getBoolWithFallback("dry-run", "consolidate.dry-run", false),
	}

	// Handle includes: arguments first, then flag key, then config key
	switch {
	case len(args) > 0:
		config.Includes = args
	case len(k.Strings("include")) > 0:
		config.Includes = k.Strings("include")
	case len(k.Strings("consolidate.include")) > 0:
		config.Includes = k.Strings("consolidate.include")
	default:
		config.Includes = []string{"dist/**/*.js", "dist/**/*.mjs"}
	}

	return config, nil
}

// buildModuleOptions constructs the library's ModuleOptions from koanf state.
func buildModuleOptions() (cssvariant.ModuleOptions, error) {
	mode, err := parseMode(getStringWithFallback("mode", "recipe.mode", "production"))
	if err != nil {
		return cssvariant.ModuleOptions{}, err
	}
	return cssvariant.ModuleOptions{
		Mode:            mode,
		RuntimeID:       getStringWithFallback("runtime-id", "recipe.runtime-id", cssvariant.DefaultRuntimeID),
		Protocol:        buildProtocol(),
		SkipCSS:         getBoolWithFallback("skip-css", "recipe.skip-css", false),
		InlineFunctions: getBoolWithFallback("inline-functions", "recipe.inline-functions", false),
	}, nil
}

// buildProtocol reads the marker delimiters. Empty values select the
// default delimiters.
func buildProtocol() cssvariant.Protocol {
	return cssvariant.Protocol{
		Start: k.String("protocol.start"),
		End:   k.String("protocol.end"),
	}
}

func parseDelivery(name string) (cssvariant.Delivery, error) {
	switch name {
	case "concat":
		return cssvariant.DeliveryConcat, nil
	case "map":
		return cssvariant.DeliveryMap, nil
	}
	return 0, fmt.Errorf("unknown delivery %q (want concat or map)", name)
}

func parseAnchor(name string) (cssvariant.Anchor, error) {
	switch name {
	case "first":
		return cssvariant.AnchorFirst, nil
	case "last":
		return cssvariant.AnchorLast, nil
	}
	return 0, fmt.Errorf("unknown anchor %q (want first or last)", name)
}

func parseMode(name string) (cssvariant.Mode, error) {
	switch name {
	case "production", "prod":
		return cssvariant.ModeProduction, nil
	case "development", "dev":
		return cssvariant.ModeDevelopment, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want production or development)", name)
}

// useColors resolves the color setting against the terminal.
func useColors() bool {
	return report.ShouldUseColors(getStringWithFallback("color", "color", "auto"))
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
