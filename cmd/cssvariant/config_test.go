package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssvariant"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), defaultConfigFile)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
verbose: true
color: never

recipe:
  mode: development
  runtime-id: my/runtime

consolidate:
  delivery: map
  workers: 3
  include:
    - "build/**/*.js"
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "never", k.String("color"))
	assert.Equal(t, "development", k.String("recipe.mode"))
	assert.Equal(t, "my/runtime", k.String("recipe.runtime-id"))
	assert.Equal(t, "map", k.String("consolidate.delivery"))
	assert.Equal(t, 3, k.Int("consolidate.workers"))
	assert.Equal(t, []string{"build/**/*.js"}, k.Strings("consolidate.include"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// A missing config file is not an error
	require.NoError(t, loadConfigFromPath("/nonexistent/"+defaultConfigFile))

	config, err := buildBatchConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"dist/**/*.js", "dist/**/*.mjs"}, config.Includes)
	assert.Equal(t, ".", config.BaseDir)
	assert.Empty(t, config.OutDir)
	assert.Equal(t, cssvariant.DeliveryConcat, config.Delivery)
	assert.Equal(t, cssvariant.AnchorFirst, config.Anchor)
	assert.Equal(t, cssvariant.Protocol{}, config.Protocol)
	assert.Zero(t, config.Workers)
	assert.False(t, config.SourceMap)
	assert.False(t, config.FailFast)
	assert.False(t, config.DryRun)

	opts, err := buildModuleOptions()
	require.NoError(t, err)
	assert.Equal(t, cssvariant.ModeProduction, opts.Mode)
	assert.Equal(t, cssvariant.DefaultRuntimeID, opts.RuntimeID)
	assert.False(t, opts.SkipCSS)
	assert.False(t, opts.InlineFunctions)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
recipe:
  mode: production
consolidate:
  delivery: concat
`)

	// Set env vars that should override config file
	t.Setenv("CSSVARIANT_RECIPE_MODE", "development")
	t.Setenv("CSSVARIANT_CONSOLIDATE_DELIVERY", "map")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "development", k.String("recipe.mode"))
	assert.Equal(t, "map", k.String("consolidate.delivery"))
}

func TestBuildBatchConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
protocol:
  start: "/*S*/"
  end: "/*E*/"
consolidate:
  include:
    - "out/*.js"
  base-dir: web
  out-dir: merged
  delivery: map
  anchor: last
  source-map: true
  workers: 2
  fail-fast: true
  dry-run: true
`)
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildBatchConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"out/*.js"}, config.Includes)
	assert.Equal(t, "web", config.BaseDir)
	assert.Equal(t, "merged", config.OutDir)
	assert.Equal(t, cssvariant.DeliveryMap, config.Delivery)
	assert.Equal(t, cssvariant.AnchorLast, config.Anchor)
	assert.Equal(t, cssvariant.Protocol{Start: "/*S*/", End: "/*E*/"}, config.Protocol)
	assert.True(t, config.SourceMap)
	assert.Equal(t, 2, config.Workers)
	assert.True(t, config.FailFast)
	assert.True(t, config.DryRun)
}

func TestBuildBatchConfig_ArgsOverrideIncludes(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
consolidate:
  include:
    - "out/*.js"
`)
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildBatchConfig([]string{"bundle.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bundle.js"}, config.Includes)
}

func TestBuildBatchConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{"delivery", "consolidate:\n  delivery: stream\n", `unknown delivery "stream"`},
		{"anchor", "consolidate:\n  anchor: middle\n", `unknown anchor "middle"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKoanf()
			require.NoError(t, loadConfigFromPath(writeConfig(t, tt.config)))

			_, err := buildBatchConfig(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildModuleOptions_FromConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
recipe:
  mode: dev
  runtime-id: app/runtime
  inline-functions: true
  skip-css: true
`)
	require.NoError(t, loadConfigFromPath(configPath))

	opts, err := buildModuleOptions()
	require.NoError(t, err)
	assert.Equal(t, cssvariant.ModeDevelopment, opts.Mode)
	assert.Equal(t, "app/runtime", opts.RuntimeID)
	assert.True(t, opts.InlineFunctions)
	assert.True(t, opts.SkipCSS)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		want    cssvariant.Mode
		wantErr bool
	}{
		{"production", cssvariant.ModeProduction, false},
		{"prod", cssvariant.ModeProduction, false},
		{"development", cssvariant.ModeDevelopment, false},
		{"dev", cssvariant.ModeDevelopment, false},
		{"staging", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMode(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))

	require.NoError(t, k.Set("config.key", "from-config"))
	assert.Equal(t, "from-config", getStringWithFallback("flag-key", "config.key", "default"))

	require.NoError(t, k.Set("flag-key", "from-flag"))
	assert.Equal(t, "from-flag", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}
