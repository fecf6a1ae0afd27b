// Package config provides configuration types and defaults for snova.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/snova-cli/snova/internal/defs"
	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/paths"
)

// Config holds all configuration options for snova.
type Config struct {
	DefsPath   string        `mapstructure:"defs_path"`   // user command definitions file
	AutoReload bool          `mapstructure:"auto_reload"` // reload definitions when the file changes
	UI         UIConfig      `mapstructure:"ui"`
	Theme      ThemeConfig   `mapstructure:"theme"`
	Tracing    TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar  bool   `mapstructure:"show_status_bar"` // Show status bar at bottom
	ShowProvenance bool   `mapstructure:"show_provenance"` // Show where each template was loaded from
	MarkdownStyle  string `mapstructure:"markdown_style"`  // "dark" (default) or "light"
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens by dotted key:
	//   colors:
	//     "text.primary": "#FF0000"
	// Keys stay flat because config files load with a :: key delimiter.
	Colors map[string]string `mapstructure:"colors"`
}

// TracingConfig holds trace export configuration for build sessions.
type TracingConfig struct {
	// Enabled controls whether session tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/snova/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/snova/traces/traces.jsonl or empty string if home dir
// is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "snova", "traces", "traces.jsonl")
}

// DefaultConfigPath returns where the config file lives.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "snova", "config.yaml")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DefsPath:   defs.DefaultUserPath(),
		AutoReload: true,
		UI: UIConfig{
			ShowStatusBar:  true,
			ShowProvenance: false,
			MarkdownStyle:  "dark",
		},
		Theme: ThemeConfig{
			Preset: "",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Load reads the config file at path over the defaults. A missing file
// just yields the defaults. Uses a custom key delimiter so dotted theme
// color tokens are not split into nested keys.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	// Config values never go through a shell, so expand ~ here.
	cfg.DefsPath = paths.ExpandHome(cfg.DefsPath)
	cfg.Tracing.FilePath = paths.ExpandHome(cfg.Tracing.FilePath)

	// Resolve the derived trace path before validating, so enabling the
	// file exporter without an explicit path works.
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	log.Debug(log.CatConfig, "config loaded", "path", path)
	return cfg, nil
}

// Validate checks the whole configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateUI checks user interface configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# snova configuration

# Path to your command definitions file
# defs_path: ~/.config/snova/commands.yaml

# Reload definitions automatically when the file changes
auto_reload: true

# UI settings
ui:
  show_status_bar: true   # Show status bar at bottom
  show_provenance: false  # Show where each template was loaded from
  # markdown_style: dark  # Guide rendering style: "dark" (default) or "light"

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default snova theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   "text.primary": "#FFFFFF"
  #   "status.error": "#FF0000"
  #   "tmpl.placeholder": "#94E2D5"

# Session tracing
# Records build sessions as spans for timing analysis
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/snova/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
