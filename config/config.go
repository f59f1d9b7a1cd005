// Package config holds the settings of the svgthemer command,
// persisted as YAML. Environment variables are read-only overrides
// applied at load time.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type RenderConfig struct {
	Scale      float64 `yaml:"scale"`
	Background string  `yaml:"background"` // "#rrggbb", empty for transparent
	Format     string  `yaml:"format"`     // "png" | "pdf"
	OutputDir  string  `yaml:"output_dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type SVGConfig struct {
	ErrorMode string `yaml:"error_mode"` // "ignore" | "warn" | "strict"
}

type Config struct {
	ConfigVersion int           `yaml:"config_version"`
	Render        RenderConfig  `yaml:"render"`
	Logging       LoggingConfig `yaml:"logging"`
	SVG           SVGConfig     `yaml:"svg"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		ConfigVersion: 1,
		Render:        RenderConfig{Scale: 1, Format: "png", OutputDir: "."},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		SVG:           SVGConfig{ErrorMode: "warn"},
	}
}

// Env var names used as overrides.
const (
	EnvRenderScale      = "SVGTHEME_RENDER_SCALE"
	EnvRenderBackground = "SVGTHEME_RENDER_BACKGROUND"
	EnvRenderFormat     = "SVGTHEME_RENDER_FORMAT"
	EnvRenderOutputDir  = "SVGTHEME_RENDER_OUTPUT_DIR"
	EnvSVGErrorMode     = "SVGTHEME_SVG_ERROR_MODE"
	// logging, shared with logging.FromEnv
	EnvLogLevel  = "SVGTHEME_LOG_LEVEL"
	EnvLogFormat = "SVGTHEME_LOG_FORMAT"
	EnvLogSource = "SVGTHEME_LOG_SOURCE"
	EnvLogFile   = "SVGTHEME_LOG_FILE"
)

// Load reads the file at path (if present), merges it over the
// defaults, then applies the environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: %w", err)
		default:
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err != nil {
				return cfg, fmt.Errorf("config: %s: %w", path, err)
			}
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, cfg.Validate()
}

// Save writes cfg as YAML to path, creating its directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the enumerated settings.
func (cfg Config) Validate() error {
	switch cfg.Render.Format {
	case "png", "pdf":
	default:
		return fmt.Errorf("config: render.format must be png or pdf, got %q", cfg.Render.Format)
	}
	if cfg.Render.Scale <= 0 {
		return fmt.Errorf("config: render.scale must be positive, got %g", cfg.Render.Scale)
	}
	switch cfg.SVG.ErrorMode {
	case "ignore", "warn", "strict":
	default:
		return fmt.Errorf("config: svg.error_mode must be ignore, warn or strict, got %q", cfg.SVG.ErrorMode)
	}
	return nil
}

func mergeInto(dst *Config, src *Config) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Render.Scale != 0 {
		dst.Render.Scale = src.Render.Scale
	}
	if v := strings.TrimSpace(src.Render.Background); v != "" {
		dst.Render.Background = v
	}
	if v := strings.TrimSpace(src.Render.Format); v != "" {
		dst.Render.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Render.OutputDir); v != "" {
		dst.Render.OutputDir = v
	}
	// logging
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
	if v := strings.TrimSpace(src.SVG.ErrorMode); v != "" {
		dst.SVG.ErrorMode = strings.ToLower(v)
	}
}

func isTrue(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvRenderScale)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Render.Scale = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderBackground)); v != "" {
		cfg.Render.Background = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderFormat)); v != "" {
		cfg.Render.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderOutputDir)); v != "" {
		cfg.Render.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSVGErrorMode)); v != "" {
		cfg.SVG.ErrorMode = strings.ToLower(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = isTrue(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
