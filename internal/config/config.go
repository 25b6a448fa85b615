// Package config provides configuration types, defaults, and loading for quire.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/JackWReid/quire/internal/log"
	"github.com/JackWReid/quire/internal/terminal"
)

// LocalFile is the project-local config file checked before the user config.
const LocalFile = ".quire.yaml"

// Config holds all configuration options for quire.
type Config struct {
	Highlight HighlightConfig `mapstructure:"highlight" yaml:"highlight"`
	Spell     SpellConfig     `mapstructure:"spell" yaml:"spell"`
	Render    RenderConfig    `mapstructure:"render" yaml:"render"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// HighlightConfig controls the highlight pass.
type HighlightConfig struct {
	Enabled  bool `mapstructure:"enabled" yaml:"enabled"`
	Spelling bool `mapstructure:"spelling" yaml:"spelling"`
}

// SpellConfig locates the word list used for spelling.
type SpellConfig struct {
	Dictionary string `mapstructure:"dictionary" yaml:"dictionary"` // newline-separated word list
	Depth      int    `mapstructure:"depth" yaml:"depth"`
}

// RenderConfig controls terminal output.
type RenderConfig struct {
	Color string `mapstructure:"color" yaml:"color"` // "auto", "always" or "never"
	Width int    `mapstructure:"width" yaml:"width"` // 0 detects the terminal width
}

// LogConfig controls diagnostics written to stderr.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		Highlight: HighlightConfig{Enabled: true},
		Spell:     SpellConfig{Depth: 2},
		Render:    RenderConfig{Color: "auto"},
		Log:       LogConfig{Level: "warn", Format: "text"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("highlight.enabled", d.Highlight.Enabled)
	v.SetDefault("highlight.spelling", d.Highlight.Spelling)
	v.SetDefault("spell.dictionary", d.Spell.Dictionary)
	v.SetDefault("spell.depth", d.Spell.Depth)
	v.SetDefault("render.color", d.Render.Color)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads configuration into a fresh viper instance. An explicit path
// must exist. Otherwise the lookup order is:
//  1. ./.quire.yaml
//  2. ~/.config/quire/config.yaml
//
// and a missing file leaves the defaults in place. QUIRE_* environment
// variables override file values. The returned string is the file used,
// empty when none was read.
func Load(path string) (Config, string, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("quire")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(LocalFile); err == nil {
		v.SetConfigFile(LocalFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "quire"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, v.ConfigFileUsed(), nil
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	if _, err := terminal.ParseColorMode(c.Render.Color); err != nil {
		return fmt.Errorf("render.color: %w", err)
	}
	if c.Render.Width < 0 {
		return fmt.Errorf("render.width: must not be negative, got %d", c.Render.Width)
	}
	if c.Spell.Depth < 0 {
		return fmt.Errorf("spell.depth: must not be negative, got %d", c.Spell.Depth)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// LoggerOptions converts the log section. Call Validate first; invalid
// values fall back to the parser defaults.
func (c Config) LoggerOptions() log.Options {
	level, _ := log.ParseLevel(c.Log.Level)
	format, _ := log.ParseFormat(c.Log.Format)
	return log.Options{Level: level, Format: format}
}

// ColorMode returns the parsed render.color value.
func (c Config) ColorMode() terminal.ColorMode {
	mode, _ := terminal.ParseColorMode(c.Render.Color)
	return mode
}

// WriteDefault writes Defaults() as YAML to path, creating parent
// directories. An existing file is not overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	header := "# quire configuration\n# render.color: auto | always | never\n# log.level: debug | info | warn | error\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// DefaultPath returns ~/.config/quire/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "quire", "config.yaml"), nil
}
