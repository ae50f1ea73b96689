// Package config loads user preferences for peruse from an optional
// YAML file, layering them over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"peruse/term"
)

// Config is the top-level user configuration.
type Config struct {
	Keys  KeysConfig  `mapstructure:"keys" yaml:"keys"`
	Input InputConfig `mapstructure:"input" yaml:"input"`
	View  ViewConfig  `mapstructure:"view" yaml:"view"`
}

// KeysConfig holds rebindable keys.
type KeysConfig struct {
	Quit string `mapstructure:"quit" yaml:"quit"`
}

// InputConfig controls raw input behavior.
type InputConfig struct {
	// TimeoutTenths is the raw read timeout in tenths of a second. It
	// bounds how long the decoder waits for escape sequence bytes.
	TimeoutTenths int `mapstructure:"timeout_tenths" yaml:"timeout_tenths"`
}

// ViewConfig controls rendering behavior.
type ViewConfig struct {
	// Banner toggles the centered welcome message on an empty buffer.
	Banner bool `mapstructure:"banner" yaml:"banner"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Keys:  KeysConfig{Quit: "ctrl-q"},
		Input: InputConfig{TimeoutTenths: 1},
		View:  ViewConfig{Banner: true},
	}
}

// DefaultPath returns the expected config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "peruse", "config.yaml"), nil
}

// Load reads configuration from path, or from DefaultPath when path is
// empty. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("keys.quit", cfg.Keys.Quit)
	v.SetDefault("input.timeout_tenths", cfg.Input.TimeoutTenths)
	v.SetDefault("view.banner", cfg.View.Banner)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if _, err := ParseBinding(cfg.Keys.Quit); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Input.TimeoutTenths < 1 || cfg.Input.TimeoutTenths > 100 {
		return Config{}, fmt.Errorf("config %s: input.timeout_tenths must be between 1 and 100", path)
	}
	return cfg, nil
}

// ParseBinding converts a binding string to the key it names. Bindings
// are a single printable character, or "ctrl-" followed by a letter.
func ParseBinding(binding string) (term.Key, error) {
	if rest, ok := strings.CutPrefix(strings.ToLower(binding), "ctrl-"); ok {
		if len(rest) != 1 || rest[0] < 'a' || rest[0] > 'z' {
			return 0, fmt.Errorf("invalid binding %q: ctrl- must be followed by one letter", binding)
		}
		return term.Ctrl(rest[0]), nil
	}
	if len(binding) != 1 || binding[0] < 0x21 || binding[0] > 0x7e {
		return 0, fmt.Errorf("invalid binding %q: expected one printable character or ctrl-<letter>", binding)
	}
	return term.Key(binding[0]), nil
}

// Match reports whether a decoded key matches a binding string.
func Match(key term.Key, binding string) bool {
	want, err := ParseBinding(binding)
	if err != nil {
		return false
	}
	return key == want
}
