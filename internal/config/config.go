// Package config loads jarvis settings from defaults, a YAML file,
// JARVIS_ environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/jarvis/pattern"
)

const (
	DefaultConfigFile  = ".jarvis.yaml"
	DefaultDefinitions = "jarvis.yaml"
	DefaultScriptExt   = "jarvis"
	DefaultLogLevel    = "info"
	DefaultPrompt      = "jarvis> "
	DefaultHistoryFile = ".jarvis_history"

	envPrefix = "JARVIS_"
)

var ErrInvalidConfig = errors.New("invalid configuration")

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Config holds the jarvis CLI settings.
type Config struct {
	Name        string `koanf:"name" yaml:"name"`
	Definitions string `koanf:"definitions" yaml:"definitions"`
	ScriptExt   string `koanf:"script_ext" yaml:"script_ext"`
	MaxDepth    int    `koanf:"max_depth" yaml:"max_depth"`
	MaxSteps    int    `koanf:"max_steps" yaml:"max_steps"`
	LogLevel    string `koanf:"log_level" yaml:"log_level"`
	HistoryFile string `koanf:"history_file" yaml:"history_file"`
	Prompt      string `koanf:"prompt" yaml:"prompt"`
	Color       bool   `koanf:"color" yaml:"color"`
	EnvFile     string `koanf:"env_file" yaml:"env_file,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Name:        "jarvis",
		Definitions: DefaultDefinitions,
		ScriptExt:   DefaultScriptExt,
		MaxDepth:    pattern.DefaultMaxDepth,
		MaxSteps:    pattern.DefaultMaxSteps,
		LogLevel:    DefaultLogLevel,
		HistoryFile: DefaultHistoryFile,
		Prompt:      DefaultPrompt,
		Color:       true,
	}
}

func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"name":         d.Name,
		"definitions":  d.Definitions,
		"script_ext":   d.ScriptExt,
		"max_depth":    d.MaxDepth,
		"max_steps":    d.MaxSteps,
		"log_level":    d.LogLevel,
		"history_file": d.HistoryFile,
		"prompt":       d.Prompt,
		"color":        d.Color,
		"env_file":     d.EnvFile,
	}
}

// Load builds the configuration. cfgFile may be empty, in which case
// .jarvis.yaml in the working directory is used when present. A missing
// explicit cfgFile is an error. Only flags that were set explicitly
// override lower layers; flag names use dashes for underscores.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// JARVIS_MAX_DEPTH -> max_depth
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings for values jarvis cannot work with.
func (c Config) Validate() error {
	if c.Definitions == "" {
		return fmt.Errorf("%w: definitions file is required", ErrInvalidConfig)
	}
	if c.ScriptExt == "" || strings.HasPrefix(c.ScriptExt, ".") {
		return fmt.Errorf("%w: script_ext must be a bare extension, got %q", ErrInvalidConfig, c.ScriptExt)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max_depth must be at least 1, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("%w: max_steps must be at least 1, got %d", ErrInvalidConfig, c.MaxSteps)
	}
	if !logLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Write stores the configuration as YAML at path.
func Write(path string, cfg Config) error {
	d, err := yamlv3.Marshal(cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
