package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("definitions", DefaultDefinitions, "")
	flags.Int("max-depth", 0, "")
	flags.String("log-level", DefaultLogLevel, "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadPrecedence(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
definitions: from-file.yaml
max_depth: 3
max_steps: 50
prompt: "file> "
log_level: debug
`), 0o644))

	t.Setenv("JARVIS_MAX_DEPTH", "5")
	t.Setenv("JARVIS_PROMPT", "env> ")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--max-depth", "7"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "from-file.yaml", cfg.Definitions, "unset flag must not override the file")
	assert.Equal(t, 7, cfg.MaxDepth, "flag beats env and file")
	assert.Equal(t, "env> ", cfg.Prompt, "env beats file")
	assert.Equal(t, 50, cfg.MaxSteps)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultScriptExt, cfg.ScriptExt)
}

func TestLoadDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("script_ext: jv\n"), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "jv", cfg.ScriptExt)
}

func TestLoadErrors(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("max_depth: 0\n"), 0o644))
	_, err = Load(bad, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "upper case level", mutate: func(c *Config) { c.LogLevel = "WARN" }},
		{name: "no definitions", mutate: func(c *Config) { c.Definitions = "" }, wantErr: "definitions file is required"},
		{name: "dotted extension", mutate: func(c *Config) { c.ScriptExt = ".jarvis" }, wantErr: "script_ext"},
		{name: "empty extension", mutate: func(c *Config) { c.ScriptExt = "" }, wantErr: "script_ext"},
		{name: "zero depth", mutate: func(c *Config) { c.MaxDepth = 0 }, wantErr: "max_depth"},
		{name: "zero steps", mutate: func(c *Config) { c.MaxSteps = 0 }, wantErr: "max_steps"},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), DefaultConfigFile)

	cfg := Default()
	cfg.MaxDepth = 9
	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}
