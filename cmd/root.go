package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnoswap-labs/jarvis/formatter"
	"github.com/gnoswap-labs/jarvis/internal/config"
	"github.com/gnoswap-labs/jarvis/internal/registry"
	"github.com/gnoswap-labs/jarvis/internal/script"
)

const (
	defaultTimeout = 5 * time.Minute
	envFileSuffix  = "env"
)

var (
	cfgFile string
	envFile string
	timeout time.Duration

	conf   *config.Config
	logger *zap.Logger
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "jarvis",
		Short:             "jarvis - just another rudimentary verbal interface shell",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Path to the configuration file (default .jarvis.yaml)")
	flags.StringVar(&envFile, "env-file", "", "Load JARVIS_* settings from a dotenv file")
	flags.DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for running scripts")
	flags.StringP("definitions", "d", config.DefaultDefinitions, "Command and macro definitions file")
	flags.Int("max-depth", config.Default().MaxDepth, "Maximum macro nesting depth")
	flags.Int("max-steps", config.Default().MaxSteps, "Maximum number of lines a single expansion may resolve")
	flags.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.Bool("color", true, "Colorize output")

	root.AddCommand(newInitCmd())
	root.AddCommand(newMatchCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReplCmd())
	return root
}

func Execute() error {
	return rootCmd.Execute()
}

// setup loads the env file, the configuration and the logger before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if !script.ValidateEnvFileName(envFileSuffix, envFile) {
			return fmt.Errorf("env file %s must end with .%s", envFile, envFileSuffix)
		}
		if err := script.LoadEnv(envFile); err != nil {
			return err
		}
	}

	c, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	conf = c

	l, err := newLogger(conf.LogLevel)
	if err != nil {
		return err
	}
	logger = l

	formatter.SetColor(conf.Color)
	logger.Debug("configuration loaded",
		zap.String("definitions", conf.Definitions),
		zap.Int("max_depth", conf.MaxDepth),
		zap.Int("max_steps", conf.MaxSteps),
	)
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func registryOptions() []registry.Option {
	return []registry.Option{
		registry.WithMaxDepth(conf.MaxDepth),
		registry.WithMaxSteps(conf.MaxSteps),
	}
}

func loadRegistry() (*registry.Registry, error) {
	reg, err := registry.Load(conf.Definitions, registryOptions()...)
	if err != nil {
		logger.Error("Failed to load definitions", zap.String("path", conf.Definitions), zap.Error(err))
		return nil, err
	}
	logger.Debug("definitions loaded",
		zap.String("path", conf.Definitions),
		zap.Int("commands", len(reg.Commands())),
		zap.Int("macros", len(reg.Macros())),
	)
	return reg, nil
}
