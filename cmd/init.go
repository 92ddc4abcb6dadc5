package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/jarvis/internal/config"
	"github.com/gnoswap-labs/jarvis/pattern"
)

var sampleDefinitions = pattern.Definitions{
	Commands: []pattern.CommandDef{
		{Name: "greet", Description: "Greet someone", Patterns: []string{"hello $name", "hi $name"}},
		{Name: "lights", Description: "Switch the lights", Patterns: []string{"lights $state", "turn lights $state"}},
		{Name: "say", Description: "Say something", Patterns: []string{"say $message"}},
	},
	Macros: []pattern.MacroDef{
		{
			Name:        "welcome",
			Description: "Welcome a guest",
			Pattern:     "welcome $guest",
			Body:        []string{"lights on", "hello $guest", `say "make yourself at home"`},
		},
	},
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file and sample definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				path = config.DefaultConfigFile
			}

			if err := initConfigurationFile(path, *conf, force); err != nil {
				logger.Error("Error initializing config file", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)

			if err := initDefinitionsFile(conf.Definitions, force); err != nil {
				logger.Error("Error initializing definitions file", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Definitions file created/updated: %s\n", conf.Definitions)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func initConfigurationFile(path string, cfg config.Config, force bool) error {
	if err := checkWritable(path, force); err != nil {
		return err
	}
	return config.Write(path, cfg)
}

func initDefinitionsFile(path string, force bool) error {
	if err := checkWritable(path, force); err != nil {
		return err
	}

	d, err := yaml.Marshal(sampleDefinitions)
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

func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
