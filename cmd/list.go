package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/jarvis/formatter"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the defined commands and macros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			formatter.RenderDefinitions(cmd.OutOrStdout(), reg.Commands(), reg.Macros())
			return nil
		},
	}
}
