package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <words...>",
		Short: "Resolve a single line against the definitions",
		Long: `Resolves one line and prints the commands it expands to.
Arguments containing spaces are quoted again, so
  jarvis match welcome "Ada Lovelace"
resolves the line: welcome "Ada Lovelace"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}

			line := quoteArgs(args)
			res, err := resolveLines(context.Background(), cmd.OutOrStdout(), logger, reg, []string{line}, false)
			if err != nil {
				return err
			}
			if res.Unknown > 0 {
				return fmt.Errorf("%w: %q", errNoMatch, line)
			}
			return nil
		},
	}
}
