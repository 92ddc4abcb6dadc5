package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/jarvis/internal/script"
)

func newRunCmd() *cobra.Command {
	var (
		keepGoing bool
		progress  bool
	)

	cmd := &cobra.Command{
		Use:   "run <paths...>",
		Short: "Resolve every line of one or more scripts",
		Long: `Resolves the lines of jarvis scripts. Directories are searched
recursively for files with the configured script extension. Empty lines
and lines starting with # are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			reg, err := loadRegistry()
			if err != nil {
				return err
			}

			files, err := script.Collect(args, conf.ScriptExt)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no .%s scripts found", conf.ScriptExt)
			}

			var bar *progressbar.ProgressBar
			if progress {
				bar = newScriptProgress(cmd, len(files))
			}

			var total lineResult
			for _, file := range files {
				lines, err := script.ParseScript(file)
				if err != nil {
					return err
				}
				logger.Debug("running script", zap.String("file", file), zap.Int("lines", len(lines)))

				res, err := resolveLines(ctx, cmd.OutOrStdout(), logger.With(zap.String("file", file)), reg, lines, keepGoing)
				total.Resolved += res.Resolved
				total.Unknown += res.Unknown
				total.Failed += res.Failed
				if err != nil {
					return fmt.Errorf("error running %s: %w", file, err)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			if bar != nil {
				_ = bar.Finish()
			}

			logger.Info("scripts resolved",
				zap.Int("files", len(files)),
				zap.Int("resolved", total.Resolved),
				zap.Int("unknown", total.Unknown),
				zap.Int("failed", total.Failed),
			)
			if total.Failed > 0 {
				return fmt.Errorf("%d line(s) failed to resolve", total.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Continue after a line fails to expand")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr")
	return cmd
}

func newScriptProgress(cmd *cobra.Command, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("scripts"),
		progressbar.OptionEnableColorCodes(conf.Color),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
