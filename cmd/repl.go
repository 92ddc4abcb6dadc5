package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/jarvis/formatter"
	"github.com/gnoswap-labs/jarvis/internal/registry"
)

func newReplCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Resolve lines interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := registry.NewWatcher(conf.Definitions, logger, registryOptions()...)
			if err != nil {
				logger.Error("Failed to load definitions", zap.String("path", conf.Definitions), zap.Error(err))
				return err
			}
			reportReloads(w, cmd.OutOrStdout())
			if watch {
				if err := w.Start(); err != nil {
					return err
				}
				defer func() { _ = w.Stop() }()
			}
			return runREPL(cmd, w)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload definitions when the file changes")
	return cmd
}

func runREPL(cmd *cobra.Command, w *registry.Watcher) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          conf.Prompt,
		HistoryFile:     conf.HistoryFile,
		AutoComplete:    &lineCompleter{current: w.Current},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "jarvis (definitions: %s)\n", w.Current().Source())
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, w, line); quit {
				return nil
			}
			continue
		}

		// unknown lines and expansion errors are printed, never fatal here
		_, _ = resolveLines(context.Background(), out, logger, w.Current(), []string{line}, true)
	}
}

// handleDotCommand runs a REPL command and reports whether the loop
// should stop.
func handleDotCommand(cmd *cobra.Command, w *registry.Watcher, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".list":
		reg := w.Current()
		formatter.RenderDefinitions(cmd.OutOrStdout(), reg.Commands(), reg.Macros())

	case ".show":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .show <name>")
			return false
		}
		if !showDefinition(cmd.OutOrStdout(), w.Current(), parts[1]) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "No command or macro named %q\n", parts[1])
		}

	case ".reload":
		if err := w.Reload(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .list           List commands and macros
  .show <name>    Show the patterns of a command or macro
  .reload         Reload the definitions file
  .quit / .exit   Exit the REPL

Any other line is resolved against the definitions.
Tab completes the literal words of command and macro patterns.
`
	_, _ = fmt.Fprintln(w, help)
}

// reportReloads prints a notice every time the definitions are reloaded,
// either by .reload or by the file watcher.
func reportReloads(w *registry.Watcher, out io.Writer) {
	w.OnReload(func(reg *registry.Registry) {
		_, _ = fmt.Fprintf(out, "definitions reloaded (%d commands, %d macros)\n",
			len(reg.Commands()), len(reg.Macros()))
	})
}

// showDefinition prints the command or macro called name. A command and
// a macro may share a name; both are shown then.
func showDefinition(out io.Writer, reg *registry.Registry, name string) bool {
	found := false
	if c, ok := reg.Command(name); ok {
		found = true
		_, _ = fmt.Fprintf(out, "command %s", c.Name)
		if c.Description != "" {
			_, _ = fmt.Fprintf(out, ": %s", c.Description)
		}
		_, _ = fmt.Fprintln(out)
		for _, p := range c.Patterns {
			_, _ = fmt.Fprintf(out, "  %s%s\n", p, formatArgNames(p.Args()))
		}
	}
	if m, ok := reg.Macro(name); ok {
		found = true
		_, _ = fmt.Fprintf(out, "macro %s", m.Name)
		if m.Description != "" {
			_, _ = fmt.Fprintf(out, ": %s", m.Description)
		}
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintf(out, "  %s%s\n", m.Tokens, formatArgNames(m.Tokens.Args()))
		for _, line := range m.Body {
			_, _ = fmt.Fprintf(out, "    -> %s\n", line)
		}
	}
	return found
}

func formatArgNames(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return " (args: " + strings.Join(names, ", ") + ")"
}

// lineCompleter adapts the registry completer to readline.AutoCompleter.
type lineCompleter struct {
	current func() *registry.Registry
}

// Do returns the suffixes that complete the word under the cursor and the
// length of the already typed part of that word.
func (c *lineCompleter) Do(line []rune, pos int) ([][]rune, int) {
	typed := string(line[:pos])

	partial := ""
	if !strings.HasSuffix(typed, " ") {
		if fields := strings.Fields(typed); len(fields) > 0 {
			partial = fields[len(fields)-1]
		}
	}

	var suffixes [][]rune
	for _, candidate := range c.current().Complete(typed) {
		word := candidate[strings.LastIndex(candidate, " ")+1:]
		suffixes = append(suffixes, []rune(strings.TrimPrefix(word, partial)+" "))
	}
	return suffixes, len([]rune(partial))
}
