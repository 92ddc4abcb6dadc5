package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/jarvis/formatter"
	"github.com/gnoswap-labs/jarvis/pattern"
)

var errNoMatch = errors.New("unrecognized command")

// resolver is satisfied by *registry.Registry.
type resolver interface {
	Resolve(line string) ([]pattern.Step, error)
}

// lineResult summarizes the resolution of a batch of lines.
type lineResult struct {
	Resolved int
	Unknown  int
	Failed   int
}

// resolveLines resolves every line in order and writes the steps to w.
// Unrecognized lines are reported and counted; expansion errors stop
// the batch unless keepGoing is set.
func resolveLines(ctx context.Context, w io.Writer, logger *zap.Logger, r resolver, lines []string, keepGoing bool) (lineResult, error) {
	var res lineResult
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		steps, err := r.Resolve(line)
		if err != nil {
			res.Failed++
			logger.Error("Failed to resolve line", zap.Int("line", i+1), zap.String("input", line), zap.Error(err))
			fmt.Fprint(w, formatter.FormatError(line, err))
			if !keepGoing {
				return res, err
			}
			continue
		}

		if isUnknown(steps) {
			res.Unknown++
			logger.Warn("Unrecognized command", zap.Int("line", i+1), zap.String("input", line))
			fmt.Fprint(w, formatter.FormatUnknown(line))
			continue
		}

		res.Resolved++
		fmt.Fprint(w, formatter.FormatSteps(steps))
	}
	return res, nil
}

// isUnknown reports whether a top-level line matched nothing.
func isUnknown(steps []pattern.Step) bool {
	return len(steps) == 1 && steps[0].Kind == pattern.StepUnknown && steps[0].Depth == 0
}

// quoteArgs joins command line arguments back into a jarvis line,
// quoting arguments the shell already split on whitespace.
func quoteArgs(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if strings.ContainsAny(arg, " \t") {
			parts[i] = `"` + arg + `"`
		} else {
			parts[i] = arg
		}
	}
	return strings.Join(parts, " ")
}
