package pattern

import (
	"errors"
	"fmt"
)

const (
	// DefaultMaxDepth bounds how deeply macros may expand into other macros.
	DefaultMaxDepth = 16
	// DefaultMaxSteps bounds the number of lines processed by one expansion.
	DefaultMaxSteps = 1024
)

var (
	ErrMaxDepth = errors.New("macro expansion exceeds maximum depth")
	ErrMaxSteps = errors.New("macro expansion exceeds maximum number of steps")
)

// StepKind defines the kind of a resolved line.
type StepKind int

const (
	StepUnknown StepKind = iota
	StepCommand
	StepMacro
)

func (k StepKind) String() string {
	switch k {
	case StepUnknown:
		return "Unknown"
	case StepCommand:
		return "Command"
	case StepMacro:
		return "Macro"
	default:
		return "Invalid"
	}
}

// Step is one resolved line of an expansion.
//
// Depth is 0 for the line passed to Expand and grows by one for every
// macro body level. Parent names the macro whose body produced the line.
type Step struct {
	Kind   StepKind
	Name   string
	Args   map[string]string
	Line   string
	Depth  int
	Parent string
}

// Expander resolves lines against a fixed set of commands and macros,
// expanding macro bodies until only commands (or unknown lines) remain.
type Expander struct {
	commands []Command
	macros   []Macro
	maxDepth int
	maxSteps int
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithMaxDepth sets the maximum macro nesting depth. Values below 1 are ignored.
func WithMaxDepth(depth int) ExpanderOption {
	return func(e *Expander) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithMaxSteps sets the maximum number of lines a single expansion may
// process. Values below 1 are ignored.
func WithMaxSteps(steps int) ExpanderOption {
	return func(e *Expander) {
		if steps > 0 {
			e.maxSteps = steps
		}
	}
}

// NewExpander creates an Expander. The slices are used as given and must
// not be modified afterwards.
func NewExpander(commands []Command, macros []Macro, opts ...ExpanderOption) *Expander {
	e := &Expander{
		commands: commands,
		macros:   macros,
		maxDepth: DefaultMaxDepth,
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MatchCommand returns the first command, in registration order, that
// matches the tokens.
func (e *Expander) MatchCommand(tokens []string) (Command, Match, bool) {
	for _, cmd := range e.commands {
		if m, ok := ParseInputTokens(cmd, tokens); ok {
			return cmd, m, true
		}
	}
	return Command{}, Match{}, false
}

// MatchMacro returns the first macro, in registration order, that
// matches the tokens.
func (e *Expander) MatchMacro(tokens []string) (Macro, Match, bool) {
	for _, macro := range e.macros {
		if m, ok := ParseMacroInputTokens(macro, tokens); ok {
			return macro, m, true
		}
	}
	return Macro{}, Match{}, false
}

type frame struct {
	line   string
	depth  int
	parent string
}

// Expand resolves a line. Commands take precedence over macros. A macro
// match records a StepMacro and then resolves each substituted body line
// in order, one level deeper. Lines matching nothing become StepUnknown.
//
// Expansion is iterative. When it would go deeper than the maximum depth
// or process more lines than allowed, the steps resolved so far are
// returned together with ErrMaxDepth or ErrMaxSteps.
func (e *Expander) Expand(line string) ([]Step, error) {
	var steps []Step
	stack := []frame{{line: line}}
	processed := 0

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tokens := Tokenize(f.line)
		if len(tokens) == 0 {
			continue
		}

		processed++
		if processed > e.maxSteps {
			return steps, fmt.Errorf("%w (%d): %q", ErrMaxSteps, e.maxSteps, f.line)
		}

		if cmd, m, ok := e.MatchCommand(tokens); ok {
			steps = append(steps, Step{
				Kind:   StepCommand,
				Name:   cmd.Name,
				Args:   m.Args,
				Line:   f.line,
				Depth:  f.depth,
				Parent: f.parent,
			})
			continue
		}

		macro, m, ok := e.MatchMacro(tokens)
		if !ok {
			steps = append(steps, Step{
				Kind:   StepUnknown,
				Line:   f.line,
				Depth:  f.depth,
				Parent: f.parent,
			})
			continue
		}

		if f.depth+1 > e.maxDepth {
			return steps, fmt.Errorf("%w (%d): macro %q at %q", ErrMaxDepth, e.maxDepth, macro.Name, f.line)
		}
		steps = append(steps, Step{
			Kind:   StepMacro,
			Name:   macro.Name,
			Args:   m.Args,
			Line:   f.line,
			Depth:  f.depth,
			Parent: f.parent,
		})
		// push in reverse so the body runs in order
		for i := len(macro.Body) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				line:   ParseMacroSubCommand(macro.Body[i], m.Args),
				depth:  f.depth + 1,
				parent: macro.Name,
			})
		}
	}

	return steps, nil
}
