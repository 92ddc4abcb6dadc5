// Package registry holds a compiled, read-only snapshot of jarvis
// commands and macros and resolves input lines against it.
//
// A Registry is built once from definitions and passed explicitly to
// whatever needs it; there is no package level registry. Reloading the
// definitions file produces a new Registry (see Watcher).
package registry

import (
	"fmt"
	"path/filepath"

	"github.com/gnoswap-labs/jarvis/internal/script"
	"github.com/gnoswap-labs/jarvis/internal/trie"
	"github.com/gnoswap-labs/jarvis/pattern"
)

// Registry resolves lines against a fixed set of commands and macros.
type Registry struct {
	source    string
	commands  []pattern.Command
	macros    []pattern.Macro
	expander  *pattern.Expander
	completer *trie.Completer
}

type options struct {
	maxDepth int
	maxSteps int
	source   string
}

// Option configures a Registry.
type Option func(*options)

// WithMaxDepth limits macro nesting during Resolve.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithMaxSteps limits the number of lines a single Resolve may process.
func WithMaxSteps(steps int) Option {
	return func(o *options) { o.maxSteps = steps }
}

// New compiles the definitions into a Registry.
func New(defs pattern.Definitions, opts ...Option) (*Registry, error) {
	o := options{
		maxDepth: pattern.DefaultMaxDepth,
		maxSteps: pattern.DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(&o)
	}

	commands, macros, err := defs.Compile()
	if err != nil {
		return nil, err
	}

	var prefixes [][]string
	for _, cmd := range commands {
		for _, p := range cmd.Patterns {
			prefixes = append(prefixes, p.LiteralPrefix())
		}
	}
	for _, macro := range macros {
		prefixes = append(prefixes, macro.Tokens.LiteralPrefix())
	}

	return &Registry{
		source:   o.source,
		commands: commands,
		macros:   macros,
		expander: pattern.NewExpander(commands, macros,
			pattern.WithMaxDepth(o.maxDepth),
			pattern.WithMaxSteps(o.maxSteps),
		),
		completer: trie.NewCompleter(prefixes...),
	}, nil
}

// Load reads a definitions file and compiles it into a Registry.
// Files ending in .json are decoded as JSON, anything else as YAML.
func Load(path string, opts ...Option) (*Registry, error) {
	defs, err := loadDefinitions(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load definitions %s: %w", path, err)
	}
	opts = append(opts, func(o *options) { o.source = path })
	reg, err := New(defs, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile definitions %s: %w", path, err)
	}
	return reg, nil
}

func loadDefinitions(path string) (pattern.Definitions, error) {
	if filepath.Ext(path) != ".json" {
		return pattern.LoadDefinitions(path)
	}

	var defs pattern.Definitions
	if err := script.ImportJSON(path, &defs); err != nil {
		return pattern.Definitions{}, err
	}
	return defs, nil
}

// Source returns the file the registry was loaded from, if any.
func (r *Registry) Source() string {
	return r.source
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []pattern.Command {
	return append([]pattern.Command(nil), r.commands...)
}

// Macros returns the registered macros in registration order.
func (r *Registry) Macros() []pattern.Macro {
	return append([]pattern.Macro(nil), r.macros...)
}

// Command looks up a command by name.
func (r *Registry) Command(name string) (pattern.Command, bool) {
	for _, cmd := range r.commands {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return pattern.Command{}, false
}

// Macro looks up a macro by name.
func (r *Registry) Macro(name string) (pattern.Macro, bool) {
	for _, macro := range r.macros {
		if macro.Name == name {
			return macro, true
		}
	}
	return pattern.Macro{}, false
}

// Resolve tokenizes the line and expands it into steps.
func (r *Registry) Resolve(line string) ([]pattern.Step, error) {
	return r.expander.Expand(line)
}

// Complete returns full-line completion candidates for a partial line.
func (r *Registry) Complete(line string) []string {
	return r.completer.Complete(line)
}
