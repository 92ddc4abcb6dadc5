package pattern

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidDefinition    = errors.New("invalid definition")
	ErrDefinitionsNotFound  = errors.New("definitions file not found")
	ErrMalformedDefinitions = errors.New("malformed definitions")
)

type CommandDef struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Patterns    []string `yaml:"patterns" json:"patterns"`
}

type MacroDef struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Pattern     string   `yaml:"pattern" json:"pattern"`
	Body        []string `yaml:"body" json:"body"`
}

// Definitions is the on-disk form of a command and macro set.
type Definitions struct {
	Commands []CommandDef `yaml:"commands" json:"commands"`
	Macros   []MacroDef   `yaml:"macros,omitempty" json:"macros,omitempty"`
}

// LoadDefinitions reads a YAML (or JSON) definitions file. A missing
// file yields ErrDefinitionsNotFound; unreadable or undecodable content
// yields ErrMalformedDefinitions.
func LoadDefinitions(path string) (Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Definitions{}, fmt.Errorf("%w: %s: %w", ErrDefinitionsNotFound, path, err)
		}
		return Definitions{}, fmt.Errorf("%w: %s: %w", ErrMalformedDefinitions, path, err)
	}
	return ParseDefinitions(data)
}

// ParseDefinitions decodes definitions from YAML or JSON content.
func ParseDefinitions(data []byte) (Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return Definitions{}, fmt.Errorf("%w: %w", ErrMalformedDefinitions, err)
	}
	return defs, nil
}

// Compile validates the definitions and compiles every pattern.
// Registration order is preserved.
func (d Definitions) Compile() ([]Command, []Macro, error) {
	commands := make([]Command, 0, len(d.Commands))
	seen := make(map[string]bool)
	for i, def := range d.Commands {
		if def.Name == "" {
			return nil, nil, fmt.Errorf("%w: command #%d has no name", ErrInvalidDefinition, i)
		}
		if seen[def.Name] {
			return nil, nil, fmt.Errorf("%w: duplicate command %q", ErrInvalidDefinition, def.Name)
		}
		if len(def.Patterns) == 0 {
			return nil, nil, fmt.Errorf("%w: command %q has no patterns", ErrInvalidDefinition, def.Name)
		}
		seen[def.Name] = true
		commands = append(commands, CompileCommand(def.Name, def.Description, def.Patterns...))
	}

	macros := make([]Macro, 0, len(d.Macros))
	seen = make(map[string]bool)
	for i, def := range d.Macros {
		if def.Name == "" {
			return nil, nil, fmt.Errorf("%w: macro #%d has no name", ErrInvalidDefinition, i)
		}
		if seen[def.Name] {
			return nil, nil, fmt.Errorf("%w: duplicate macro %q", ErrInvalidDefinition, def.Name)
		}
		if def.Pattern == "" {
			return nil, nil, fmt.Errorf("%w: macro %q has no pattern", ErrInvalidDefinition, def.Name)
		}
		if len(def.Body) == 0 {
			return nil, nil, fmt.Errorf("%w: macro %q has an empty body", ErrInvalidDefinition, def.Name)
		}
		seen[def.Name] = true
		macros = append(macros, CompileMacro(def.Name, def.Description, def.Pattern, def.Body...))
	}

	return commands, macros, nil
}
