package pattern

// Command is a named set of alternative patterns.
// Patterns are tried in order and the first one that fits wins.
type Command struct {
	Name        string
	Description string
	Patterns    []Pattern
}

// Macro is a named single pattern with a body of line templates.
// Each body line may reference the pattern's arguments as $name.
type Macro struct {
	Name        string
	Description string
	Tokens      Pattern
	Body        []string
}

// Match holds the argument bindings produced by a successful match.
type Match struct {
	Args map[string]string
}

// CompileCommand compiles every pattern definition of a command.
func CompileCommand(name, description string, patterns ...string) Command {
	cmd := Command{
		Name:        name,
		Description: description,
		Patterns:    make([]Pattern, 0, len(patterns)),
	}
	for _, p := range patterns {
		cmd.Patterns = append(cmd.Patterns, ParseCommand(p))
	}
	return cmd
}

// CompileMacro compiles the pattern of a macro.
func CompileMacro(name, description, pattern string, body ...string) Macro {
	return Macro{
		Name:        name,
		Description: description,
		Tokens:      ParseCommand(pattern),
		Body:        body,
	}
}

// ParseInputTokens checks the input tokens against all patterns of the
// command, in order, and returns the bindings of the first pattern that
// matches. Later patterns are never considered once one matches.
//
// The scan is a plain ordered iteration; pattern lists are small and the
// order itself carries meaning, so no index is built.
func ParseInputTokens(cmd Command, inputTokens []string) (Match, bool) {
	for _, p := range cmd.Patterns {
		if m, ok := matchPattern(p, inputTokens); ok {
			return m, true
		}
	}
	return Match{}, false
}

// ParseMacroInputTokens checks the input tokens against the macro pattern.
func ParseMacroInputTokens(macro Macro, inputTokens []string) (Match, bool) {
	return matchPattern(macro.Tokens, inputTokens)
}

// matchPattern walks the pattern left to right. Argument positions bind
// the input token (last write wins on repeated names), literal positions
// must be equal to the input token.
func matchPattern(p Pattern, inputTokens []string) (Match, bool) {
	if len(p) != len(inputTokens) {
		return Match{}, false
	}

	args := make(map[string]string)
	for i, tok := range p {
		if tok.IsArg {
			args[tok.Value] = inputTokens[i]
			continue
		}
		if inputTokens[i] != tok.Value {
			return Match{}, false
		}
	}
	return Match{Args: args}, true
}
