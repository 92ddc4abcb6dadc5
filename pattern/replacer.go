package pattern

import "strings"

// ParseMacroSubCommand substitutes bound argument values into a macro
// body line. Every $name placeholder whose value is bound is replaced by
// the value wrapped in double quotes, so that multi-word values survive
// a later Tokenize as a single token.
//
// Placeholders are found with the ParseCommand split, not Tokenize.
// A name that is not bound, or bound to a falsy value ("" or "0"), is
// left untouched together with its '$'. A line without placeholders is
// returned unchanged.
func ParseMacroSubCommand(line string, args map[string]string) string {
	parsed := line
	for _, tok := range ParseCommand(line) {
		if !tok.IsArg {
			continue
		}
		value, ok := args[tok.Value]
		if !ok || !truthy(value) {
			continue
		}
		parsed = strings.Replace(parsed, argSigil+tok.Value, `"`+value+`"`, 1)
	}
	return parsed
}

// truthy reports whether a bound value counts as present for substitution.
func truthy(value string) bool {
	return value != "" && value != "0"
}
