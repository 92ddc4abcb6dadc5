package pattern

import (
	"fmt"
	"strings"
)

// argSigil marks an argument slot in a pattern definition.
const argSigil = "$"

// Token is a single position of a compiled pattern.
// An argument token binds the input token at its position to the name
// Value; a literal token must equal Value exactly.
type Token struct {
	Value string
	IsArg bool
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.IsArg {
		return fmt.Sprintf("Arg(%q)", t.Value)
	}
	return fmt.Sprintf("Literal(%q)", t.Value)
}

// Pattern is an ordered, fixed-length sequence of tokens.
type Pattern []Token

// String renders the pattern back into definition syntax.
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, tok := range p {
		if tok.IsArg {
			parts[i] = argSigil + tok.Value
		} else {
			parts[i] = tok.Value
		}
	}
	return strings.Join(parts, " ")
}

// Args returns the argument names of the pattern in positional order.
func (p Pattern) Args() []string {
	var names []string
	for _, tok := range p {
		if tok.IsArg {
			names = append(names, tok.Value)
		}
	}
	return names
}

// LiteralPrefix returns the literal tokens preceding the first argument.
func (p Pattern) LiteralPrefix() []string {
	var prefix []string
	for _, tok := range p {
		if tok.IsArg {
			break
		}
		prefix = append(prefix, tok.Value)
	}
	return prefix
}

// ParseCommand compiles a pattern definition such as "greet $name".
//
// The definition is split on single spaces; it is not quote aware.
// Any token containing a '$' becomes an argument named after the token
// with every '$' removed, so "na$me" binds "name" just like "$name".
func ParseCommand(patternStr string) Pattern {
	fields := strings.Split(patternStr, " ")
	tokens := make(Pattern, 0, len(fields))
	for _, field := range fields {
		tokens = append(tokens, Token{
			Value: strings.ReplaceAll(field, argSigil, ""),
			IsArg: strings.Contains(field, argSigil),
		})
	}
	return tokens
}
