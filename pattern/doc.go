// Package pattern implements the jarvis matching engine.
//
// Input lines are split into tokens with Tokenize, which keeps
// double-quoted runs together:
//
//	Tokenize(`hello "John Doe"`) // ["hello", "John Doe"]
//
// Command patterns are compiled with ParseCommand. Every space separated
// token that contains a '$' is an argument slot, everything else is a
// literal:
//
//	ParseCommand("greet $name") // [Literal("greet"), Arg("name")]
//
// A Command holds alternative patterns and ParseInputTokens returns the
// bindings of the first one that fits the input exactly (same length,
// same literals). A Macro holds a single pattern plus body lines;
// ParseMacroSubCommand writes the bound values back into a body line,
// quoted, so the line can be tokenized and matched again.
//
// Expander ties these together and expands macros that reference other
// macros with an explicit work stack bounded by a maximum depth.
//
// Everything in this package is free of I/O and shared state; compiled
// patterns are read only and every match returns a fresh map.
package pattern
