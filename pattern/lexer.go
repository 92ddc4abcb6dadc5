package pattern

import (
	"regexp"
	"strings"
)

// tokenRegex matches either a double-quoted run or a run of non-whitespace.
// The space class is JavaScript's \s; RE2's \S misses \v, U+FEFF and the
// Unicode separators.
var tokenRegex = regexp.MustCompile(`"([^"]+)"|[^\s\v\p{Z}\x{FEFF}]+`)

// Tokenize splits an input line into tokens.
// A double-quoted run becomes a single token even if it contains spaces,
// so `hello "John Doe"` yields ["hello", "John Doe"].
// Double quotes are removed from every token.
//
// A line without any token (empty, whitespace only) yields an empty slice.
func Tokenize(line string) []string {
	matches := tokenRegex.FindAllString(line, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, strings.ReplaceAll(m, `"`, ""))
	}
	return tokens
}
