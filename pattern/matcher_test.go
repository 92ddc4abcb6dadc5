package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputTokens(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		command   Command
		input     []string
		wantMatch bool
		wantArgs  map[string]string
	}{
		{
			name:      "single argument",
			command:   CompileCommand("greet", "", "greet $name"),
			input:     []string{"greet", "Bob"},
			wantMatch: true,
			wantArgs:  map[string]string{"name": "Bob"},
		},
		{
			name:      "first of two fitting patterns wins",
			command:   CompileCommand("say", "", "say $first", "say $second"),
			input:     []string{"say", "hi"},
			wantMatch: true,
			wantArgs:  map[string]string{"first": "hi"},
		},
		{
			name:      "literal mismatch falls through to next pattern",
			command:   CompileCommand("go", "", "go north", "go $dir"),
			input:     []string{"go", "south"},
			wantMatch: true,
			wantArgs:  map[string]string{"dir": "south"},
		},
		{
			name:      "literal pattern preferred by order",
			command:   CompileCommand("go", "", "go north", "go $dir"),
			input:     []string{"go", "north"},
			wantMatch: true,
			wantArgs:  map[string]string{},
		},
		{
			name:      "length mismatch is never selected",
			command:   CompileCommand("add", "", "add $a $b", "add $a $b $c"),
			input:     []string{"add", "1"},
			wantMatch: false,
		},
		{
			name:      "every same length pattern mismatches",
			command:   CompileCommand("door", "", "open door", "close door"),
			input:     []string{"lock", "door"},
			wantMatch: false,
		},
		{
			name:      "repeated argument name keeps the last value",
			command:   CompileCommand("pair", "", "pair $x $x"),
			input:     []string{"pair", "1", "2"},
			wantMatch: true,
			wantArgs:  map[string]string{"x": "2"},
		},
		{
			name:      "empty input never matches compiled empty definition",
			command:   CompileCommand("blank", "", ""),
			input:     []string{},
			wantMatch: false,
		},
		{
			name:      "no patterns",
			command:   Command{Name: "none"},
			input:     []string{"x"},
			wantMatch: false,
		},
		{
			name:      "literal comparison is case sensitive",
			command:   CompileCommand("door", "", "open door"),
			input:     []string{"Open", "door"},
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, ok := ParseInputTokens(tt.command, tt.input)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantArgs, m.Args)
			} else {
				assert.Nil(t, m.Args)
			}
		})
	}
}

func TestParseInputTokensLiteralRoundTrip(t *testing.T) {
	t.Parallel()
	definitions := []string{
		"open the door",
		"status",
		"turn lights off",
	}

	for _, def := range definitions {
		cmd := CompileCommand("literal", "", def)
		m, ok := ParseInputTokens(cmd, Tokenize(def))
		require.True(t, ok, "definition %q", def)
		assert.Empty(t, m.Args)
		assert.NotNil(t, m.Args)
	}
}

func TestParseInputTokensFreshBindings(t *testing.T) {
	t.Parallel()
	cmd := CompileCommand("greet", "", "greet $name")

	first, ok := ParseInputTokens(cmd, []string{"greet", "Ann"})
	require.True(t, ok)
	first.Args["name"] = "changed"

	second, ok := ParseInputTokens(cmd, []string{"greet", "Bob"})
	require.True(t, ok)
	assert.Equal(t, "Bob", second.Args["name"])
	assert.Equal(t, ParseCommand("greet $name"), cmd.Patterns[0])
}

func TestParseMacroInputTokens(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		macro     Macro
		input     []string
		wantMatch bool
		wantArgs  map[string]string
	}{
		{
			name:      "binds arguments",
			macro:     CompileMacro("move", "", "move $item to $place", "take $item", "drop $item at $place"),
			input:     []string{"move", "box", "to", "attic"},
			wantMatch: true,
			wantArgs:  map[string]string{"item": "box", "place": "attic"},
		},
		{
			name:      "literal mismatch",
			macro:     CompileMacro("move", "", "move $item to $place", "take $item"),
			input:     []string{"move", "box", "into", "attic"},
			wantMatch: false,
		},
		{
			name:      "length mismatch",
			macro:     CompileMacro("move", "", "move $item to $place", "take $item"),
			input:     []string{"move", "box"},
			wantMatch: false,
		},
		{
			name:      "literal only macro",
			macro:     CompileMacro("morning", "", "good morning", "lights on"),
			input:     []string{"good", "morning"},
			wantMatch: true,
			wantArgs:  map[string]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, ok := ParseMacroInputTokens(tt.macro, tt.input)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantArgs, m.Args)
			}
		})
	}
}
