package formatter

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gnoswap-labs/jarvis/pattern"
)

// RenderDefinitions writes a table with one row per command pattern and
// one row per macro.
func RenderDefinitions(w io.Writer, commands []pattern.Command, macros []pattern.Macro) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Kind", "Name", "Pattern", "Expands To", "Description"})
	for _, cmd := range commands {
		for _, p := range cmd.Patterns {
			t.AppendRow(table.Row{"command", cmd.Name, p.String(), "", cmd.Description})
		}
	}
	for _, macro := range macros {
		t.AppendRow(table.Row{"macro", macro.Name, macro.Tokens.String(), strings.Join(macro.Body, "; "), macro.Description})
	}

	t.Render()
}
