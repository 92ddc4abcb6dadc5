package formatter

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/gnoswap-labs/jarvis/pattern"
)

const indentWidth = 2

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	commandStyle = color.New(color.FgGreen, color.Bold)
	macroStyle   = color.New(color.FgCyan, color.Bold)
	nameStyle    = color.New(color.FgYellow, color.Bold)
	argStyle     = color.New(color.FgHiBlue)
	lineStyle    = color.New(color.FgWhite)
)

// SetColor enables or disables colored output globally.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

const stepTemplate = `{{indent .Depth}}{{kind .Kind}} {{if .Name}}{{name .Name}}{{args .Args}}{{else}}{{line .Line}}{{end}}
`

var stepTmpl = template.Must(template.New("step").Funcs(template.FuncMap{
	"indent": indent,
	"kind":   kind,
	"name":   name,
	"args":   args,
	"line":   line,
}).Parse(stepTemplate))

// FormatSteps renders resolved steps, one per line, indented by macro depth.
//
//	macro welcome who="Ada"
//	  command greet name="Ada"
//	  command door
//	unknown "dance"
func FormatSteps(steps []pattern.Step) string {
	var buf bytes.Buffer
	for _, step := range steps {
		if err := stepTmpl.Execute(&buf, step); err != nil {
			return fmt.Sprintf("Error formatting step: %v", err)
		}
	}
	return buf.String()
}

// FormatError renders a failed resolution of line.
func FormatError(input string, err error) string {
	return errorStyle.Sprint("error: ") + lineStyle.Sprintf("%q", input) + "\n" +
		strings.Repeat(" ", indentWidth) + errorStyle.Sprintf("= %v", err) + "\n"
}

// FormatUnknown renders the warning for an unrecognized top-level line.
func FormatUnknown(input string) string {
	return warningStyle.Sprint("warning: ") + "unrecognized command " + lineStyle.Sprintf("%q", input) + "\n"
}

// utils functions used in the text template

func indent(depth int) string {
	return strings.Repeat(" ", depth*indentWidth)
}

func kind(k pattern.StepKind) string {
	switch k {
	case pattern.StepCommand:
		return commandStyle.Sprint("command")
	case pattern.StepMacro:
		return macroStyle.Sprint("macro")
	default:
		return warningStyle.Sprint("unknown")
	}
}

func name(n string) string {
	return nameStyle.Sprint(n)
}

func args(bound map[string]string) string {
	if len(bound) == 0 {
		return ""
	}
	keys := make([]string, 0, len(bound))
	for k := range bound {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(argStyle.Sprintf("%s=%q", k, bound[k]))
	}
	return sb.String()
}

func line(l string) string {
	return lineStyle.Sprintf("%q", l)
}
