package argv

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/argvee/argv/pkg/textutil"
)

// defaultWidth is the wrap column used when no width is configured and the
// output is not a terminal.
const defaultWidth = 80

// helpTokens are the spellings recognized by [HelpRequested].
var helpTokens = []string{"-h", "--h", "-help", "--help"}

// flagNameColor renders flag names in usage listings. It degrades to plain
// text on non-terminals and under NO_COLOR via the fatih/color globals.
var flagNameColor = color.New(color.FgGreen, color.Bold)

// HelpRequested reports whether a conventional help token appears anywhere in
// the argument vector. It inspects only the vector, so callers can decide to
// print usage before constructing a registry or parsing anything.
func HelpRequested(argv []string) bool {
	return slices.ContainsFunc(argv, func(arg string) bool {
		return slices.Contains(helpTokens, arg)
	})
}

// HelpLines renders one line per registered flag, in registration order:
//
//	-count (number of items) [integer, default 0, required]
//	-name (user name) [string, default "anon"]
//	.+\.py (python script) [pattern, documentation only, matched by content]
//
// Named flags render as -name. Pattern flags render their rule's source text
// instead, annotated to make clear the name column is documentation and
// matching happens by content.
func (r *Registry) HelpLines() []string {
	lines := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		lines = append(lines, helpLine(e))
	}
	return lines
}

func helpLine(e *entry) string {
	var b strings.Builder
	b.WriteString(displayName(e))
	if e.description != "" {
		fmt.Fprintf(&b, " (%s)", e.description)
	}
	details := []string{e.kind.String()}
	if e.kind == KindPattern {
		details = append(details, "documentation only, matched by content")
	} else {
		details = append(details, "default "+e.defText)
		if e.required {
			details = append(details, "required")
		}
	}
	fmt.Fprintf(&b, " [%s]", strings.Join(details, ", "))
	return b.String()
}

// displayName is the left column of a usage row: the dash-prefixed name, or
// the rule source for pattern flags.
func displayName(e *entry) string {
	if e.kind == KindPattern {
		return e.pattern.String()
	}
	return "-" + e.name
}

// UsageOptions adjusts usage rendering. The zero value is usable.
type UsageOptions struct {
	// Description is printed above the flag listing when non-empty, wrapped
	// to the effective width.
	Description string
	// Width is the wrap column. Zero or negative means 80, or the terminal
	// width when rendering through [Registry.WriteUsage] to a terminal.
	Width int
}

// Usage renders the registered flags as an aligned, wrapped listing in
// registration order. Flag names are colorized through fatih/color, which
// no-ops when the process output is not a terminal.
func (r *Registry) Usage(opts *UsageOptions) string {
	if opts == nil {
		opts = &UsageOptions{}
	}
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	if opts.Description != "" {
		for _, line := range textutil.Wrap(opts.Description, width) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if len(r.entries) == 0 {
		return b.String()
	}
	b.WriteString("Flags:\n")

	maxNameLen := 0
	for _, e := range r.entries {
		if n := len(displayName(e)); n > maxNameLen {
			maxNameLen = n
		}
	}
	nameWidth := maxNameLen + 4
	wrapWidth := width - nameWidth - 2
	if wrapWidth < 16 {
		wrapWidth = 16
	}

	for _, e := range r.entries {
		name := displayName(e)
		lines := textutil.Wrap(usageText(e), wrapWidth)
		if len(lines) == 0 {
			fmt.Fprintf(&b, "  %s\n", flagNameColor.Sprint(name))
			continue
		}
		padding := strings.Repeat(" ", maxNameLen-len(name)+4)
		fmt.Fprintf(&b, "  %s%s%s\n", flagNameColor.Sprint(name), padding, lines[0])

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			fmt.Fprintf(&b, "%s%s\n", indentPadding, line)
		}
	}
	return b.String()
}

// usageText is the description column for one flag: the registered
// description plus a parenthesized details suffix. Empty string defaults and
// the boolean false default carry no information and are omitted.
func usageText(e *entry) string {
	var details []string
	if e.kind == KindPattern {
		details = append(details, "matched by content")
	} else {
		if e.defText != `""` && e.defText != "false" {
			details = append(details, "default "+e.defText)
		}
		if e.required {
			details = append(details, "required")
		}
	}
	if len(details) == 0 {
		return e.description
	}
	suffix := fmt.Sprintf("(%s)", strings.Join(details, ", "))
	if e.description == "" {
		return suffix
	}
	return e.description + " " + suffix
}

// WriteUsage writes the [Registry.Usage] listing to w. When opts carries no
// explicit width and w is a terminal, the terminal's current width is used in
// place of the default.
func (r *Registry) WriteUsage(w io.Writer, opts *UsageOptions) error {
	var resolved UsageOptions
	if opts != nil {
		resolved = *opts
	}
	if resolved.Width <= 0 {
		if f, ok := w.(*os.File); ok {
			if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
				resolved.Width = tw
			}
		}
	}
	_, err := io.WriteString(w, r.Usage(&resolved))
	return err
}
