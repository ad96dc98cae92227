// Package style colours explanation text.
//
// Expected material is green and received material is red, as in most test
// runners. A Plain palette returns text unchanged.
package style

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	ExpectedColor = lipgloss.Color("#22c55e") // Green
	ReceivedColor = lipgloss.Color("#ef4444") // Red
	HintColor     = lipgloss.Color("#6b7280") // Gray
	PassColor     = lipgloss.Color("#22c55e")
	FailColor     = lipgloss.Color("#ef4444")
)

// Palette renders the roles of an explanation.
type Palette struct {
	enabled  bool
	expected lipgloss.Style
	received lipgloss.Style
	hint     lipgloss.Style
	pass     lipgloss.Style
	fail     lipgloss.Style
}

// Plain returns a palette that leaves text unchanged.
func Plain() Palette {
	return Palette{}
}

// Colored returns a palette that always emits ANSI colour, independent of
// whether the output is a terminal.
func Colored() Palette {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return Palette{
		enabled:  true,
		expected: r.NewStyle().Foreground(ExpectedColor),
		received: r.NewStyle().Foreground(ReceivedColor),
		hint:     r.NewStyle().Foreground(HintColor),
		pass:     r.NewStyle().Foreground(PassColor).Bold(true),
		fail:     r.NewStyle().Foreground(FailColor).Bold(true),
	}
}

// New returns Colored when color is set and Plain otherwise.
func New(color bool) Palette {
	if color {
		return Colored()
	}
	return Plain()
}

// Enabled reports whether the palette emits escapes.
func (p Palette) Enabled() bool { return p.enabled }

func (p Palette) Expected(s string) string { return p.paint(p.expected, s) }
func (p Palette) Received(s string) string { return p.paint(p.received, s) }
func (p Palette) Hint(s string) string     { return p.paint(p.hint, s) }
func (p Palette) Pass(s string) string     { return p.paint(p.pass, s) }
func (p Palette) Fail(s string) string     { return p.paint(p.fail, s) }

// paint styles each line separately so lipgloss does not pad a multi-line
// block to a common width.
func (p Palette) paint(st lipgloss.Style, s string) string {
	if !p.enabled || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = st.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
