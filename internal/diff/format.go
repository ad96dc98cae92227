package diff

import (
	"fmt"
	"strconv"
	"strings"

	"outcomematch/internal/style"
)

// Labels name the two sides of a formatted diff.
type Labels struct {
	Expected string
	Received string
}

// DefaultLabels returns "Expected" / "Received".
func DefaultLabels() Labels {
	return Labels{Expected: "Expected", Received: "Received"}
}

// Format renders res as text. NoDifference renders as "".
func Format(res Result, labels Labels, p style.Palette) string {
	if labels.Expected == "" || labels.Received == "" {
		labels = DefaultLabels()
	}

	switch res.Kind {
	case TypeMismatch:
		return fmt.Sprintf("Comparing two different types of values. Expected %s but received %s.",
			p.Expected(res.ExpectedKind.String()), p.Received(res.ReceivedKind.String()))

	case SimpleMismatch:
		e, r := padLabels(labels.Expected+":", labels.Received+":")
		out := e + " " + p.Expected(res.Expected) + "\n" + r + " " + p.Received(res.Received)
		if res.Note != "" {
			out += "\n\n" + res.Note
		}
		return out

	case LineDiff:
		if res.Note != "" {
			return res.Note
		}
		return formatLines(res.Lines, labels, p)
	}
	return ""
}

func formatLines(lines []Line, labels Labels, p style.Palette) string {
	removed, added := Count(lines)
	e, r := padLabels(labels.Expected, labels.Received)

	var b strings.Builder
	b.WriteString(p.Expected("- " + e + "  - " + strconv.Itoa(removed)))
	b.WriteString("\n")
	b.WriteString(p.Received("+ " + r + "  + " + strconv.Itoa(added)))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString("\n")
		switch l.Type {
		case LineRemoved:
			b.WriteString(p.Expected("- " + l.Content))
		case LineAdded:
			b.WriteString(p.Received("+ " + l.Content))
		default:
			b.WriteString("  " + l.Content)
		}
	}
	return b.String()
}

// padLabels right-pads the shorter label so values line up.
func padLabels(a, b string) (string, string) {
	switch {
	case len(a) < len(b):
		a += strings.Repeat(" ", len(b)-len(a))
	case len(b) < len(a):
		b += strings.Repeat(" ", len(a)-len(b))
	}
	return a, b
}
