// Package diff explains why two values are not equivalent.
//
// Diff never decides equivalence itself: it asks internal/compare first and
// only describes the difference when there is one. Composite values are
// rendered one property per line and diffed with sergi/go-diff.
package diff

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"outcomematch/internal/compare"
	"outcomematch/internal/logging"
	"outcomematch/internal/printer"
	"outcomematch/pkg/value"
)

// Kind is the shape of a Result.
type Kind int

const (
	NoDifference   Kind = iota // values are equivalent
	LineDiff                   // line-by-line rendering of both sides
	SimpleMismatch             // both sides rendered on one line each
	TypeMismatch               // fundamentally different kinds
)

func (k Kind) String() string {
	switch k {
	case NoDifference:
		return "no difference"
	case LineDiff:
		return "line diff"
	case SimpleMismatch:
		return "simple mismatch"
	case TypeMismatch:
		return "type mismatch"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// NoVisualDifference is the note carried by a LineDiff or SimpleMismatch
// whose two renderings are identical.
const NoVisualDifference = "Compared values have no visual difference."

// Result describes how expected and received differ.
type Result struct {
	Kind Kind

	// LineDiff
	Lines []Line
	Note  string

	// SimpleMismatch
	Expected string
	Received string

	// TypeMismatch
	ExpectedKind value.Kind
	ReceivedKind value.Kind
}

// Changes returns the number of removed and added lines of a LineDiff.
func (r Result) Changes() (removed, added int) {
	return Count(r.Lines)
}

// Informative reports whether the result is worth showing as a diff section:
// a LineDiff with visible changes.
func (r Result) Informative() bool {
	return r.Kind == LineDiff && r.Note == ""
}

// Differ builds Results with a fixed printer.
type Differ struct {
	printer *printer.Printer
	engine  *Engine
}

// New creates a Differ. A nil printer means the default options.
func New(p *printer.Printer) *Differ {
	if p == nil {
		p = printer.New(printer.DefaultOptions())
	}
	return &Differ{printer: p, engine: DefaultEngine}
}

var defaultDiffer = New(nil)

// Diff describes the difference between expected and received under mode
// with the default printer.
func Diff(mode compare.Mode, expected, received any) Result {
	return defaultDiffer.Diff(mode, expected, received)
}

// Diff describes the difference between expected and received under mode.
func (d *Differ) Diff(mode compare.Mode, expected, received any) Result {
	res := d.diff(mode, expected, received)
	logging.Diff().Debug("diff computed",
		zap.Stringer("mode", mode),
		zap.Stringer("kind", res.Kind),
		zap.Int("lines", len(res.Lines)))
	return res
}

func (d *Differ) diff(mode compare.Mode, expected, received any) Result {
	if compare.Equal(mode, expected, received) {
		return Result{Kind: NoDifference}
	}

	e, r := value.Resolve(expected), value.Resolve(received)
	ek, rk := value.KindOf(e), value.KindOf(r)

	switch {
	case ek == value.KindMatcher || rk == value.KindMatcher:
		return d.simple(e, r)
	case ek != rk:
		return Result{Kind: TypeMismatch, ExpectedKind: ek, ReceivedKind: rk}
	case ek.IsComposite():
		ae, ar := align(e, r, mode == compare.Subset)
		return d.lines(d.printer.RenderIndented(ae), d.printer.RenderIndented(ar))
	case ek == value.KindString:
		es, rs := reflect.ValueOf(e).String(), reflect.ValueOf(r).String()
		if strings.Contains(es, "\n") || strings.Contains(rs, "\n") {
			return d.lines(es, rs)
		}
	}
	return d.simple(e, r)
}

func (d *Differ) simple(expected, received any) Result {
	res := Result{
		Kind:     SimpleMismatch,
		Expected: d.printer.Render(expected),
		Received: d.printer.Render(received),
	}
	if res.Expected == res.Received {
		res.Note = NoVisualDifference
	}
	return res
}

func (d *Differ) lines(expected, received string) Result {
	res := Result{Kind: LineDiff, Lines: d.engine.Lines(expected, received)}
	if removed, added := res.Changes(); removed == 0 && added == 0 {
		res.Note = NoVisualDifference
	}
	return res
}
