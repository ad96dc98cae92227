package matchers

import (
	"fmt"
	"strings"

	"outcomematch/internal/compare"
	"outcomematch/internal/diff"
	"outcomematch/pkg/outcome"
)

// hint renders the first line of every explanation, e.g.
// expect(received).Not().ToEqualLeft(expectedLeft).
func (e *env) hint(name string, args []string, negated bool) string {
	p := e.palette
	not := ""
	if negated {
		not = ".Not()"
	}
	return p.Hint("expect(") + p.Received("received") + p.Hint(")"+not+"."+name+"(") +
		p.Expected(strings.Join(args, ", ")) + p.Hint(")")
}

// message joins the hint and the body with a blank line.
func (e *env) message(name string, args []string, negated bool, body string) func() string {
	return func() string {
		return e.hint(name, args, negated) + "\n\n" + body
	}
}

// matcherError reports a misused matcher. The hint is never negated since the
// Result fails either way.
func (e *env) matcherError(name string, args []string, kind error, detail string) Result {
	return Result{
		Message: e.message(name, args, false, "Matcher error: "+detail),
		Err:     fmt.Errorf("%w: %s", kind, detail),
	}
}

func (e *env) exp(v any) string { return e.palette.Expected(e.printer.Render(v)) }
func (e *env) rec(v any) string { return e.palette.Received(e.printer.Render(v)) }

// sameRendering reports whether a and b print identically; negated messages
// skip the received value when it would only repeat the expected one.
func (e *env) sameRendering(a, b any) bool {
	return e.printer.Render(a) == e.printer.Render(b)
}

// receivedValue shows an Either or These. With pad set, the value column
// lines up under a preceding "Expected ...: not " line.
func (e *env) receivedValue(o outcome.Value, pad bool) string {
	padding := ""
	if pad {
		padding = "    "
	}
	switch o.Tag() {
	case outcome.TagLeft:
		l, _ := o.LeftValue()
		return "Received Left: " + padding + e.rec(l)
	case outcome.TagRight:
		r, _ := o.RightValue()
		return "Received Right: " + padding + e.rec(r)
	case outcome.TagBoth:
		l, _ := o.LeftValue()
		r, _ := o.RightValue()
		return "Received Both:\n  Left: " + e.rec(l) + "\n  Right: " + e.rec(r)
	}
	return "Received: " + e.rec(o)
}

// receivedOption shows an Option.
func (e *env) receivedOption(o outcome.Value) string {
	if v, ok := o.SomeValue(); ok {
		return "Received a Some:\n  " + e.rec(v)
	}
	return "Received a None."
}

// describe explains a payload mismatch: the line diff when it shows
// something, otherwise both values on their own lines followed by any note
// the differ attached.
func (e *env) describe(res diff.Result, labels diff.Labels, expected, received any) string {
	if res.Informative() {
		return diff.Format(res, labels, e.palette)
	}
	el, rl := labels.Expected+": ", labels.Received+": "
	if len(el) < len(rl) {
		el += strings.Repeat(" ", len(rl)-len(el))
	} else {
		rl += strings.Repeat(" ", len(el)-len(rl))
	}
	out := el + e.exp(expected) + "\n" + rl + e.rec(received)
	switch {
	case res.Kind == diff.TypeMismatch || res.Kind == diff.LineDiff:
		out += "\n\n" + diff.Format(res, labels, e.palette)
	case res.Note != "":
		out += "\n\n" + res.Note
	}
	return out
}

// payloadDiff explains why a payload found under side ("Left", "Right",
// "Some") does not match expected.
func (e *env) payloadDiff(mode compare.Mode, side string, expected, payload any) string {
	res := e.differ.Diff(mode, expected, payload)
	labels := diff.Labels{Expected: "Expected " + side, Received: "Received " + side}
	return e.describe(res, labels, expected, payload)
}

// sideDiff explains one side of a Both.
func (e *env) sideDiff(mode compare.Mode, expected, payload any) string {
	res := e.differ.Diff(mode, expected, payload)
	return e.describe(res, diff.DefaultLabels(), expected, payload)
}
