package matchers

import (
	"outcomematch/internal/compare"
	"outcomematch/pkg/outcome"
	"outcomematch/pkg/value"
)

// Reporter is an error list that can describe itself one line per problem,
// such as the decode package's validation errors.
type Reporter interface {
	Report() []string
}

// reportLines reads the payload of a failed Validation. Accepted shapes are a
// Reporter, a slice of strings, a slice of errors, or an array whose elements
// are all strings or errors.
func reportLines(v any) ([]string, bool) {
	switch l := v.(type) {
	case Reporter:
		return l.Report(), true
	case []string:
		return l, true
	case []error:
		out := make([]string, len(l))
		for i, err := range l {
			out[i] = err.Error()
		}
		return out, true
	}

	elems, ok := value.ViewArray(value.Resolve(v))
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(elems))
	for _, el := range elems {
		switch x := value.Resolve(el).(type) {
		case string:
			out = append(out, x)
		case error:
			out = append(out, x.Error())
		default:
			return nil, false
		}
	}
	return out, true
}

func toBeLeftWithErrorsMatching(e *env, received any, args []any) Result {
	const name = "ToBeLeftWithErrorsMatching"
	hintArgs := []string{"expectedErrorsMatching"}

	raw, ok := value.ViewArray(value.Resolve(args[0]))
	if !ok {
		return e.matcherError(name, hintArgs, ErrInvalidArgument,
			"expected an array of patterns, got "+e.printer.Render(args[0]))
	}
	patterns := make([]pattern, len(raw))
	for i, a := range raw {
		p, err := newPattern(value.Resolve(a))
		if err != nil {
			return e.matcherError(name, hintArgs, ErrInvalidArgument, err.Error())
		}
		patterns[i] = p
	}
	want := "Expected Errors: " + e.exp(args[0])

	o := outcome.Classify(received)
	var lines []string
	switch o.Tag() {
	case outcome.TagRight:
		return Result{Message: e.message(name, hintArgs, false, want+"\n"+e.receivedValue(o, false))}
	case outcome.TagLeft:
		left, _ := o.LeftValue()
		lines, ok = reportLines(left)
	default:
		ok = false
	}
	if !ok {
		return Result{Message: e.message(name, hintArgs, false,
			"Received value is not a Validation.\n"+want+"\nReceived: "+e.rec(received))}
	}

	if !allMatched(patterns, lines) {
		return Result{Message: e.message(name, hintArgs, false, want+"\nReceived Errors: "+e.rec(lines))}
	}
	return Result{Pass: true, Message: func() string {
		body := "Expected Errors: not " + e.exp(args[0])
		if !compare.Equal(compare.Loose, outcome.Left(args[0]), o) {
			body += "\nReceived Errors:     " + e.rec(lines)
		}
		return e.hint(name, hintArgs, true) + "\n\n" + body
	}}
}

// allMatched reports whether every pattern matches at least one line.
func allMatched(patterns []pattern, lines []string) bool {
	for _, p := range patterns {
		found := false
		for _, l := range lines {
			if p.match(l) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
