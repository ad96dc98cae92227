package matchers

import (
	"fmt"
	"regexp"
	"strings"

	"outcomematch/internal/compare"
	"outcomematch/pkg/outcome"
	"outcomematch/pkg/value"
)

const notEitherOrThese = "Received value is not an Either or These."

// matcherName returns the registered name of an equality matcher for mode,
// e.g. ToStrictEqualLeft for (Strict, "Left").
func matcherName(mode compare.Mode, side string) string {
	switch mode {
	case compare.Strict:
		return "ToStrictEqual" + side
	case compare.Subset:
		return "ToSubsetEqual" + side
	}
	return "ToEqual" + side
}

func toBeEither(e *env, received any, _ []any) Result {
	o := outcome.Classify(received)
	if o.Tag().IsEither() {
		return Result{Pass: true, Message: e.message("ToBeEither", nil, true, e.receivedValue(o, false))}
	}
	return Result{Message: e.message("ToBeEither", nil, false, "Received: "+e.rec(received))}
}

func toBeLeft(e *env, received any, _ []any) Result {
	return toBeTag(e, "ToBeLeft", outcome.TagLeft, received)
}

func toBeRight(e *env, received any, _ []any) Result {
	return toBeTag(e, "ToBeRight", outcome.TagRight, received)
}

// toBeTag checks the arm of an Either or These.
func toBeTag(e *env, name string, tag outcome.Tag, received any) Result {
	o := outcome.Classify(received)
	switch {
	case o.Tag() == tag:
		return Result{Pass: true, Message: e.message(name, nil, true, e.receivedValue(o, false))}
	case o.Tag().IsThese():
		return Result{Message: e.message(name, nil, false, e.receivedValue(o, false))}
	}
	notA := notEitherOrThese
	if tag == outcome.TagBoth {
		notA = notThese
	}
	return Result{Message: e.message(name, nil, false, notA+"\nReceived: "+e.rec(received))}
}

func equalLeft(mode compare.Mode) func(*env, any, []any) Result {
	return func(e *env, received any, args []any) Result {
		return equalSide(e, mode, outcome.TagLeft, received, args[0])
	}
}

func equalRight(mode compare.Mode) func(*env, any, []any) Result {
	return func(e *env, received any, args []any) Result {
		return equalSide(e, mode, outcome.TagRight, received, args[0])
	}
}

// equalSide compares the payload of a Left or Right. A Both never matches.
func equalSide(e *env, mode compare.Mode, tag outcome.Tag, received, expected any) Result {
	side := tag.String()
	name := matcherName(mode, side)
	args := []string{"expected" + side}
	o := outcome.Classify(received)

	if !o.Tag().IsThese() {
		return Result{Message: e.message(name, args, false,
			notEitherOrThese+"\nExpected "+side+": "+e.exp(expected)+"\nReceived: "+e.rec(received))}
	}
	if o.Tag() != tag {
		return Result{Message: e.message(name, args, false,
			"Expected "+side+": "+e.exp(expected)+"\n"+e.receivedValue(o, false))}
	}

	payload := sidePayload(o, tag)
	if compare.Equal(mode, expected, payload) {
		return Result{Pass: true, Message: func() string {
			body := "Expected " + side + ": not " + e.exp(expected)
			if !e.sameRendering(rebuild(tag, expected), o) {
				body += "\n" + e.receivedValue(o, true)
			}
			return e.hint(name, args, true) + "\n\n" + body
		}}
	}
	return Result{Message: func() string {
		return e.hint(name, args, false) + "\n\n" + e.payloadDiff(mode, side, expected, payload)
	}}
}

func sidePayload(o outcome.Value, tag outcome.Tag) any {
	if tag == outcome.TagLeft {
		v, _ := o.LeftValue()
		return v
	}
	v, _ := o.RightValue()
	return v
}

func rebuild(tag outcome.Tag, v any) outcome.Value {
	if tag == outcome.TagLeft {
		return outcome.Left(v)
	}
	return outcome.Right(v)
}

// pattern is a message expectation: a substring or a regular expression.
type pattern struct {
	text string
	re   *regexp.Regexp
}

func newPattern(arg any) (pattern, error) {
	switch p := arg.(type) {
	case string:
		return pattern{text: p}, nil
	case *regexp.Regexp:
		if p != nil {
			return pattern{re: p}, nil
		}
	}
	return pattern{}, fmt.Errorf("expected a string or *regexp.Regexp, got %T", arg)
}

func (p pattern) match(s string) bool {
	if p.re != nil {
		return p.re.MatchString(s)
	}
	return strings.Contains(s, p.text)
}

func (p pattern) value() any {
	if p.re != nil {
		return p.re
	}
	return p.text
}

func toBeLeftErrorMatching(e *env, received any, args []any) Result {
	const name = "ToBeLeftErrorMatching"
	hintArgs := []string{"expectedErrorMessage"}

	p, err := newPattern(args[0])
	if err != nil {
		return e.matcherError(name, hintArgs, ErrInvalidArgument, err.Error())
	}
	want := "Expected Left Error: " + e.exp(p.value())

	o := outcome.Classify(received)
	if !o.Tag().IsThese() {
		return Result{Message: e.message(name, hintArgs, false,
			notEitherOrThese+"\n"+want+"\nReceived: "+e.rec(received))}
	}
	if o.Tag() != outcome.TagLeft {
		return Result{Message: e.message(name, hintArgs, false,
			"Received value is not a Left.\n"+want+"\n"+e.receivedValue(o, false))}
	}
	left, _ := o.LeftValue()
	if value.KindOf(left) != value.KindError {
		return Result{Message: e.message(name, hintArgs, false,
			"Received Left value is not an Error.\n"+want+"\n"+e.receivedValue(o, false))}
	}

	msg := value.Resolve(left).(error).Error()
	if !p.match(msg) {
		return Result{Message: e.message(name, hintArgs, false,
			want+"\nReceived Left Error: "+e.rec(msg))}
	}
	return Result{Pass: true, Message: func() string {
		body := "Expected Left Error: not " + e.exp(p.value())
		same := p.re == nil && compare.Equal(compare.Loose, outcome.Left(value.NewError(p.text)), o)
		if !same {
			body += "\nReceived Left Error:     " + e.rec(msg)
		}
		return e.hint(name, hintArgs, true) + "\n\n" + body
	}}
}
