package matchers

import (
	"outcomematch/internal/compare"
	"outcomematch/pkg/outcome"
)

const notOption = "Received value is not an Option."

func toBeOption(e *env, received any, _ []any) Result {
	o := outcome.Classify(received)
	if o.Tag().IsOption() {
		return Result{Pass: true, Message: e.message("ToBeOption", nil, true, e.receivedOption(o))}
	}
	return Result{Message: e.message("ToBeOption", nil, false, "Received: "+e.rec(received))}
}

func toBeSome(e *env, received any, _ []any) Result {
	return toBeOptionTag(e, "ToBeSome", outcome.TagSome, received)
}

func toBeNone(e *env, received any, _ []any) Result {
	return toBeOptionTag(e, "ToBeNone", outcome.TagNone, received)
}

func toBeOptionTag(e *env, name string, tag outcome.Tag, received any) Result {
	o := outcome.Classify(received)
	switch {
	case o.Tag() == tag:
		return Result{Pass: true, Message: e.message(name, nil, true, e.receivedOption(o))}
	case o.Tag().IsOption():
		return Result{Message: e.message(name, nil, false, e.receivedOption(o))}
	}
	return Result{Message: e.message(name, nil, false, notOption+"\nReceived: "+e.rec(received))}
}

func equalSome(mode compare.Mode) func(*env, any, []any) Result {
	return func(e *env, received any, args []any) Result {
		name := matcherName(mode, "Some")
		hintArgs := []string{"expectedSome"}
		expected := args[0]

		o := outcome.Classify(received)
		if !o.Tag().IsOption() {
			return Result{Message: e.message(name, hintArgs, false,
				notOption+"\nExpected Some: "+e.exp(expected)+"\nReceived: "+e.rec(received))}
		}
		got, ok := o.SomeValue()
		if !ok {
			return Result{Message: e.message(name, hintArgs, false,
				"Expected Some: "+e.exp(expected)+"\nReceived None")}
		}
		if compare.Equal(mode, expected, got) {
			return Result{Pass: true, Message: func() string {
				body := "Expected Some: not " + e.exp(expected)
				if !e.sameRendering(expected, got) {
					body += "\nReceived Some:     " + e.rec(got)
				}
				return e.hint(name, hintArgs, true) + "\n\n" + body
			}}
		}
		return Result{Message: func() string {
			return e.hint(name, hintArgs, false) + "\n\n" + e.payloadDiff(mode, "Some", expected, got)
		}}
	}
}
