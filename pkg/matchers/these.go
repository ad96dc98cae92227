package matchers

import (
	"strings"

	"outcomematch/internal/compare"
	"outcomematch/pkg/outcome"
)

const notThese = "Received value is not a These."

func toBeThese(e *env, received any, _ []any) Result {
	o := outcome.Classify(received)
	if o.Tag().IsThese() {
		return Result{Pass: true, Message: e.message("ToBeThese", nil, true, e.receivedValue(o, false))}
	}
	return Result{Message: e.message("ToBeThese", nil, false, "Received: "+e.rec(received))}
}

func toBeBoth(e *env, received any, _ []any) Result {
	return toBeTag(e, "ToBeBoth", outcome.TagBoth, received)
}

func equalBoth(mode compare.Mode) func(*env, any, []any) Result {
	return func(e *env, received any, args []any) Result {
		name := matcherName(mode, "Both")
		hintArgs := []string{"expectedLeft", "expectedRight"}
		wantL, wantR := args[0], args[1]
		header := "Expected Both:\n  Left: " + e.exp(wantL) + "\n  Right: " + e.exp(wantR)

		o := outcome.Classify(received)
		if !o.Tag().IsThese() {
			return Result{Message: e.message(name, hintArgs, false,
				notThese+"\n"+header+"\nReceived: "+e.rec(received))}
		}
		if o.Tag() != outcome.TagBoth {
			return Result{Message: e.message(name, hintArgs, false,
				header+"\n\n"+e.receivedValue(o, false))}
		}

		gotL, _ := o.LeftValue()
		gotR, _ := o.RightValue()
		leftOK := compare.Equal(mode, wantL, gotL)
		rightOK := compare.Equal(mode, wantR, gotR)

		if leftOK && rightOK {
			return Result{Pass: true, Message: func() string {
				body := "Expected Both: not\n  Left: " + e.exp(wantL) + "\n  Right: " + e.exp(wantR)
				if !e.sameRendering(outcome.Both(wantL, wantR), o) {
					body += "\n" + e.receivedValue(o, false)
				}
				return e.hint(name, hintArgs, true) + "\n\n" + body
			}}
		}
		return Result{Message: func() string {
			var sections []string
			if !leftOK {
				sections = append(sections, "Difference from Left:\n"+e.sideDiff(mode, wantL, gotL))
			}
			if !rightOK {
				sections = append(sections, "Difference from Right:\n"+e.sideDiff(mode, wantR, gotR))
			}
			return e.hint(name, hintArgs, false) + "\n\n" + header + "\n\n" + strings.Join(sections, "\n\n")
		}}
	}
}
