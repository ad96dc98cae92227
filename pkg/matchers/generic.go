package matchers

import (
	"outcomematch/internal/compare"
	"outcomematch/internal/diff"
)

// equalValue compares any two values, so the same comparison and diff rules
// are available outside of outcomes.
func equalValue(mode compare.Mode) func(*env, any, []any) Result {
	return func(e *env, received any, args []any) Result {
		name := matcherName(mode, "")
		hintArgs := []string{"expected"}
		expected := args[0]

		if compare.Equal(mode, expected, received) {
			return Result{Pass: true, Message: func() string {
				body := "Expected: not " + e.exp(expected)
				if !e.sameRendering(expected, received) {
					body += "\nReceived:     " + e.rec(received)
				}
				return e.hint(name, hintArgs, true) + "\n\n" + body
			}}
		}
		return Result{Message: func() string {
			res := e.differ.Diff(mode, expected, received)
			return e.hint(name, hintArgs, false) + "\n\n" + e.describe(res, diff.DefaultLabels(), expected, received)
		}}
	}
}
