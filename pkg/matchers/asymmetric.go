package matchers

import (
	"fmt"
	"strings"

	"outcomematch/internal/printer"
	"outcomematch/pkg/value"
)

// Asymmetric is a matcher used as a placeholder inside an expected value:
//
//	expect.That(t, got).ToEqual(map[string]any{
//		"result": matchers.EqualLeft("boom"),
//	})
//
// It satisfies value.AsymmetricMatcher, so every comparison mode and the
// printer treat it as opaque.
type Asymmetric struct {
	def     Definition
	args    []any
	inverse bool
}

var _ value.AsymmetricMatcher = Asymmetric{}

// Expect builds the asymmetric form of the named matcher.
func Expect(name string, args ...any) (Asymmetric, error) {
	d, ok := Lookup(name)
	if !ok {
		return Asymmetric{}, fmt.Errorf("%w: %s", ErrUnknownMatcher, name)
	}
	if len(args) != len(d.Args) {
		return Asymmetric{}, fmt.Errorf("%w: %s expects %s, got %d", ErrArity, d.Name, plural(len(d.Args), "argument"), len(args))
	}
	return Asymmetric{def: d, args: args}, nil
}

func mustExpect(name string, args ...any) Asymmetric {
	a, err := Expect(name, args...)
	if err != nil {
		panic(err)
	}
	return a
}

// AsymmetricMatch runs the matcher against received. A misused matcher never
// matches, inverted or not.
func (a Asymmetric) AsymmetricMatch(received any) bool {
	res := a.def.Func()(received, a.args...)
	if res.Err != nil {
		return false
	}
	return res.Pass != a.inverse
}

// Not returns the inverted matcher.
func (a Asymmetric) Not() Asymmetric {
	a.inverse = !a.inverse
	return a
}

// Name returns the underlying matcher name.
func (a Asymmetric) Name() string { return a.def.Name }

func (a Asymmetric) String() string {
	name := a.def.Name
	if a.inverse {
		name = "not." + name
	}
	if len(a.args) == 0 {
		return name
	}
	parts := make([]string, len(a.args))
	for i, arg := range a.args {
		parts[i] = printer.Render(arg)
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}

func EqualLeft(v any) Asymmetric        { return mustExpect("ToEqualLeft", v) }
func StrictEqualLeft(v any) Asymmetric  { return mustExpect("ToStrictEqualLeft", v) }
func SubsetEqualLeft(v any) Asymmetric  { return mustExpect("ToSubsetEqualLeft", v) }
func EqualRight(v any) Asymmetric       { return mustExpect("ToEqualRight", v) }
func StrictEqualRight(v any) Asymmetric { return mustExpect("ToStrictEqualRight", v) }
func SubsetEqualRight(v any) Asymmetric { return mustExpect("ToSubsetEqualRight", v) }

func EqualBoth(l, r any) Asymmetric       { return mustExpect("ToEqualBoth", l, r) }
func StrictEqualBoth(l, r any) Asymmetric { return mustExpect("ToStrictEqualBoth", l, r) }
func SubsetEqualBoth(l, r any) Asymmetric { return mustExpect("ToSubsetEqualBoth", l, r) }

func EqualSome(v any) Asymmetric       { return mustExpect("ToEqualSome", v) }
func StrictEqualSome(v any) Asymmetric { return mustExpect("ToStrictEqualSome", v) }
func SubsetEqualSome(v any) Asymmetric { return mustExpect("ToSubsetEqualSome", v) }

func BeEither() Asymmetric { return mustExpect("ToBeEither") }
func BeThese() Asymmetric  { return mustExpect("ToBeThese") }
func BeOption() Asymmetric { return mustExpect("ToBeOption") }
func BeLeft() Asymmetric   { return mustExpect("ToBeLeft") }
func BeRight() Asymmetric  { return mustExpect("ToBeRight") }
func BeBoth() Asymmetric   { return mustExpect("ToBeBoth") }
func BeSome() Asymmetric   { return mustExpect("ToBeSome") }
func BeNone() Asymmetric   { return mustExpect("ToBeNone") }

// BeLeftErrorMatching takes a string or *regexp.Regexp.
func BeLeftErrorMatching(p any) Asymmetric { return mustExpect("ToBeLeftErrorMatching", p) }

// BeLeftWithErrorsMatching takes a slice of strings or *regexp.Regexp.
func BeLeftWithErrorsMatching(ps any) Asymmetric {
	return mustExpect("ToBeLeftWithErrorsMatching", ps)
}

func Equal(v any) Asymmetric       { return mustExpect("ToEqual", v) }
func StrictEqual(v any) Asymmetric { return mustExpect("ToStrictEqual", v) }
func SubsetEqual(v any) Asymmetric { return mustExpect("ToSubsetEqual", v) }
