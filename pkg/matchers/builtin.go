package matchers

import (
	"reflect"
	"regexp"
	"strings"

	"outcomematch/internal/compare"
	"outcomematch/internal/printer"
	"outcomematch/pkg/value"
)

// builtinKind enumerates the general-purpose placeholders.
type builtinKind int

const (
	kindAnything builtinKind = iota
	kindAny
	kindStringContaining
	kindStringMatching
	kindArrayContaining
	kindObjectContaining
)

// Builtin is a general-purpose asymmetric matcher for use next to the outcome
// matchers, e.g. EqualLeft(ObjectContaining(...)).
type Builtin struct {
	kind    builtinKind
	of      value.Kind
	text    string
	re      *regexp.Regexp
	sample  any
	inverse bool
}

var _ value.AsymmetricMatcher = Builtin{}

// Anything matches everything except null and undefined.
func Anything() Builtin { return Builtin{kind: kindAnything} }

// AnyOf matches any value of kind k.
func AnyOf(k value.Kind) Builtin { return Builtin{kind: kindAny, of: k} }

// StringContaining matches strings containing s.
func StringContaining(s string) Builtin { return Builtin{kind: kindStringContaining, text: s} }

// StringMatching matches strings against a regular expression given as a
// *regexp.Regexp or a pattern string. An invalid pattern string matches
// nothing.
func StringMatching(p any) Builtin {
	b := Builtin{kind: kindStringMatching}
	switch x := p.(type) {
	case *regexp.Regexp:
		b.re = x
	case string:
		b.text = x
		b.re, _ = regexp.Compile(x)
	}
	return b
}

// ArrayContaining matches arrays holding an equal element for every element
// of sample.
func ArrayContaining(sample ...any) Builtin {
	return Builtin{kind: kindArrayContaining, sample: sample}
}

// ObjectContaining matches objects that have every property of sample with an
// equal value.
func ObjectContaining(sample any) Builtin {
	return Builtin{kind: kindObjectContaining, sample: sample}
}

// Not returns the inverted matcher.
func (b Builtin) Not() Builtin {
	b.inverse = !b.inverse
	return b
}

func (b Builtin) AsymmetricMatch(received any) bool {
	return b.match(received) != b.inverse
}

func (b Builtin) match(received any) bool {
	received = value.Resolve(received)
	switch b.kind {
	case kindAnything:
		k := value.KindOf(received)
		return k != value.KindNull && k != value.KindUndefined
	case kindAny:
		return value.KindOf(received) == b.of
	case kindStringContaining:
		s, ok := asString(received)
		return ok && strings.Contains(s, b.text)
	case kindStringMatching:
		s, ok := asString(received)
		return ok && b.re != nil && b.re.MatchString(s)
	case kindArrayContaining:
		return arrayContains(b.sample.([]any), received)
	case kindObjectContaining:
		return objectContains(b.sample, received)
	}
	return false
}

// asString accepts named string types as well as string.
func asString(v any) (string, bool) {
	if value.KindOf(v) != value.KindString {
		return "", false
	}
	return reflect.ValueOf(v).String(), true
}

func arrayContains(sample []any, received any) bool {
	elems, ok := value.ViewArray(received)
	if !ok {
		return false
	}
	for _, want := range sample {
		found := false
		for _, got := range elems {
			if compare.Equal(compare.Loose, want, got) {
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

func objectContains(sample, received any) bool {
	want, ok := value.ViewObject(sample)
	if !ok {
		return false
	}
	got, ok := value.ViewObject(received)
	if !ok {
		return false
	}
	for i, key := range want.Keys {
		v, ok := got.Lookup(key)
		if !ok || !compare.Equal(compare.Loose, want.Values[i], v) {
			return false
		}
	}
	return true
}

func (b Builtin) String() string {
	switch b.kind {
	case kindAnything:
		return b.named("Anything", "")
	case kindAny:
		return b.named("Any", "") + "<" + b.of.String() + ">"
	case kindStringContaining:
		return b.named("StringContaining", "StringNotContaining") + " " + printer.Quote(b.text)
	case kindStringMatching:
		src := b.text
		if b.re != nil {
			src = b.re.String()
		}
		return b.named("StringMatching", "StringNotMatching") + " /" + src + "/"
	case kindArrayContaining:
		return b.named("ArrayContaining", "ArrayNotContaining") + " " + printer.Render(b.sample)
	case kindObjectContaining:
		return b.named("ObjectContaining", "ObjectNotContaining") + " " + printer.Render(b.sample)
	}
	return "Unknown"
}

func (b Builtin) named(name, inverted string) string {
	if !b.inverse {
		return name
	}
	if inverted == "" {
		return "not." + name
	}
	return inverted
}
