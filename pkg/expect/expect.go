// Package expect connects the outcome matchers to Go's testing package.
//
//	func TestParse(t *testing.T) {
//		expect.That(t, parse("42")).ToEqualRight(42)
//		expect.That(t, parse("x")).Not().ToBeRight()
//	}
//
// Matchers are looked up by name in a Registry, so custom matchers can be
// registered next to the built-in ones and invoked with To.
package expect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"outcomematch/pkg/matchers"
)

// TB is the part of testing.TB an assertion reports through.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
}

// Registry is a concurrency-safe matchers.Registry. Names are case-insensitive.
type Registry struct {
	mu  sync.RWMutex
	fns map[string]registered
}

type registered struct {
	name string
	fn   matchers.Func
}

var _ matchers.Registry = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]registered)}
}

// Register adds or replaces a matcher.
func (r *Registry) Register(name string, fn matchers.Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[strings.ToLower(name)] = registered{name: name, fn: fn}
}

// Lookup returns the matcher registered under name.
func (r *Registry) Lookup(name string) (matchers.Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.fns[strings.ToLower(name)]
	return m.fn, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.fns))
	for _, m := range r.fns {
		names = append(names, m.name)
	}
	sort.Strings(names)
	return names
}

// Evaluate runs a matcher and applies negation. It returns whether the
// assertion holds and, when it does not, the explanation. A matcher error
// fails the assertion before negation is applied and is returned with its
// explanation.
func (r *Registry) Evaluate(name string, negated bool, received any, args ...any) (bool, string, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return false, "", fmt.Errorf("%w: %s", matchers.ErrUnknownMatcher, name)
	}
	res := fn(received, args...)
	if res.Err != nil {
		msg := res.Err.Error()
		if res.Message != nil {
			msg = res.Message()
		}
		return false, msg, res.Err
	}
	if res.Pass != negated {
		return true, "", nil
	}
	if res.Message == nil {
		return false, "", nil
	}
	return false, res.Message(), nil
}

// Default holds every matcher from the matchers package.
var Default = newDefault()

func newDefault() *Registry {
	r := NewRegistry()
	matchers.Register(r)
	return r
}

// Assertion is an expectation on one received value.
type Assertion struct {
	t        TB
	received any
	negated  bool
	registry *Registry
}

// That starts an assertion on received, using the Default registry.
func That(t TB, received any) Assertion {
	return Assertion{t: t, received: received, registry: Default}
}

// Not negates the assertion.
func (a Assertion) Not() Assertion {
	a.negated = !a.negated
	return a
}

// Using evaluates against r instead of the Default registry.
func (a Assertion) Using(r *Registry) Assertion {
	a.registry = r
	return a
}

// To runs the named matcher. It reports a failure through Errorf and returns
// whether the assertion held.
func (a Assertion) To(name string, args ...any) bool {
	a.t.Helper()
	ok, msg, err := a.registry.Evaluate(name, a.negated, a.received, args...)
	switch {
	case err != nil && msg != "":
		a.t.Errorf("\n%s", msg)
	case err != nil:
		a.t.Errorf("%v", err)
	case !ok:
		a.t.Errorf("\n%s", msg)
	}
	return ok
}

func (a Assertion) ToBeEither() bool { a.t.Helper(); return a.To("ToBeEither") }
func (a Assertion) ToBeThese() bool  { a.t.Helper(); return a.To("ToBeThese") }
func (a Assertion) ToBeOption() bool { a.t.Helper(); return a.To("ToBeOption") }
func (a Assertion) ToBeLeft() bool   { a.t.Helper(); return a.To("ToBeLeft") }
func (a Assertion) ToBeRight() bool  { a.t.Helper(); return a.To("ToBeRight") }
func (a Assertion) ToBeBoth() bool   { a.t.Helper(); return a.To("ToBeBoth") }
func (a Assertion) ToBeSome() bool   { a.t.Helper(); return a.To("ToBeSome") }
func (a Assertion) ToBeNone() bool   { a.t.Helper(); return a.To("ToBeNone") }

func (a Assertion) ToEqualLeft(v any) bool { a.t.Helper(); return a.To("ToEqualLeft", v) }
func (a Assertion) ToStrictEqualLeft(v any) bool {
	a.t.Helper()
	return a.To("ToStrictEqualLeft", v)
}
func (a Assertion) ToSubsetEqualLeft(v any) bool {
	a.t.Helper()
	return a.To("ToSubsetEqualLeft", v)
}

func (a Assertion) ToEqualRight(v any) bool { a.t.Helper(); return a.To("ToEqualRight", v) }
func (a Assertion) ToStrictEqualRight(v any) bool {
	a.t.Helper()
	return a.To("ToStrictEqualRight", v)
}
func (a Assertion) ToSubsetEqualRight(v any) bool {
	a.t.Helper()
	return a.To("ToSubsetEqualRight", v)
}

func (a Assertion) ToEqualBoth(l, r any) bool { a.t.Helper(); return a.To("ToEqualBoth", l, r) }
func (a Assertion) ToStrictEqualBoth(l, r any) bool {
	a.t.Helper()
	return a.To("ToStrictEqualBoth", l, r)
}
func (a Assertion) ToSubsetEqualBoth(l, r any) bool {
	a.t.Helper()
	return a.To("ToSubsetEqualBoth", l, r)
}

func (a Assertion) ToEqualSome(v any) bool { a.t.Helper(); return a.To("ToEqualSome", v) }
func (a Assertion) ToStrictEqualSome(v any) bool {
	a.t.Helper()
	return a.To("ToStrictEqualSome", v)
}
func (a Assertion) ToSubsetEqualSome(v any) bool {
	a.t.Helper()
	return a.To("ToSubsetEqualSome", v)
}

// ToBeLeftErrorMatching takes a string or *regexp.Regexp.
func (a Assertion) ToBeLeftErrorMatching(pattern any) bool {
	a.t.Helper()
	return a.To("ToBeLeftErrorMatching", pattern)
}

// ToBeLeftWithErrorsMatching takes a slice of strings or *regexp.Regexp.
func (a Assertion) ToBeLeftWithErrorsMatching(patterns any) bool {
	a.t.Helper()
	return a.To("ToBeLeftWithErrorsMatching", patterns)
}

func (a Assertion) ToEqual(v any) bool       { a.t.Helper(); return a.To("ToEqual", v) }
func (a Assertion) ToStrictEqual(v any) bool { a.t.Helper(); return a.To("ToStrictEqual", v) }
func (a Assertion) ToSubsetEqual(v any) bool { a.t.Helper(); return a.To("ToSubsetEqual", v) }
