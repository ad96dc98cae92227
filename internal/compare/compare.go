// Package compare implements the three equivalence relations used by the
// matchers: Loose, Strict and Subset.
//
// All three share one recursive descent. Asymmetric matchers short-circuit it
// wherever they appear. Cyclic value graphs are not supported; comparing one
// does not terminate.
package compare

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"outcomematch/internal/logging"
	"outcomematch/pkg/value"
)

// Mode selects an equivalence relation.
type Mode int

const (
	// Loose is deep equality that treats undefined properties as missing,
	// array holes as undefined, and ignores class identity.
	Loose Mode = iota
	// Strict is deep equality that distinguishes all of the above.
	Strict
	// Subset lets the received object carry properties the expected object
	// does not name. Arrays still compare index by index with equal lengths.
	Subset
)

func (m Mode) String() string {
	switch m {
	case Loose:
		return "loose"
	case Strict:
		return "strict"
	case Subset:
		return "subset"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loose", "equal":
		return Loose, nil
	case "strict", "strictequal":
		return Strict, nil
	case "subset", "subsetequal":
		return Subset, nil
	}
	return Loose, fmt.Errorf("unknown comparison mode %q (valid: loose, strict, subset)", s)
}

// Equal reports whether received matches expected under mode.
func Equal(mode Mode, expected, received any) bool {
	eq := equal(mode, expected, received)
	if ce := logging.Compare().Check(zap.DebugLevel, "compared"); ce != nil {
		ce.Write(
			zap.Stringer("mode", mode),
			zap.Stringer("expected_kind", value.KindOf(expected)),
			zap.Stringer("received_kind", value.KindOf(received)),
			zap.Bool("equal", eq))
	}
	return eq
}

// Predicate curries Equal: Predicate(mode, expected)(received).
func Predicate(mode Mode, expected any) func(received any) bool {
	return func(received any) bool {
		return equal(mode, expected, received)
	}
}

func asMatcher(v any) (value.AsymmetricMatcher, bool) {
	m, ok := value.Resolve(v).(value.AsymmetricMatcher)
	return m, ok
}

func equal(mode Mode, expected, received any) bool {
	if m, ok := asMatcher(expected); ok {
		return m.AsymmetricMatch(received)
	}
	if m, ok := asMatcher(received); ok {
		return m.AsymmetricMatch(expected)
	}

	expected, received = value.Resolve(expected), value.Resolve(received)
	ek, rk := value.KindOf(expected), value.KindOf(received)

	if ek == value.KindUndefined || rk == value.KindUndefined ||
		ek == value.KindNull || rk == value.KindNull {
		return ek == rk
	}
	if ek != rk {
		return false
	}

	switch ek {
	case value.KindBool:
		return reflect.ValueOf(expected).Bool() == reflect.ValueOf(received).Bool()
	case value.KindNumber:
		en, _ := value.AsNumber(expected)
		rn, _ := value.AsNumber(received)
		return en.Equal(rn)
	case value.KindString:
		return reflect.ValueOf(expected).String() == reflect.ValueOf(received).String()
	case value.KindFunction:
		return value.FuncPointer(expected) == value.FuncPointer(received)
	case value.KindError:
		return equalErrors(mode, expected.(error), received.(error))
	case value.KindArray:
		return equalArrays(mode, expected, received)
	case value.KindObject:
		return equalObjects(mode, expected, received)
	}
	return equalOpaque(expected, received)
}

func equalErrors(mode Mode, expected, received error) bool {
	if expected.Error() != received.Error() {
		return false
	}
	if mode == Strict {
		return value.ErrorName(expected) == value.ErrorName(received)
	}
	return true
}

func equalArrays(mode Mode, expected, received any) bool {
	es, _ := value.ViewArray(expected)
	rs, _ := value.ViewArray(received)
	if len(es) != len(rs) {
		return false
	}
	for i := range es {
		e, r := es[i], rs[i]
		eh, rh := value.IsHole(e), value.IsHole(r)
		if mode == Strict && (eh || rh) {
			if eh != rh {
				return false
			}
			continue
		}
		if eh {
			e = value.Undefined
		}
		if rh {
			r = value.Undefined
		}
		if !equal(mode, e, r) {
			return false
		}
	}
	return true
}

func equalObjects(mode Mode, expected, received any) bool {
	ev, _ := value.ViewObject(expected)
	rv, _ := value.ViewObject(received)

	switch mode {
	case Strict:
		if ev.ClassID != rv.ClassID || len(ev.Keys) != len(rv.Keys) {
			return false
		}
		for i, k := range ev.Keys {
			r, ok := rv.Lookup(k)
			if !ok || !equal(Strict, ev.Values[i], r) {
				return false
			}
		}
		return true

	case Subset:
		for i, k := range ev.Keys {
			r, ok := rv.Lookup(k)
			if !ok || !equal(Subset, ev.Values[i], r) {
				return false
			}
		}
		return true
	}

	for i, k := range ev.Keys {
		r, ok := rv.Lookup(k)
		if !ok {
			if value.IsUndefined(ev.Values[i]) {
				continue
			}
			return false
		}
		if !equal(Loose, ev.Values[i], r) {
			return false
		}
	}
	for i, k := range rv.Keys {
		if !ev.Has(k) && !value.IsUndefined(rv.Values[i]) {
			return false
		}
	}
	return true
}

// equalOpaque compares values without own structure. Types with an
// Equal(T) bool method (time.Time and friends) decide for themselves.
func equalOpaque(expected, received any) bool {
	if reflect.TypeOf(expected) != reflect.TypeOf(received) {
		return false
	}
	if ere, ok := expected.(*regexp.Regexp); ok {
		return ere.String() == received.(*regexp.Regexp).String()
	}
	if eq, ok := equalMethod(expected, received); ok {
		return eq
	}
	return reflect.DeepEqual(expected, received)
}

func equalMethod(expected, received any) (result, ok bool) {
	m := reflect.ValueOf(expected).MethodByName("Equal")
	if !m.IsValid() {
		return false, false
	}
	mt := m.Type()
	rt := reflect.TypeOf(received)
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Bool || !rt.AssignableTo(mt.In(0)) {
		return false, false
	}
	out := m.Call([]reflect.Value{reflect.ValueOf(received)})
	return out[0].Bool(), true
}
