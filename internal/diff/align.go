package diff

import (
	"outcomematch/pkg/value"
)

// align rewrites both sides before they are rendered for a line diff.
//
// Wherever an asymmetric matcher on one side accepts the value on the other,
// both positions become the matcher, so matched positions print identically.
// With trim set, received objects keep only the keys expected names; this is
// how a subset diff hides properties that cannot cause a mismatch. Arrays of
// different lengths are not trimmed below that point.
func align(expected, received any, trim bool) (any, any) {
	if m, ok := value.Resolve(expected).(value.AsymmetricMatcher); ok {
		if m.AsymmetricMatch(received) {
			return m, m
		}
		return m, received
	}
	if m, ok := value.Resolve(received).(value.AsymmetricMatcher); ok {
		if m.AsymmetricMatch(expected) {
			return m, m
		}
		return expected, m
	}

	e, r := value.Resolve(expected), value.Resolve(received)
	ek, rk := value.KindOf(e), value.KindOf(r)
	switch {
	case ek == value.KindArray && rk == value.KindArray:
		return alignArrays(e, r, trim)
	case ek == value.KindObject && rk == value.KindObject:
		return alignObjects(e, r, trim)
	}
	return expected, received
}

func alignArrays(expected, received any, trim bool) (any, any) {
	es, _ := value.ViewArray(expected)
	rs, _ := value.ViewArray(received)
	trim = trim && len(es) == len(rs)

	outE := make([]any, len(es))
	outR := make([]any, len(rs))
	copy(outE, es)
	copy(outR, rs)
	for i := 0; i < len(es) && i < len(rs); i++ {
		if value.IsHole(es[i]) || value.IsHole(rs[i]) {
			continue
		}
		outE[i], outR[i] = align(es[i], rs[i], trim)
	}
	return outE, outR
}

func alignObjects(expected, received any, trim bool) (any, any) {
	ev, _ := value.ViewObject(expected)
	rv, _ := value.ViewObject(received)

	alignedR := make(map[string]any, len(rv.Keys))
	outE := value.Instance(ev.Class)
	for i, k := range ev.Keys {
		r, ok := rv.Lookup(k)
		if !ok {
			outE.Set(k, ev.Values[i])
			continue
		}
		a, b := align(ev.Values[i], r, trim)
		outE.Set(k, a)
		alignedR[k] = b
	}

	outR := value.Instance(rv.Class)
	for i, k := range rv.Keys {
		if b, ok := alignedR[k]; ok {
			outR.Set(k, b)
		} else if !trim {
			outR.Set(k, rv.Values[i])
		}
	}
	return outE, outR
}
