package value

import (
	"math"
	"reflect"
)

// Number is a numeric value normalised from any Go integer or float kind.
type Number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

type numberKind int

const (
	signedNumber numberKind = iota
	unsignedNumber
	floatNumber
)

// AsNumber extracts a Number from v.
func AsNumber(v any) (Number, bool) {
	v = Resolve(v)
	if v == nil {
		return Number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number{kind: signedNumber, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number{kind: unsignedNumber, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return Number{kind: floatNumber, f: rv.Float()}, true
	}
	return Number{}, false
}

// Float returns the number as a float64, possibly losing precision.
func (n Number) Float() float64 {
	switch n.kind {
	case signedNumber:
		return float64(n.i)
	case unsignedNumber:
		return float64(n.u)
	}
	return n.f
}

// IsInteger reports whether the number came from an integer kind.
func (n Number) IsInteger() bool {
	return n.kind != floatNumber
}

// Int returns the signed value of an integer number.
func (n Number) Int() int64 { return n.i }

// Uint returns the unsigned value of an integer number.
func (n Number) Uint() uint64 { return n.u }

// Signed reports whether an integer number came from a signed kind.
func (n Number) Signed() bool { return n.kind == signedNumber }

// Equal compares numerically across kinds. NaN equals NaN and -0 equals +0.
func (n Number) Equal(o Number) bool {
	if n.kind != floatNumber && o.kind != floatNumber {
		switch {
		case n.kind == signedNumber && o.kind == signedNumber:
			return n.i == o.i
		case n.kind == unsignedNumber && o.kind == unsignedNumber:
			return n.u == o.u
		case n.kind == signedNumber:
			return n.i >= 0 && uint64(n.i) == o.u
		default:
			return o.i >= 0 && uint64(o.i) == n.u
		}
	}
	a, b := n.Float(), o.Float()
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}
