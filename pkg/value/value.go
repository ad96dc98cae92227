// Package value defines the dynamic value model the matchers operate on.
//
// Ordinary Go values are accepted as-is: nil is null, numbers/strings/bools are
// primitives, slices and arrays are dense arrays, maps and anonymous structs are
// plain objects, and named structs are class instances. The package adds the
// pieces Go has no native spelling for: Undefined, array holes, ordered objects
// with an optional class name, and asymmetric matchers.
package value

import (
	"fmt"
)

// undefinedType is the type of Undefined.
type undefinedType struct{}

func (undefinedType) String() string { return "undefined" }

// Undefined is a present-but-undefined value. It is distinct from nil (null).
var Undefined = undefinedType{}

// holeType is the type of Hole.
type holeType struct{}

func (holeType) String() string { return "<empty>" }

// Hole marks a genuinely absent index inside a slice or array, making it sparse.
// A Hole outside an array is treated like Undefined.
var Hole = holeType{}

// IsUndefined reports whether v is Undefined (or a Hole, which reads as undefined).
func IsUndefined(v any) bool {
	switch v.(type) {
	case undefinedType, holeType:
		return true
	}
	return false
}

// IsHole reports whether v is the array hole sentinel.
func IsHole(v any) bool {
	_, ok := v.(holeType)
	return ok
}

// AsymmetricMatcher is a placeholder that decides equality with its own predicate
// instead of structural comparison.
type AsymmetricMatcher interface {
	AsymmetricMatch(received any) bool
	// String is the display form used by printers and diffs.
	String() string
}

// Valuer lets a Go type present itself as a different model value.
type Valuer interface {
	ToValue() any
}

// Field is one key/value pair of an Object.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, v any) Field {
	return Field{Key: key, Value: v}
}

// Object is an insertion-ordered object. An empty Class means a plain object;
// anything else makes it an instance of that class.
type Object struct {
	Class  string
	keys   []string
	fields map[string]any
}

// NewObject creates a plain object from fields in order.
func NewObject(fields ...Field) *Object {
	o := &Object{fields: make(map[string]any, len(fields))}
	for _, f := range fields {
		o.Set(f.Key, f.Value)
	}
	return o
}

// Instance creates an object belonging to the named class.
func Instance(class string, fields ...Field) *Object {
	o := NewObject(fields...)
	o.Class = class
	return o
}

// Set assigns a key, appending it to the key order when new.
func (o *Object) Set(key string, v any) *Object {
	if o.fields == nil {
		o.fields = make(map[string]any)
	}
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.fields[key]
	return v, ok
}

// Delete removes a key.
func (o *Object) Delete(key string) {
	if _, ok := o.fields[key]; !ok {
		return
	}
	delete(o.fields, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// String renders a short debugging form; use the printer for diagnostics.
func (o *Object) String() string {
	name := o.Class
	if name == "" {
		name = "Object"
	}
	return fmt.Sprintf("%s(%d keys)", name, o.Len())
}

// Error is a model error with an explicit constructor name, for building
// expected values such as a TypeError without defining a Go type.
type Error struct {
	Name    string
	Message string
}

// NewError returns an *Error named "Error".
func NewError(message string) *Error {
	return &Error{Name: "Error", Message: message}
}

func (e *Error) Error() string { return e.Message }
