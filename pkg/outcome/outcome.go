// Package outcome defines the tagged unions the matchers inspect: Either
// (Left | Right), These (Left | Right | Both) and Option (Some | None).
//
// Value is the typed sum. Classify is the total recognizer the matchers use:
// it accepts a Value, a pointer to one, or any object carrying a "_tag"
// discriminant, which is how outcomes arrive from JSON or YAML documents.
package outcome

import (
	"fmt"

	"outcomematch/pkg/value"
)

// Tag identifies the arm of an outcome.
type Tag int

const (
	NotRecognized Tag = iota
	TagLeft
	TagRight
	TagBoth
	TagSome
	TagNone
)

func (t Tag) String() string {
	switch t {
	case TagLeft:
		return "Left"
	case TagRight:
		return "Right"
	case TagBoth:
		return "Both"
	case TagSome:
		return "Some"
	case TagNone:
		return "None"
	}
	return "NotRecognized"
}

// ParseTag maps a discriminant to a Tag.
func ParseTag(s string) Tag {
	switch s {
	case "Left":
		return TagLeft
	case "Right":
		return TagRight
	case "Both":
		return TagBoth
	case "Some":
		return TagSome
	case "None":
		return TagNone
	}
	return NotRecognized
}

// IsEither reports whether t is an arm of Either.
func (t Tag) IsEither() bool { return t == TagLeft || t == TagRight }

// IsThese reports whether t is an arm of These. Every Either is also a These.
func (t Tag) IsThese() bool { return t.IsEither() || t == TagBoth }

// IsOption reports whether t is an arm of Option.
func (t Tag) IsOption() bool { return t == TagSome || t == TagNone }

// Value is one outcome. The zero Value is NotRecognized.
type Value struct {
	tag   Tag
	left  any
	right any // Right and Some payloads
}

// Left builds Left(v).
func Left(v any) Value { return Value{tag: TagLeft, left: v} }

// Right builds Right(v).
func Right(v any) Value { return Value{tag: TagRight, right: v} }

// Both builds Both(l, r).
func Both(l, r any) Value { return Value{tag: TagBoth, left: l, right: r} }

// Some builds Some(v).
func Some(v any) Value { return Value{tag: TagSome, right: v} }

// None builds None.
func None() Value { return Value{tag: TagNone} }

// Tag returns the arm.
func (v Value) Tag() Tag { return v.tag }

// LeftValue returns the left payload of a Left or Both.
func (v Value) LeftValue() (any, bool) {
	if v.tag == TagLeft || v.tag == TagBoth {
		return v.left, true
	}
	return nil, false
}

// RightValue returns the right payload of a Right or Both.
func (v Value) RightValue() (any, bool) {
	if v.tag == TagRight || v.tag == TagBoth {
		return v.right, true
	}
	return nil, false
}

// SomeValue returns the payload of a Some.
func (v Value) SomeValue() (any, bool) {
	if v.tag == TagSome {
		return v.right, true
	}
	return nil, false
}

// ToValue presents the outcome in its discriminated-object form, e.g.
// {"_tag": "Left", "left": 1}.
func (v Value) ToValue() any {
	tag := value.F("_tag", v.tag.String())
	switch v.tag {
	case TagLeft:
		return value.NewObject(tag, value.F("left", v.left))
	case TagRight:
		return value.NewObject(tag, value.F("right", v.right))
	case TagBoth:
		return value.NewObject(tag, value.F("left", v.left), value.F("right", v.right))
	case TagSome:
		return value.NewObject(tag, value.F("value", v.right))
	case TagNone:
		return value.NewObject(tag)
	}
	return value.Undefined
}

func (v Value) String() string {
	switch v.tag {
	case TagLeft:
		return fmt.Sprintf("Left(%v)", v.left)
	case TagRight:
		return fmt.Sprintf("Right(%v)", v.right)
	case TagBoth:
		return fmt.Sprintf("Both(%v, %v)", v.left, v.right)
	case TagSome:
		return fmt.Sprintf("Some(%v)", v.right)
	case TagNone:
		return "None"
	}
	return "NotRecognized"
}

// Classify recognizes v as an outcome. Anything else is NotRecognized.
//
// Objects are recognized by a string "_tag" of Left, Right, Both, Some or
// None. A missing payload property reads as undefined.
func Classify(v any) Value {
	switch o := v.(type) {
	case Value:
		return o
	case *Value:
		if o == nil {
			return Value{}
		}
		return *o
	}

	view, ok := value.ViewObject(v)
	if !ok {
		return Value{}
	}
	raw, ok := view.Lookup("_tag")
	if !ok {
		return Value{}
	}
	s, ok := value.Resolve(raw).(string)
	if !ok {
		return Value{}
	}

	payload := func(key string) any {
		if p, ok := view.Lookup(key); ok {
			return p
		}
		return value.Undefined
	}
	switch ParseTag(s) {
	case TagLeft:
		return Left(payload("left"))
	case TagRight:
		return Right(payload("right"))
	case TagBoth:
		return Both(payload("left"), payload("right"))
	case TagSome:
		return Some(payload("value"))
	case TagNone:
		return None()
	}
	return Value{}
}
