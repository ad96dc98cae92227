package value

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"
)

// Kind is the fundamental shape of a model value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindFunction
	KindError
	KindArray
	KindObject
	KindMatcher
	KindOther
)

var kindNames = map[Kind]string{
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBool:      "boolean",
	KindNumber:    "number",
	KindString:    "string",
	KindFunction:  "function",
	KindError:     "error",
	KindArray:     "array",
	KindObject:    "object",
	KindMatcher:   "asymmetric matcher",
	KindOther:     "other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsPrimitive reports whether values of this kind are compared by value.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindBool, KindNumber, KindString:
		return true
	}
	return false
}

// IsComposite reports whether values of this kind have children.
func (k Kind) IsComposite() bool {
	return k == KindArray || k == KindObject
}

// maxIndirections bounds pointer chasing so a self-referencing pointer cannot spin.
const maxIndirections = 32

// Resolve unwraps Valuer implementations and pointers until a model value remains.
// Nil pointers, maps, slices, funcs, channels and interfaces resolve to nil.
func Resolve(v any) any {
	for i := 0; i < maxIndirections; i++ {
		if v == nil {
			return nil
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
			if rv.IsNil() {
				return nil
			}
		}
		switch t := v.(type) {
		case undefinedType, holeType, *Object, AsymmetricMatcher, error:
			return v
		case Valuer:
			v = t.ToValue()
			continue
		}
		if rv.Kind() != reflect.Ptr || isOpaqueStruct(rv.Type().Elem()) {
			return v
		}
		v = rv.Elem().Interface()
	}
	return v
}

// KindOf classifies a value after resolving it.
func KindOf(v any) Kind {
	v = Resolve(v)
	switch v.(type) {
	case nil:
		return KindNull
	case undefinedType, holeType:
		return KindUndefined
	case AsymmetricMatcher:
		return KindMatcher
	case error:
		return KindError
	case *Object:
		return KindObject
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.String:
		return KindString
	case reflect.Func:
		return KindFunction
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		return KindObject
	case reflect.Struct:
		if isOpaqueStruct(reflect.TypeOf(v)) {
			return KindOther
		}
		return KindObject
	}
	return KindOther
}

// isOpaqueStruct reports whether t is a struct without exported fields, such as
// time.Time or regexp.Regexp. Such values have no own keys to compare or print.
func isOpaqueStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return false
		}
	}
	return t.NumField() > 0
}

// ObjectView is a uniform, ordered reading of anything of KindObject.
type ObjectView struct {
	Class   string // display name, empty for plain objects
	ClassID string // identity used by strict comparison, empty for plain objects
	Keys    []string
	Values  []any
	index   map[string]int
}

// IsPlain reports whether the object has no class.
func (v ObjectView) IsPlain() bool {
	return v.ClassID == ""
}

// Lookup returns the value stored under key.
func (v ObjectView) Lookup(key string) (any, bool) {
	i, ok := v.index[key]
	if !ok {
		return nil, false
	}
	return v.Values[i], true
}

// Has reports whether key is an own key.
func (v ObjectView) Has(key string) bool {
	_, ok := v.index[key]
	return ok
}

func newObjectView(class, classID string, keys []string, values []any) ObjectView {
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	return ObjectView{Class: class, ClassID: classID, Keys: keys, Values: values, index: index}
}

// ViewObject returns the ordered key/value view of an object value.
func ViewObject(v any) (ObjectView, bool) {
	v = Resolve(v)
	if KindOf(v) != KindObject {
		return ObjectView{}, false
	}
	if o, ok := v.(*Object); ok {
		values := make([]any, len(o.keys))
		for i, k := range o.keys {
			values[i] = o.fields[k]
		}
		classID := ""
		if o.Class != "" {
			classID = "class:" + o.Class
		}
		return newObjectView(o.Class, classID, o.Keys(), values), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		type entry struct {
			key string
			val any
		}
		entries := make([]entry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, entry{key: fmt.Sprint(iter.Key().Interface()), val: iter.Value().Interface()})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
		keys := make([]string, len(entries))
		values := make([]any, len(entries))
		for i, e := range entries {
			keys[i] = e.key
			values[i] = e.val
		}
		return newObjectView("", "", keys, values), true

	case reflect.Struct:
		t := rv.Type()
		var keys []string
		var values []any
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			keys = append(keys, f.Name)
			values = append(values, rv.Field(i).Interface())
		}
		if t.Name() == "" {
			return newObjectView("", "", keys, values), true
		}
		return newObjectView(t.Name(), t.PkgPath()+"."+t.Name(), keys, values), true
	}
	return ObjectView{}, false
}

// ViewArray returns the elements of an array value. Holes are reported as Hole.
func ViewArray(v any) ([]any, bool) {
	v = Resolve(v)
	if KindOf(v) != KindArray {
		return nil, false
	}
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// IsOpaque reports whether v is a value with no structure of its own: a struct
// without exported fields (or a pointer to one), a channel, or another kind
// outside the model.
func IsOpaque(v any) bool {
	return KindOf(v) == KindOther
}

// ErrorName returns the constructor-like name of an error value.
func ErrorName(err error) string {
	if e, ok := err.(*Error); ok {
		if e.Name == "" {
			return "Error"
		}
		return e.Name
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "Error"
	}
	return t.Name()
}

// FuncName returns the declared name of a function value, or "" when it is a
// closure or cannot be determined.
func FuncName(fn any) string {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(rv.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	parts := strings.Split(name, ".")
	last := parts[len(parts)-1]
	if isClosureSegment(last) {
		return ""
	}
	return last
}

func isClosureSegment(s string) bool {
	if !strings.HasPrefix(s, "func") {
		return false
	}
	digits := s[len("func"):]
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FuncPointer returns the code pointer of a function value, used as its identity.
func FuncPointer(fn any) uintptr {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return 0
	}
	return rv.Pointer()
}
