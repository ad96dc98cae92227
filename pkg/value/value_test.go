package value

import (
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Message string
	Code    int
	hidden  bool
}

type wrapped struct{ inner any }

func (w wrapped) ToValue() any { return w.inner }

func namedHelper() {}

func TestObject_KeepsInsertionOrder(t *testing.T) {
	o := NewObject(F("b", 1), F("a", 2))
	o.Set("c", 3)
	o.Set("b", 4)

	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	v, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, 4, v)

	o.Delete("a")
	assert.Equal(t, []string{"b", "c"}, o.Keys())
	assert.Equal(t, 2, o.Len())

	o.Delete("missing")
	assert.Equal(t, 2, o.Len())
}

func TestKindOf(t *testing.T) {
	var nilMap map[string]int
	var nilPtr *message
	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"nil", nil, KindNull},
		{"nil map", nilMap, KindNull},
		{"nil pointer", nilPtr, KindNull},
		{"undefined", Undefined, KindUndefined},
		{"hole", Hole, KindUndefined},
		{"bool", true, KindBool},
		{"int", 3, KindNumber},
		{"uint8", uint8(3), KindNumber},
		{"float", 1.5, KindNumber},
		{"string", "x", KindString},
		{"func", namedHelper, KindFunction},
		{"error", errors.New("boom"), KindError},
		{"model error", NewError("boom"), KindError},
		{"slice", []int{1}, KindArray},
		{"array", [2]string{"a", "b"}, KindArray},
		{"map", map[string]int{}, KindObject},
		{"struct", message{}, KindObject},
		{"struct pointer", &message{}, KindObject},
		{"object", NewObject(), KindObject},
		{"valuer", wrapped{inner: "x"}, KindString},
		{"chan", make(chan int), KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.in))
		})
	}
}

func TestViewObject_Struct(t *testing.T) {
	view, ok := ViewObject(&message{Message: "hi", Code: 2, hidden: true})
	require.True(t, ok)

	assert.Equal(t, "message", view.Class)
	assert.Equal(t, "outcomematch/pkg/value.message", view.ClassID)
	assert.Equal(t, []string{"Message", "Code"}, view.Keys)
	assert.False(t, view.Has("hidden"))
	v, ok := view.Lookup("Code")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestViewObject_AnonymousStructIsPlain(t *testing.T) {
	view, ok := ViewObject(struct{ A int }{A: 1})
	require.True(t, ok)
	assert.True(t, view.IsPlain())
	assert.Equal(t, []string{"A"}, view.Keys)
}

func TestViewObject_MapKeysSorted(t *testing.T) {
	view, ok := ViewObject(map[string]int{"z": 1, "a": 2, "m": 3})
	require.True(t, ok)
	assert.True(t, view.IsPlain())
	assert.Equal(t, []string{"a", "m", "z"}, view.Keys)
	assert.Equal(t, []any{2, 3, 1}, view.Values)
}

func TestViewObject_ClassInstance(t *testing.T) {
	view, ok := ViewObject(Instance("Message", F("message", "x")))
	require.True(t, ok)
	assert.Equal(t, "Message", view.Class)
	assert.False(t, view.IsPlain())

	_, ok = ViewObject([]int{1})
	assert.False(t, ok)
}

func TestViewArray(t *testing.T) {
	elems, ok := ViewArray([]any{1, Hole, 3})
	require.True(t, ok)
	assert.True(t, IsHole(elems[1]))
	assert.True(t, IsUndefined(elems[1]))

	elems, ok = ViewArray([3]int{1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, []any{1, 2, 3}, elems)
}

func TestIsOpaque(t *testing.T) {
	assert.True(t, IsOpaque(time.Now()))
	assert.True(t, IsOpaque(regexp.MustCompile("a")))
	assert.False(t, IsOpaque(message{}))
	assert.False(t, IsOpaque(struct{}{}))
	assert.False(t, IsOpaque(3))
}

func TestErrorName(t *testing.T) {
	assert.Equal(t, "errorString", ErrorName(errors.New("x")))
	assert.Equal(t, "TypeError", ErrorName(&Error{Name: "TypeError", Message: "x"}))
	assert.Equal(t, "Error", ErrorName(&Error{Message: "x"}))
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "namedHelper", FuncName(namedHelper))
	assert.Equal(t, "", FuncName(func() {}))
	assert.Equal(t, "", FuncName("not a func"))
	assert.NotZero(t, FuncPointer(namedHelper))
}

func TestNumber_Equal(t *testing.T) {
	num := func(v any) Number {
		n, ok := AsNumber(v)
		require.True(t, ok)
		return n
	}

	assert.True(t, num(1).Equal(num(1.0)))
	assert.True(t, num(int8(-3)).Equal(num(int64(-3))))
	assert.True(t, num(uint(7)).Equal(num(7)))
	assert.False(t, num(-1).Equal(num(uint64(math.MaxUint64))))
	assert.True(t, num(math.NaN()).Equal(num(math.NaN())))
	assert.True(t, num(math.Copysign(0, -1)).Equal(num(0.0)))
	assert.False(t, num(1).Equal(num(2)))

	_, ok := AsNumber("1")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	doc := `
first: 1
last: !undefined
tags: [a, !hole, c]
err: !error boom
pattern: !regexp ^ab+$
msg: !Message
  message: hello
none: null
`
	v, err := Parse([]byte(doc))
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"first", "last", "tags", "err", "pattern", "msg", "none"}, obj.Keys())

	first, _ := obj.Get("first")
	assert.Equal(t, 1, first)

	last, _ := obj.Get("last")
	assert.True(t, IsUndefined(last))

	tags, _ := obj.Get("tags")
	require.Len(t, tags, 3)
	assert.True(t, IsHole(tags.([]any)[1]))

	e, _ := obj.Get("err")
	assert.Equal(t, "boom", e.(*Error).Message)

	re, _ := obj.Get("pattern")
	assert.True(t, re.(*regexp.Regexp).MatchString("abbb"))

	msg, _ := obj.Get("msg")
	assert.Equal(t, "Message", msg.(*Object).Class)

	none, ok := obj.Get("none")
	assert.True(t, ok)
	assert.Nil(t, none)
}

func TestParse_JSON(t *testing.T) {
	v, err := Parse([]byte(`{"_tag": "Right", "right": [1, 2.5, "x"]}`))
	require.NoError(t, err)
	obj := v.(*Object)
	assert.Equal(t, []string{"_tag", "right"}, obj.Keys())
	right, _ := obj.Get("right")
	assert.Equal(t, []any{1, 2.5, "x"}, right)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("a: [1, 2"))
	assert.Error(t, err)

	_, err = Parse([]byte("a: !regexp '(['"))
	assert.Error(t, err)

	_, err = Parse([]byte("a: !custom 1"))
	assert.Error(t, err)

	v, err := Parse(nil)
	require.NoError(t, err)
	assert.True(t, IsUndefined(v))
}
