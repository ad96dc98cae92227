package decode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outcomematch/pkg/expect"
	"outcomematch/pkg/outcome"
	"outcomematch/pkg/value"
)

var personSchema = []byte(`{
	"type": "object",
	"required": ["name", "age"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0},
		"tags": {"type": "array", "items": {"type": "string"}}
	}
}`)

func TestCompile_Errors(t *testing.T) {
	_, err := Compile("broken.json", []byte(`{"type": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal schema broken.json")

	_, err = Compile("bad-type.json", []byte(`{"type": 5}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile schema bad-type.json")

	assert.Panics(t, func() { MustCompile("broken.json", []byte(`[`)) })
}

func TestDecodeJSON_Valid(t *testing.T) {
	s := MustCompile("person.json", personSchema)
	got := s.DecodeJSON([]byte(`{"name": "Ada", "age": 36, "tags": ["x"]}`))
	require.Equal(t, outcome.TagRight, got.Tag())

	doc, _ := got.RightValue()
	obj, ok := doc.(*value.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "age", "tags"}, obj.Keys())

	expect.That(t, got).ToStrictEqualRight(value.NewObject(
		value.F("name", "Ada"),
		value.F("age", 36),
		value.F("tags", []any{"x"}),
	))
}

func TestDecodeJSON_Invalid(t *testing.T) {
	s := MustCompile("person.json", personSchema)
	got := s.DecodeJSON([]byte(`{"name": 7, "age": -1}`))
	require.Equal(t, outcome.TagLeft, got.Tag())

	left, _ := got.LeftValue()
	errs, ok := left.(Errors)
	require.True(t, ok)
	require.Len(t, errs, 2)
	assert.Equal(t, "/age", errs[0].Path)
	assert.Equal(t, "/name", errs[1].Path)
	assert.Contains(t, errs.Error(), "at '/age': ")

	expect.That(t, got).ToBeLeftWithErrorsMatching([]any{
		"at '/name'",
		regexp.MustCompile(`at '/age': .*0`),
	})
}

func TestDecodeJSON_MissingProperty(t *testing.T) {
	s := MustCompile("person.json", personSchema)
	got := s.DecodeJSON([]byte(`{"name": "Ada"}`))
	expect.That(t, got).ToBeLeftWithErrorsMatching([]string{"at '': ", "age"})
}

func TestDecodeJSON_Unreadable(t *testing.T) {
	s := MustCompile("person.json", personSchema)
	got := s.DecodeJSON([]byte(`{"name": `))
	expect.That(t, got).ToBeLeftWithErrorsMatching([]string{"invalid document: "})
}

func TestDecodeYAML(t *testing.T) {
	s := MustCompile("person.json", personSchema)

	got := s.DecodeYAML([]byte("name: Ada\nage: 36\n"))
	expect.That(t, got).ToEqualRight(map[string]any{"name": "Ada", "age": 36})

	got = s.DecodeYAML([]byte("name: Ada\nage: old\n"))
	expect.That(t, got).ToBeLeftWithErrorsMatching([]string{"at '/age'"})

	got = s.DecodeYAML([]byte("name: [\n"))
	expect.That(t, got).ToBeLeftWithErrorsMatching([]string{"invalid document"})
}

func TestPointer(t *testing.T) {
	assert.Equal(t, "", pointer(nil))
	assert.Equal(t, "/a/0", pointer([]string{"a", "0"}))
	assert.Equal(t, "/a~1b/c~0d", pointer([]string{"a/b", "c~d"}))
}
