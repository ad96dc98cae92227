// Package decode validates JSON and YAML documents against a JSON Schema and
// returns the result as an outcome: Right(document) when the document is
// valid, Left(Errors) otherwise. Errors implements Report, so a failed decode
// can be checked with ToBeLeftWithErrorsMatching.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"outcomematch/internal/logging"
	"outcomematch/pkg/outcome"
	"outcomematch/pkg/value"
)

// Error is one validation problem.
type Error struct {
	Path    string // JSON pointer of the offending instance, "" for the document
	Message string
}

func (e Error) String() string {
	return fmt.Sprintf("at '%s': %s", e.Path, e.Message)
}

// Errors is the Left payload of a failed decode.
type Errors []Error

func (es Errors) Error() string {
	return strings.Join(es.Report(), "; ")
}

// Report returns one line per problem.
func (es Errors) Report() []string {
	lines := make([]string, len(es))
	for i, e := range es {
		lines[i] = e.String()
	}
	return lines
}

// Schema is a compiled JSON Schema.
type Schema struct {
	name    string
	schema  *jsonschema.Schema
	printer *message.Printer
}

// Compile compiles a JSON Schema document registered under name.
func Compile(name string, schemaJSON []byte) (*Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("add schema resource %s: %w", name, err)
	}
	s, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Schema{name: name, schema: s, printer: message.NewPrinter(language.English)}, nil
}

// MustCompile is Compile for schemas known to be valid, such as test fixtures.
func MustCompile(name string, schemaJSON []byte) *Schema {
	s, err := Compile(name, schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// DecodeJSON validates a JSON document.
func (s *Schema) DecodeJSON(data []byte) outcome.Value {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return s.invalid(err)
	}
	return s.decode(inst, data)
}

// DecodeYAML validates a YAML document. Mapping keys must be strings.
func (s *Schema) DecodeYAML(data []byte) outcome.Value {
	var inst any
	if err := yaml.Unmarshal(data, &inst); err != nil {
		return s.invalid(err)
	}
	return s.decode(inst, data)
}

func (s *Schema) decode(inst any, data []byte) outcome.Value {
	if err := s.schema.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return s.invalid(err)
		}
		errs := s.flatten(verr)
		logging.Decode().Debug("document rejected",
			zap.String("schema", s.name),
			zap.Int("errors", len(errs)))
		return outcome.Left(errs)
	}

	// Parsed separately so the Right payload keeps document key order.
	doc, err := value.Parse(data)
	if err != nil {
		return s.invalid(err)
	}
	logging.Decode().Debug("document accepted", zap.String("schema", s.name))
	return outcome.Right(doc)
}

func (s *Schema) invalid(err error) outcome.Value {
	logging.Decode().Debug("document unreadable", zap.String("schema", s.name), zap.Error(err))
	return outcome.Left(Errors{{Message: "invalid document: " + err.Error()}})
}

// flatten keeps the leaves of the cause tree, ordered by instance path.
func (s *Schema) flatten(verr *jsonschema.ValidationError) Errors {
	var out Errors
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Error{
				Path:    pointer(e.InstanceLocation),
				Message: e.ErrorKind.LocalizedString(s.printer),
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func pointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		t = strings.ReplaceAll(t, "~", "~0")
		escaped[i] = strings.ReplaceAll(t, "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}
