package value

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tags understood by Parse in addition to the YAML core schema.
const (
	TagUndefined = "!undefined"
	TagHole      = "!hole"
	TagError     = "!error"
	TagRegexp    = "!regexp"
)

// Parse reads a YAML (or JSON) document into the value model.
//
// Mappings become plain *Object values with their key order kept. A mapping
// carrying a local tag such as `!Message` becomes an instance of that class.
// `!undefined`, `!hole`, `!error <message>` and `!regexp <pattern>` produce
// Undefined, Hole, an *Error and a *regexp.Regexp respectively.
func Parse(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Kind == 0 {
		return Undefined, nil
	}
	return FromNode(&doc)
}

// FromNode converts an already decoded YAML node into the value model.
func FromNode(n *yaml.Node) (any, error) {
	if n == nil {
		return Undefined, nil
	}
	switch n.Tag {
	case TagUndefined:
		return Undefined, nil
	case TagHole:
		return Hole, nil
	case TagError:
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %s expects a scalar message", n.Line, TagError)
		}
		return NewError(n.Value), nil
	case TagRegexp:
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %s expects a scalar pattern", n.Line, TagRegexp)
		}
		re, err := regexp.Compile(n.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid pattern: %w", n.Line, err)
		}
		return re, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Undefined, nil
		}
		return FromNode(n.Content[0])

	case yaml.AliasNode:
		return FromNode(n.Alias)

	case yaml.SequenceNode:
		if isLocalTag(n.Tag) {
			return nil, fmt.Errorf("line %d: unsupported tag %s on sequence", n.Line, n.Tag)
		}
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := FromNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		obj := NewObject()
		if isLocalTag(n.Tag) {
			obj.Class = strings.TrimPrefix(n.Tag, "!")
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := FromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(n.Content[i].Value, v)
		}
		return obj, nil

	case yaml.ScalarNode:
		if isLocalTag(n.Tag) {
			return nil, fmt.Errorf("line %d: unsupported tag %s on scalar", n.Line, n.Tag)
		}
		var out any
		if err := n.Decode(&out); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

// isLocalTag reports whether tag is an application tag ("!name") rather than a
// core schema tag ("!!str") or no tag at all.
func isLocalTag(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!")
}
