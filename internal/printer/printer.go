// Package printer renders model values as stable, readable text.
//
// Render produces a single line and is used inside explanation messages.
// RenderIndented produces one line per property or element and is the input of
// the line differ. Both are pure and never panic on acyclic input.
package printer

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"outcomematch/pkg/value"
)

// Options controls rendering.
type Options struct {
	Indent   int // spaces per nesting level in indented output
	MaxDepth int // composites nested deeper than this print as [Object] / [Array]
}

// DefaultOptions returns the options used by the package-level helpers.
func DefaultOptions() Options {
	return Options{Indent: 2, MaxDepth: 10}
}

// Printer renders values with fixed options.
type Printer struct {
	opts Options
}

// New creates a Printer. Non-positive option values fall back to the defaults.
func New(opts Options) *Printer {
	def := DefaultOptions()
	if opts.Indent <= 0 {
		opts.Indent = def.Indent
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = def.MaxDepth
	}
	return &Printer{opts: opts}
}

var defaultPrinter = New(DefaultOptions())

// Render renders v on a single line with the default options.
func Render(v any) string { return defaultPrinter.Render(v) }

// RenderIndented renders v across lines with the default options.
func RenderIndented(v any) string { return defaultPrinter.RenderIndented(v) }

// Render renders v on a single line.
func (p *Printer) Render(v any) string {
	var b strings.Builder
	p.write(&b, v, 0, false)
	return b.String()
}

// RenderIndented renders v with one property or element per line.
func (p *Printer) RenderIndented(v any) string {
	var b strings.Builder
	p.write(&b, v, 0, true)
	return b.String()
}

func (p *Printer) write(b *strings.Builder, v any, depth int, multiline bool) {
	if re, ok := v.(*regexp.Regexp); ok && re != nil {
		b.WriteString("/" + re.String() + "/")
		return
	}
	if value.IsHole(v) {
		b.WriteString(value.Hole.String())
		return
	}

	v = value.Resolve(v)
	switch value.KindOf(v) {
	case value.KindNull:
		b.WriteString("null")
	case value.KindUndefined:
		b.WriteString("undefined")
	case value.KindBool:
		b.WriteString(strconv.FormatBool(reflect.ValueOf(v).Bool()))
	case value.KindNumber:
		n, _ := value.AsNumber(v)
		b.WriteString(formatNumber(n))
	case value.KindString:
		b.WriteString(Quote(reflect.ValueOf(v).String()))
	case value.KindFunction:
		name := value.FuncName(v)
		if name == "" {
			name = "anonymous"
		}
		b.WriteString("[Function " + name + "]")
	case value.KindError:
		err := v.(error)
		name := "Error"
		if e, ok := err.(*value.Error); ok && e.Name != "" {
			name = e.Name
		}
		b.WriteString("[" + name + ": " + err.Error() + "]")
	case value.KindMatcher:
		b.WriteString(v.(value.AsymmetricMatcher).String())
	case value.KindArray:
		elems, _ := value.ViewArray(v)
		p.writeArray(b, elems, depth, multiline)
	case value.KindObject:
		view, _ := value.ViewObject(v)
		p.writeObject(b, view, depth, multiline)
	default:
		b.WriteString(renderOpaque(v))
	}
}

func (p *Printer) writeArray(b *strings.Builder, elems []any, depth int, multiline bool) {
	if depth >= p.opts.MaxDepth {
		b.WriteString("[Array]")
		return
	}
	if len(elems) == 0 {
		b.WriteString("Array []")
		return
	}
	b.WriteString("Array [")
	for i, e := range elems {
		if multiline {
			b.WriteString("\n")
			b.WriteString(p.pad(depth + 1))
		} else if i > 0 {
			b.WriteString(", ")
		}
		p.write(b, e, depth+1, multiline)
		if multiline {
			b.WriteString(",")
		}
	}
	if multiline {
		b.WriteString("\n" + p.pad(depth))
	}
	b.WriteString("]")
}

func (p *Printer) writeObject(b *strings.Builder, view value.ObjectView, depth int, multiline bool) {
	name := view.Class
	if name == "" {
		name = "Object"
	}
	if depth >= p.opts.MaxDepth {
		b.WriteString("[" + name + "]")
		return
	}
	if len(view.Keys) == 0 {
		b.WriteString(name + " {}")
		return
	}
	b.WriteString(name + " {")
	for i, k := range view.Keys {
		if multiline {
			b.WriteString("\n")
			b.WriteString(p.pad(depth + 1))
		} else if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Quote(k))
		b.WriteString(": ")
		p.write(b, view.Values[i], depth+1, multiline)
		if multiline {
			b.WriteString(",")
		}
	}
	if multiline {
		b.WriteString("\n" + p.pad(depth))
	}
	b.WriteString("}")
}

func (p *Printer) pad(depth int) string {
	return strings.Repeat(" ", depth*p.opts.Indent)
}

// Quote wraps s in double quotes, escaping only quotes and backslashes so
// multi-line strings stay readable.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func formatNumber(n value.Number) string {
	if n.IsInteger() {
		if n.Signed() {
			return strconv.FormatInt(n.Int(), 10)
		}
		return strconv.FormatUint(n.Uint(), 10)
	}
	f := n.Float()
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0 && math.Signbit(f):
		return "-0"
	case math.Abs(f) >= 1e21 || (f != 0 && math.Abs(f) < 1e-6):
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// renderOpaque handles values outside the model: structs without exported
// fields, channels, complex numbers and unsafe pointers.
func renderOpaque(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return typeName(v) + " " + s.String()
	}
	return "[" + typeName(v) + " " + spew.Sprintf("%v", v) + "]"
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
