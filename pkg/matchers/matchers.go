// Package matchers implements assertions over outcome values.
//
// Every matcher has the shape func(received, args...) Result. Result.Pass is
// decided by internal/compare alone; Result.Message builds the explanation
// lazily and reads as a negated explanation when Pass is true, which is the
// only time a host shows it for a passing result.
//
// Matchers reach a host test framework through the Registry interface, and
// every matcher doubles as an asymmetric matcher (see Asymmetric).
package matchers

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"outcomematch/internal/compare"
	"outcomematch/internal/config"
	"outcomematch/internal/diff"
	"outcomematch/internal/logging"
	"outcomematch/internal/printer"
	"outcomematch/internal/style"
)

var (
	// ErrUnknownMatcher is returned for names no definition carries.
	ErrUnknownMatcher = errors.New("unknown matcher")
	// ErrArity is returned when a matcher gets the wrong number of arguments.
	ErrArity = errors.New("wrong number of matcher arguments")
	// ErrInvalidArgument marks a matcher argument of the wrong shape.
	ErrInvalidArgument = errors.New("invalid matcher argument")
)

// Result is the verdict of one matcher invocation.
//
// Err is set when the matcher was misused rather than evaluated. Such a
// Result fails whether or not the assertion is negated.
type Result struct {
	Pass    bool
	Message func() string
	Err     error
}

// Func is a matcher as registered with a host.
type Func func(received any, args ...any) Result

// Registry is the host side of matcher registration.
type Registry interface {
	Register(name string, fn Func)
}

// Definition describes one matcher.
type Definition struct {
	Name string
	Args []string // argument names shown in the hint line
	fn   func(e *env, received any, args []any) Result
}

// Func returns the matcher, checking arity before evaluating.
func (d Definition) Func() Func {
	return func(received any, args ...any) Result {
		e := currentEnv()
		if len(args) != len(d.Args) {
			return e.matcherError(d.Name, d.Args, ErrArity,
				fmt.Sprintf("%s expects %s, got %d", d.Name, plural(len(d.Args), "argument"), len(args)))
		}
		res := d.fn(e, received, args)
		logging.Matcher().Debug("matcher evaluated",
			zap.String("name", d.Name),
			zap.Bool("pass", res.Pass),
			zap.Error(res.Err))
		return res
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Definitions returns every matcher in registration order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a definition by name, ignoring case, so "toEqualLeft" and
// "ToEqualLeft" name the same matcher.
func Lookup(name string) (Definition, bool) {
	for _, d := range definitions {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Definition{}, false
}

// Register registers every matcher with r.
func Register(r Registry) {
	for _, d := range definitions {
		r.Register(d.Name, d.Func())
	}
}

// Call evaluates the named matcher. Unknown names and arity mismatches are
// errors rather than failing Results.
func Call(name string, received any, args ...any) (Result, error) {
	d, ok := Lookup(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownMatcher, name)
	}
	if len(args) != len(d.Args) {
		return Result{}, fmt.Errorf("%w: %s expects %s, got %d", ErrArity, d.Name, plural(len(d.Args), "argument"), len(args))
	}
	return d.Func()(received, args...), nil
}

var definitions = []Definition{
	// Either
	{Name: "ToBeEither", fn: toBeEither},

	// Either or These
	{Name: "ToBeLeft", fn: toBeLeft},
	{Name: "ToBeRight", fn: toBeRight},
	{Name: "ToEqualLeft", Args: []string{"expectedLeft"}, fn: equalLeft(compare.Loose)},
	{Name: "ToStrictEqualLeft", Args: []string{"expectedLeft"}, fn: equalLeft(compare.Strict)},
	{Name: "ToSubsetEqualLeft", Args: []string{"expectedLeft"}, fn: equalLeft(compare.Subset)},
	{Name: "ToEqualRight", Args: []string{"expectedRight"}, fn: equalRight(compare.Loose)},
	{Name: "ToStrictEqualRight", Args: []string{"expectedRight"}, fn: equalRight(compare.Strict)},
	{Name: "ToSubsetEqualRight", Args: []string{"expectedRight"}, fn: equalRight(compare.Subset)},
	{Name: "ToBeLeftErrorMatching", Args: []string{"expectedErrorMessage"}, fn: toBeLeftErrorMatching},

	// These
	{Name: "ToBeThese", fn: toBeThese},
	{Name: "ToBeBoth", fn: toBeBoth},
	{Name: "ToEqualBoth", Args: []string{"expectedLeft", "expectedRight"}, fn: equalBoth(compare.Loose)},
	{Name: "ToStrictEqualBoth", Args: []string{"expectedLeft", "expectedRight"}, fn: equalBoth(compare.Strict)},
	{Name: "ToSubsetEqualBoth", Args: []string{"expectedLeft", "expectedRight"}, fn: equalBoth(compare.Subset)},

	// Option
	{Name: "ToBeOption", fn: toBeOption},
	{Name: "ToBeSome", fn: toBeSome},
	{Name: "ToBeNone", fn: toBeNone},
	{Name: "ToEqualSome", Args: []string{"expectedSome"}, fn: equalSome(compare.Loose)},
	{Name: "ToStrictEqualSome", Args: []string{"expectedSome"}, fn: equalSome(compare.Strict)},
	{Name: "ToSubsetEqualSome", Args: []string{"expectedSome"}, fn: equalSome(compare.Subset)},

	// Validation
	{Name: "ToBeLeftWithErrorsMatching", Args: []string{"expectedErrorsMatching"}, fn: toBeLeftWithErrorsMatching},

	// Plain values
	{Name: "ToEqual", Args: []string{"expected"}, fn: equalValue(compare.Loose)},
	{Name: "ToStrictEqual", Args: []string{"expected"}, fn: equalValue(compare.Strict)},
	{Name: "ToSubsetEqual", Args: []string{"expected"}, fn: equalValue(compare.Subset)},
}

// env is the rendering setup messages are built with.
type env struct {
	printer *printer.Printer
	differ  *diff.Differ
	palette style.Palette
}

func newEnv(cfg config.OutputConfig) *env {
	p := printer.New(printer.Options{Indent: cfg.Indent, MaxDepth: cfg.MaxDepth})
	return &env{
		printer: p,
		differ:  diff.New(p),
		palette: style.New(cfg.Color),
	}
}

var activeEnv atomic.Pointer[env]

// Configure sets how explanations are rendered from now on. Without a call,
// the settings come from config.Current.
func Configure(cfg config.OutputConfig) {
	activeEnv.Store(newEnv(cfg))
}

func currentEnv() *env {
	if e := activeEnv.Load(); e != nil {
		return e
	}
	activeEnv.CompareAndSwap(nil, newEnv(config.Current().Output))
	return activeEnv.Load()
}
