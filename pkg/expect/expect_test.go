package expect

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"outcomematch/internal/config"
	"outcomematch/pkg/matchers"
	"outcomematch/pkg/outcome"
	"outcomematch/pkg/value"
)

func TestMain(m *testing.M) {
	matchers.Configure(config.OutputConfig{Indent: 2, MaxDepth: 10})
	goleak.VerifyTestMain(m)
}

// recorder captures failures instead of failing the running test.
type recorder struct {
	mu     sync.Mutex
	errors []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestThat_Passing(t *testing.T) {
	rec := &recorder{}
	assert.True(t, That(rec, outcome.Left("boom")).ToEqualLeft("boom"))
	assert.True(t, That(rec, outcome.Right(1)).ToBeRight())
	assert.True(t, That(rec, outcome.Right(1)).Not().ToBeLeft())
	assert.True(t, That(rec, outcome.Both(1, 2)).ToBeThese())
	assert.True(t, That(rec, outcome.Both(1, 2)).Not().ToBeEither())
	assert.True(t, That(rec, outcome.Some(1)).ToEqualSome(1))
	assert.True(t, That(rec, outcome.None()).ToBeNone())
	assert.True(t, That(rec, outcome.Left(errors.New("bad input"))).ToBeLeftErrorMatching(regexp.MustCompile("^bad")))
	assert.True(t, That(rec, map[string]any{"a": 1}).ToSubsetEqual(map[string]any{}))
	assert.Empty(t, rec.errors)
}

func TestThat_Failing(t *testing.T) {
	rec := &recorder{}
	assert.False(t, That(rec, outcome.Right(2)).ToEqualRight(1))
	assert.False(t, That(rec, outcome.Right(1)).Not().ToEqualRight(1))
	require.Len(t, rec.errors, 2)

	assert.Equal(t, "\nexpect(received).ToEqualRight(expectedRight)\n\nExpected Right: 1\nReceived Right: 2", rec.errors[0])
	assert.Equal(t, "\nexpect(received).Not().ToEqualRight(expectedRight)\n\nExpected Right: not 1", rec.errors[1])
}

func TestThat_AsymmetricArgs(t *testing.T) {
	rec := &recorder{}
	got := outcome.Right(map[string]any{
		"user":  value.NewObject(value.F("id", 3), value.F("name", "Ada")),
		"roles": []string{"admin", "dev"},
	})
	That(rec, got).ToEqualRight(map[string]any{
		"user":  matchers.ObjectContaining(map[string]any{"name": "Ada"}),
		"roles": matchers.ArrayContaining("dev"),
	})
	That(rec, []any{outcome.Left(1), outcome.None()}).ToEqual([]any{matchers.BeLeft(), matchers.BeOption()})
	assert.Empty(t, rec.errors)
}

func TestThat_UnknownMatcher(t *testing.T) {
	rec := &recorder{}
	assert.False(t, That(rec, 1).To("ToBeMaybe"))
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "unknown matcher: ToBeMaybe")
}

func TestThat_MatcherErrorFailsNegated(t *testing.T) {
	ok, msg, err := Default.Evaluate("ToEqualLeft", true, outcome.Left(1))
	assert.False(t, ok)
	assert.ErrorIs(t, err, matchers.ErrArity)
	assert.Contains(t, msg, "Matcher error: ToEqualLeft expects 1 argument, got 0")

	ok, _, err = Default.Evaluate("ToBeLeftErrorMatching", true, outcome.Left(1), 42)
	assert.False(t, ok)
	assert.ErrorIs(t, err, matchers.ErrInvalidArgument)

	rec := &recorder{}
	assert.False(t, That(rec, outcome.Left([]string{"x"})).Not().ToBeLeftWithErrorsMatching("x"))
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "Matcher error: expected an array of patterns, got \"x\"")
}

func TestRegistry_Custom(t *testing.T) {
	r := NewRegistry()
	r.Register("ToBeEven", func(received any, _ ...any) matchers.Result {
		n, ok := received.(int)
		return matchers.Result{Pass: ok && n%2 == 0, Message: func() string { return "expected an even number" }}
	})

	rec := &recorder{}
	assert.True(t, That(rec, 2).Using(r).To("toBeEven"))
	assert.False(t, That(rec, 3).Using(r).To("ToBeEven"))
	assert.Equal(t, []string{"\nexpected an even number"}, rec.errors)
	assert.Equal(t, []string{"ToBeEven"}, r.Names())
}

func TestDefault_HasEveryDefinition(t *testing.T) {
	for _, d := range matchers.Definitions() {
		_, ok := Default.Lookup(d.Name)
		assert.True(t, ok, d.Name)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	matchers.Register(r)

	var wg sync.WaitGroup
	rec := &recorder{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Register(fmt.Sprintf("Custom%d", i), matchers.Definitions()[0].Func())
			That(rec, outcome.Left(i)).Using(r).ToEqualLeft(i)
		}(i)
	}
	wg.Wait()
	assert.Empty(t, rec.errors)
	assert.Len(t, r.Names(), len(matchers.Definitions())+16)
}
