// Package fixture loads assertion cases from YAML files and evaluates them
// against a matcher registry. A fixture file looks like:
//
//	cases:
//	  - name: parse failure is a Left
//	    matcher: ToEqualLeft
//	    received: {_tag: Left, left: {code: 400}}
//	    args: [{code: 400}]
//	  - name: not a None
//	    matcher: ToBeNone
//	    not: true
//	    received: {_tag: Some, value: 1}
//
// Values use the value.Parse tags (!undefined, !hole, !error, !regexp and
// local class tags).
package fixture

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"outcomematch/internal/logging"
	"outcomematch/pkg/expect"
	"outcomematch/pkg/value"
)

// Case is one assertion.
type Case struct {
	File     string
	Name     string
	Matcher  string
	Negated  bool
	Received any
	Args     []any
}

// Label identifies the case in reports.
func (c Case) Label() string {
	return fmt.Sprintf("%s: %s", c.File, c.Name)
}

// Outcome is the verdict for one case.
type Outcome struct {
	Case     Case
	Passed   bool
	Message  string
	Err      error
	Duration time.Duration
}

// Report collects the outcomes of a run in file order.
type Report struct {
	Outcomes []Outcome
}

// Failed counts cases that did not pass, including errored ones.
func (r Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Passed {
			n++
		}
	}
	return n
}

// Parse reads the cases of one fixture document.
func Parse(file string, data []byte) ([]Case, error) {
	doc, err := value.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	root, ok := doc.(*value.Object)
	if !ok {
		return nil, fmt.Errorf("%s: fixture must be a mapping", file)
	}
	raw, _ := root.Get("cases")
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: cases must be a list", file)
	}

	cases := make([]Case, 0, len(items))
	for i, item := range items {
		c, err := parseCase(file, i, item)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func parseCase(file string, i int, item any) (Case, error) {
	obj, ok := item.(*value.Object)
	if !ok {
		return Case{}, fmt.Errorf("%s: case %d must be a mapping", file, i)
	}
	c := Case{File: file, Name: fmt.Sprintf("case %d", i), Received: value.Undefined}

	if v, ok := obj.Get("name"); ok {
		s, ok := v.(string)
		if !ok {
			return Case{}, fmt.Errorf("%s: case %d: name must be a string", file, i)
		}
		c.Name = s
	}
	v, _ := obj.Get("matcher")
	c.Matcher, ok = v.(string)
	if !ok || c.Matcher == "" {
		return Case{}, fmt.Errorf("%s: %s: matcher is required", file, c.Name)
	}
	if v, ok := obj.Get("not"); ok {
		if c.Negated, ok = v.(bool); !ok {
			return Case{}, fmt.Errorf("%s: %s: not must be a boolean", file, c.Name)
		}
	}
	if v, ok := obj.Get("received"); ok {
		c.Received = v
	}
	if v, ok := obj.Get("args"); ok {
		if c.Args, ok = v.([]any); !ok {
			return Case{}, fmt.Errorf("%s: %s: args must be a list", file, c.Name)
		}
	}
	return c, nil
}

// LoadFile reads and parses one fixture file.
func LoadFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(path, data)
}

// Load reads files concurrently and returns their cases in argument order.
func Load(ctx context.Context, paths []string) ([]Case, error) {
	perFile := make([][]Case, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for i, p := range paths {
		i, p := i, p
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			cases, err := LoadFile(p)
			if err != nil {
				return err
			}
			perFile[i] = cases
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []Case
	for _, cases := range perFile {
		all = append(all, cases...)
	}
	return all, nil
}

// Evaluate runs one case against reg.
func Evaluate(reg *expect.Registry, c Case) Outcome {
	start := time.Now()
	ok, msg, err := reg.Evaluate(c.Matcher, c.Negated, c.Received, c.Args...)
	return Outcome{Case: c, Passed: ok && err == nil, Message: msg, Err: err, Duration: time.Since(start)}
}

// Run loads paths and evaluates every case.
func Run(ctx context.Context, reg *expect.Registry, paths []string) (Report, error) {
	cases, err := Load(ctx, paths)
	if err != nil {
		return Report{}, err
	}
	report := Report{Outcomes: make([]Outcome, 0, len(cases))}
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Outcomes = append(report.Outcomes, Evaluate(reg, c))
	}
	logging.CLI().Debug("fixtures evaluated",
		zap.Int("files", len(paths)),
		zap.Int("cases", len(cases)),
		zap.Int("failed", report.Failed()))
	return report, nil
}
