package mapper

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/acelot/struct/primitive"
)

// Rule produces one output value from a Source. ok is false when the
// value is missing from the source and no step supplied one.
type Rule interface {
	Apply(src Source) (value any, ok bool, err error)
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(src Source) (any, bool, error)

func (f RuleFunc) Apply(src Source) (any, bool, error) {
	return f(src)
}

type constant struct {
	value any
}

func (c constant) Apply(Source) (any, bool, error) {
	return c.value, true, nil
}

// Value returns a rule that always produces v.
func Value(v any) Rule {
	return constant{value: v}
}

// step transforms the current value of a pipeline. present is false while
// the source field is missing.
type step func(value any, present bool) (any, bool, error)

// Field reads one source field and passes it through a pipeline of steps.
// Field values are immutable; every builder method returns a new pipeline.
type Field struct {
	raw   string
	path  Path
	err   error
	steps []step
}

// From returns a pipeline reading the field at path.
func From(path string) Field {
	p, err := ParsePath(path)
	return Field{raw: path, path: p, err: err}
}

// Key returns a pipeline reading the top-level field named exactly name.
// The name is not parsed, so it may hold any characters.
func Key(name string) Field {
	return Field{raw: name, path: Path{Segments: []Segment{{Name: name, Index: NoIndex}}}}
}

// Path returns the source path the pipeline reads.
func (f Field) Path() string {
	return f.raw
}

func (f Field) then(s step) Field {
	steps := make([]step, len(f.steps), len(f.steps)+1)
	copy(steps, f.steps)

	f.steps = append(steps, s)

	return f
}

// Apply reads the field and runs the pipeline.
func (f Field) Apply(src Source) (any, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}

	value, present := src.Lookup(f.path)

	for _, s := range f.steps {
		var err error

		value, present, err = s(value, present)
		if err != nil {
			return nil, false, err
		}
	}

	return value, present, nil
}

// Default substitutes v for a missing or nil value.
func (f Field) Default(v any) Field {
	return f.then(func(value any, present bool) (any, bool, error) {
		if !present || value == nil {
			return v, true, nil
		}

		return value, true, nil
	})
}

// Convert passes present non-nil values through fn.
func (f Field) Convert(fn func(any) (any, error)) Field {
	return f.then(func(value any, present bool) (any, bool, error) {
		if !present || value == nil {
			return value, present, nil
		}

		out, err := fn(value)
		if err != nil {
			return nil, false, err
		}

		return out, true, nil
	})
}

// As converts present non-nil values to kind. Without categories every
// conversion is allowed.
func (f Field) As(kind primitive.KindEnum, categories ...primitive.CategoryEnum) Field {
	allowed := primitive.CategoryAll
	if len(categories) > 0 {
		allowed = primitive.CategoryNone
		for _, c := range categories {
			allowed |= c
		}
	}

	return f.Convert(func(value any) (any, error) {
		return primitive.Convert(value, kind, allowed)
	})
}

// Trim removes leading and trailing whitespace from strings.
func (f Field) Trim() Field {
	return f.strings(strings.TrimSpace)
}

// Lower lowercases strings.
func (f Field) Lower() Field {
	return f.strings(strings.ToLower)
}

// Upper uppercases strings.
func (f Field) Upper() Field {
	return f.strings(strings.ToUpper)
}

// StripTags removes every HTML tag from strings, keeping the text.
func (f Field) StripTags() Field {
	policy := bluemonday.StrictPolicy()
	return f.strings(policy.Sanitize)
}

func (f Field) strings(fn func(string) string) Field {
	return f.then(func(value any, present bool) (any, bool, error) {
		if s, ok := value.(string); ok {
			return fn(s), present, nil
		}

		return value, present, nil
	})
}

// Target names the output of a rule.
type Target struct {
	Name string
	Rule Rule
}

// Output is a mapped value.
type Output struct {
	Name  string
	Value any
}

// TargetError is a rule failure for one target.
type TargetError struct {
	Name string
	Err  error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// Map applies every target rule to src in order. Missing values are
// skipped; rule failures are collected, not returned early.
func Map(src Source, targets ...Target) ([]Output, []*TargetError) {
	var (
		out    []Output
		failed []*TargetError
	)

	for _, t := range targets {
		value, ok, err := t.Rule.Apply(src)
		if err != nil {
			failed = append(failed, &TargetError{Name: t.Name, Err: err})
			continue
		}

		if ok {
			out = append(out, Output{Name: t.Name, Value: value})
		}
	}

	return out, failed
}
