package definition

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/acelot/struct/rule"
)

// ErrInvalidParams is returned by a ValidatorFactory given unusable params.
var ErrInvalidParams = errors.New("invalid validator params")

// ValidatorFactory builds a validator from the params of a ValidatorDef.
type ValidatorFactory func(params []any) (rule.Validator, error)

// Transform converts a value read by a mapper.
type Transform func(value any) (any, error)

// Registry holds the validators and transforms a definition may name.
type Registry struct {
	validators map[string]ValidatorFactory
	transforms map[string]Transform
}

// NewRegistry creates a registry with the builtin validators and
// transforms.
func NewRegistry() *Registry {
	r := &Registry{
		validators: make(map[string]ValidatorFactory),
		transforms: make(map[string]Transform),
	}

	for name, v := range map[string]rule.Validator{
		"string":        rule.StringType(),
		"bool":          rule.BoolType(),
		"int":           rule.IntType(),
		"number":        rule.NumberType(),
		"no_whitespace": rule.NoWhitespace(),
		"not_empty":     rule.NotEmpty(),
		"uuid":          rule.UUID(),
		"time":          rule.InstanceOf[time.Time](),
	} {
		r.AddValidator(name, fixed(v))
	}

	r.AddValidator("alnum", alnum)
	r.AddValidator("length", length)
	r.AddValidator("between", between)
	r.AddValidator("regex", pattern)
	r.AddValidator("in", func(params []any) (rule.Validator, error) {
		if len(params) == 0 {
			return nil, fmt.Errorf("%w: in needs at least one value", ErrInvalidParams)
		}

		return rule.In(params...), nil
	})

	r.AddTransform("date", parseTime(time.DateOnly))
	r.AddTransform("datetime", parseTime(time.RFC3339Nano))
	r.AddTransform("split", func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("split: expected string, got %T", value)
		}

		parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string { return strings.TrimSpace(p) })

		return lo.Compact(parts), nil
	})

	return r
}

// AddValidator registers a validator factory, replacing any with the same
// name.
func (r *Registry) AddValidator(name string, f ValidatorFactory) {
	r.validators[name] = f
}

// AddTransform registers a transform, replacing any with the same name.
func (r *Registry) AddTransform(name string, t Transform) {
	r.transforms[name] = t
}

// HasValidator returns true if a validator with the given name exists.
func (r *Registry) HasValidator(name string) bool {
	_, exists := r.validators[name]
	return exists
}

// HasTransform returns true if a transform with the given name exists.
func (r *Registry) HasTransform(name string) bool {
	_, exists := r.transforms[name]
	return exists
}

// Validator builds the named validator.
func (r *Registry) Validator(def ValidatorDef) (rule.Validator, error) {
	f, ok := r.validators[def.Name]
	if !ok {
		return nil, fmt.Errorf("unknown validator %q", def.Name)
	}

	return f(def.Params)
}

// Transform returns the named transform, or nil if not found.
func (r *Registry) Transform(name string) Transform {
	return r.transforms[name]
}

// ValidatorNames returns all validator names, sorted.
func (r *Registry) ValidatorNames() []string {
	names := lo.Keys(r.validators)
	slices.Sort(names)

	return names
}

// TransformNames returns all transform names, sorted.
func (r *Registry) TransformNames() []string {
	names := lo.Keys(r.transforms)
	slices.Sort(names)

	return names
}

func fixed(v rule.Validator) ValidatorFactory {
	return func(params []any) (rule.Validator, error) {
		if len(params) > 0 {
			return nil, fmt.Errorf("%w: expected no params, got %d", ErrInvalidParams, len(params))
		}

		return v, nil
	}
}

func alnum(params []any) (rule.Validator, error) {
	var allowed []rune

	for _, p := range params {
		s, ok := p.(string)
		if !ok {
			return nil, fmt.Errorf("%w: alnum takes strings of extra characters, got %T", ErrInvalidParams, p)
		}

		allowed = append(allowed, []rune(s)...)
	}

	return rule.Alnum(allowed...), nil
}

// length takes [min] or [min, max]; a missing max is unbounded.
func length(params []any) (rule.Validator, error) {
	if len(params) == 0 || len(params) > 2 {
		return nil, fmt.Errorf("%w: length takes min and an optional max", ErrInvalidParams)
	}

	minLen, ok := intParam(params[0])
	if !ok || minLen < 0 {
		return nil, fmt.Errorf("%w: length min must be a non-negative integer", ErrInvalidParams)
	}

	maxLen := -1
	if len(params) == 2 {
		if maxLen, ok = intParam(params[1]); !ok || maxLen < minLen {
			return nil, fmt.Errorf("%w: length max must be an integer not below min", ErrInvalidParams)
		}
	}

	return rule.Length(minLen, maxLen), nil
}

func between(params []any) (rule.Validator, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("%w: between takes min and max", ErrInvalidParams)
	}

	minVal, okMin := floatParam(params[0])
	maxVal, okMax := floatParam(params[1])

	if !okMin || !okMax || maxVal < minVal {
		return nil, fmt.Errorf("%w: between needs numbers with min <= max", ErrInvalidParams)
	}

	return rule.Between(minVal, maxVal), nil
}

func pattern(params []any) (rule.Validator, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("%w: regex takes one pattern", ErrInvalidParams)
	}

	s, ok := params[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: regex pattern must be a string", ErrInvalidParams)
	}

	if _, err := regexp.Compile(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	return rule.Regex(s), nil
}

func parseTime(layout string) Transform {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			return time.Parse(layout, v)
		default:
			return nil, fmt.Errorf("expected time string, got %T", value)
		}
	}
}

func intParam(p any) (int, bool) {
	switch v := p.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}

	return 0, false
}

func floatParam(p any) (float64, bool) {
	switch v := p.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}

	return 0, false
}
