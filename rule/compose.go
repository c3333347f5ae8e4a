package rule

import (
	"reflect"

	"github.com/acelot/struct/errtree"
)

type allOf []Validator

// AllOf accepts a value accepted by every validator. All failures are
// reported; a single failure is returned unchanged.
func AllOf(validators ...Validator) Validator {
	return allOf(validators)
}

func (a allOf) Validate(value any) error {
	var failed []*errtree.Violation

	for _, v := range a {
		if f := Violation(v, value); f != nil {
			failed = append(failed, f)
		}
	}

	switch len(failed) {
	case 0:
		return nil
	case 1:
		return failed[0]
	default:
		return errtree.Composite("allOf", "all of the rules must pass", failed...)
	}
}

type anyOf []Validator

// AnyOf accepts a value accepted by at least one validator.
func AnyOf(validators ...Validator) Validator {
	return anyOf(validators)
}

func (a anyOf) Validate(value any) error {
	if len(a) == 0 {
		return nil
	}

	failed := make([]*errtree.Violation, 0, len(a))

	for _, v := range a {
		f := Violation(v, value)
		if f == nil {
			return nil
		}

		failed = append(failed, f)
	}

	return errtree.Composite("anyOf", "at least one of the rules must pass", failed...)
}

type oneOf []Validator

// OneOf accepts a value accepted by exactly one validator.
func OneOf(validators ...Validator) Validator {
	return oneOf(validators)
}

func (o oneOf) Validate(value any) error {
	var failed []*errtree.Violation

	passed := 0

	for _, v := range o {
		if f := Violation(v, value); f != nil {
			failed = append(failed, f)
		} else {
			passed++
		}
	}

	switch {
	case passed == 1:
		return nil
	case passed > 1:
		return errtree.New("oneOf", "only one of the rules must pass")
	default:
		return errtree.Composite("oneOf", "one of the rules must pass", failed...)
	}
}

// Not accepts a value rejected by v.
func Not(v Validator, message string) Validator {
	return Func("not", message, func(value any) bool {
		return Violation(v, value) != nil
	})
}

// Optional accepts nil and otherwise delegates to v.
func Optional(v Validator) Validator {
	return ValidatorFunc(func(value any) error {
		if isNil(value) {
			return nil
		}

		return v.Validate(value)
	})
}

// Key validates the entry name of a map[string]any. A missing entry fails
// only when mandatory is set.
func Key(name string, v Validator, mandatory bool) Validator {
	return ValidatorFunc(func(value any) error {
		m, ok := value.(map[string]any)
		if !ok {
			return errtree.New("key", "must be an object").AtKey(name)
		}

		item, ok := m[name]
		if !ok {
			if mandatory {
				return errtree.New("key", "is required").AtKey(name)
			}

			return nil
		}

		if f := Violation(v, item); f != nil {
			return f.AtKey(name)
		}

		return nil
	})
}

// Each validates every element of a slice or array. Failures are keyed by
// element position.
func Each(v Validator) Validator {
	return ValidatorFunc(func(value any) error {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return errtree.New("each", "must be iterable")
		}

		var failed []*errtree.Violation

		for i := range rv.Len() {
			if f := Violation(v, rv.Index(i).Interface()); f != nil {
				failed = append(failed, f.AtIndex(i))
			}
		}

		if len(failed) == 0 {
			return nil
		}

		return errtree.Composite("each", "each item must be valid", failed...)
	})
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
