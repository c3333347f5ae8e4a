// Package rule provides value validators.
//
// A Validator accepts a value or rejects it with an *errtree.Violation.
// Atomic rules check one property of a value (its type, its length, its
// format); composite rules combine other validators and report every
// failing child, so the resulting errtree mirrors the rejected data.
package rule

import (
	"github.com/acelot/struct/errtree"
)

// Validator checks a single value.
type Validator interface {
	// Validate returns nil when value is accepted, otherwise an error that
	// is, or wraps, an *errtree.Violation.
	Validate(value any) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(value any) error

func (f ValidatorFunc) Validate(value any) error {
	return f(value)
}

// check is a named predicate with a fixed failure message.
type check struct {
	name    string
	message string
	ok      func(any) bool
}

func (c check) Validate(value any) error {
	if c.ok(value) {
		return nil
	}

	return errtree.New(c.name, c.message)
}

// Func returns a validator built from a predicate. The name keys the
// failure in the error tree when several rules fail together.
func Func(name, message string, ok func(value any) bool) Validator {
	return check{name: name, message: message, ok: ok}
}

type alwaysValid struct{}

func (alwaysValid) Validate(any) error { return nil }

var always Validator = alwaysValid{}

// AlwaysValid returns the validator accepting every value. The same
// stateless instance is returned on every call.
func AlwaysValid() Validator {
	return always
}

// Violation runs v and converts its failure into a violation. It returns
// nil when the value is accepted.
func Violation(v Validator, value any) *errtree.Violation {
	if v == nil {
		return nil
	}

	return errtree.From("callback", v.Validate(value))
}
