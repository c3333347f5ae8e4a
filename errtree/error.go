package errtree

import (
	"encoding/json"
	"errors"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a ValidationError.
type Kind int

const (
	// KindUnknownProperty reports input keys that are not declared.
	KindUnknownProperty Kind = iota
	// KindInvalidValue reports declared properties that failed validation.
	KindInvalidValue
)

// ErrValidation is the sentinel wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the full failure tree of a rejected input.
type ValidationError struct {
	Kind Kind
	Tree Tree
}

// NewValidationError wraps a tree into a ValidationError.
func NewValidationError(kind Kind, tree Tree) *ValidationError {
	return &ValidationError{Kind: kind, Tree: tree}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Tree.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MarshalJSON renders the error as {"kind": ..., "errors": tree}.
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string `json:"kind"`
		Errors Tree   `json:"errors"`
	}{
		Kind:   e.Kind.String(),
		Errors: e.Tree,
	})
}

// AsValidation extracts a ValidationError from err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}
