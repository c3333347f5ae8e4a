package errtree

import (
	"errors"
	"strings"
)

// NoIndex marks a violation that is not bound to a position in a collection.
const NoIndex = -1

// Violation is a failed rule. Composite rules report their failing
// children in Related; keyed and positional rules bind the failure to a
// property name or a collection index.
type Violation struct {
	// Rule identifies the failing rule, e.g. "length" or "allOf".
	Rule string
	// Key is the property or map key the failure belongs to (if any).
	Key string
	// Index is the collection position the failure belongs to, or NoIndex.
	Index int
	// Message is the human-readable description.
	Message string
	// Related holds nested failures of composite rules.
	Related []*Violation
}

// New returns a leaf violation for the named rule.
func New(rule, message string) *Violation {
	return &Violation{Rule: rule, Index: NoIndex, Message: message}
}

// Composite returns a violation grouping the failures of child rules.
func Composite(rule, message string, related ...*Violation) *Violation {
	return &Violation{Rule: rule, Index: NoIndex, Message: message, Related: related}
}

// From converts err into a violation. Violations are returned as is,
// any other error becomes a leaf of the given rule.
func From(rule string, err error) *Violation {
	if err == nil {
		return nil
	}

	var v *Violation
	if errors.As(err, &v) {
		return v
	}

	return New(rule, err.Error())
}

// AtKey returns a copy of the violation bound to key. A violation already
// bound to a key or index is nested under the new key.
func (v *Violation) AtKey(key string) *Violation {
	c := v.unbound()
	c.Key = key

	return c
}

// AtIndex returns a copy of the violation bound to a collection position.
// A violation already bound to a key or index is nested under the index.
func (v *Violation) AtIndex(index int) *Violation {
	c := v.unbound()
	c.Index = index

	return c
}

func (v *Violation) unbound() *Violation {
	if v.Key != "" || v.Index != NoIndex {
		return Composite(v.Rule, "", v)
	}

	c := *v

	return &c
}

// IsLeaf reports whether the violation has no nested failures.
func (v *Violation) IsLeaf() bool {
	return len(v.Related) == 0
}

func (v *Violation) Error() string {
	if v.IsLeaf() || v.Message != "" {
		return v.Message
	}

	parts := make([]string, 0, len(v.Related))
	for _, r := range v.Related {
		parts = append(parts, r.Error())
	}

	return strings.Join(parts, "; ")
}
