package schema

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/samber/lo"
)

var (
	// ErrInvalidArgument reports a call the API contract forbids.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfBounds reports a lookup of something that is not declared.
	ErrOutOfBounds = errors.New("out of bounds")
)

// Schema is an ordered, immutable set of properties keyed by name.
type Schema struct {
	props []Prop
	index map[string]int
}

// New builds a schema from at least one property. When names collide the
// last property wins and keeps the position of the first.
func New(props ...Prop) (*Schema, error) {
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: schema needs at least one property", ErrInvalidArgument)
	}

	s := &Schema{index: make(map[string]int, len(props))}
	if err := s.merge(props); err != nil {
		return nil, err
	}

	return s, nil
}

// MustNew is like New but panics on error. Intended for package-level
// schema declarations.
func MustNew(props ...Prop) *Schema {
	s, err := New(props...)
	if err != nil {
		panic(err)
	}

	return s
}

func (s *Schema) merge(props []Prop) error {
	for _, p := range props {
		if p.name == "" {
			return fmt.Errorf("%w: property name must not be empty", ErrInvalidArgument)
		}

		if i, ok := s.index[p.name]; ok {
			s.props[i] = p
			continue
		}

		s.index[p.name] = len(s.props)
		s.props = append(s.props, p)
	}

	return nil
}

func (s *Schema) clone() *Schema {
	c := &Schema{
		props: make([]Prop, len(s.props)),
		index: make(map[string]int, len(s.index)),
	}

	copy(c.props, s.props)
	maps.Copy(c.index, s.index)

	return c
}

// With returns a schema with props added or replaced by name.
func (s *Schema) With(props ...Prop) (*Schema, error) {
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: no properties to add", ErrInvalidArgument)
	}

	c := s.clone()
	if err := c.merge(props); err != nil {
		return nil, err
	}

	return c, nil
}

// Without returns a schema lacking the named property. Removing an
// undeclared name is a no-op.
func (s *Schema) Without(name string) *Schema {
	if !s.Has(name) {
		return s
	}

	props := lo.Reject(s.props, func(p Prop, _ int) bool { return p.name == name })

	c := &Schema{props: props, index: make(map[string]int, len(props))}
	for i, p := range props {
		c.index[p.name] = i
	}

	return c
}

// Has reports whether a property named name is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Prop returns the named property.
func (s *Schema) Prop(name string) (Prop, error) {
	p, ok := s.Lookup(name)
	if !ok {
		return Prop{}, fmt.Errorf("%w: property %q is not declared", ErrOutOfBounds, name)
	}

	return p, nil
}

// Lookup returns the named property and whether it is declared.
func (s *Schema) Lookup(name string) (Prop, bool) {
	i, ok := s.index[name]
	if !ok {
		return Prop{}, false
	}

	return s.props[i], true
}

// Props returns the properties in declaration order.
func (s *Schema) Props() []Prop {
	return append([]Prop(nil), s.props...)
}

// Names returns the property names in declaration order.
func (s *Schema) Names() []string {
	return lo.Map(s.props, func(p Prop, _ int) string { return p.name })
}

func (s *Schema) Len() int {
	return len(s.props)
}

// All iterates over the properties in declaration order.
func (s *Schema) All() iter.Seq2[string, Prop] {
	return func(yield func(string, Prop) bool) {
		for _, p := range s.props {
			if !yield(p.name, p) {
				return
			}
		}
	}
}
