package structs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"reflect"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/acelot/struct/schema"
)

// ErrUndefinedProperty is wrapped by UndefinedPropertyError.
var ErrUndefinedProperty = errors.New("undefined property")

// UndefinedPropertyError reports direct access to a property that is not
// assigned on an instance.
type UndefinedPropertyError struct {
	Type string
	Name string
}

func (e *UndefinedPropertyError) Error() string {
	return fmt.Sprintf("%s: %s.%s", ErrUndefinedProperty, e.Type, e.Name)
}

func (e *UndefinedPropertyError) Unwrap() error {
	return ErrUndefinedProperty
}

// Hydrated marks a property that exists and is considered valid but whose
// value has not been loaded. It passes every validator and is left out of
// projections.
type Hydrated struct{}

func (Hydrated) String() string {
	return "<hydrated>"
}

// IsHydrated reports whether v is the Hydrated placeholder. Only the
// Hydrated value counts; pointers to it are ordinary values.
func IsHydrated(v any) bool {
	_, ok := v.(Hydrated)
	return ok
}

// Struct is an immutable, validated instance of a Type. Set and Delete
// return new instances.
type Struct struct {
	typ     *Type
	fields  []Field
	partial bool
}

// Type returns the type the instance was built for.
func (s *Struct) Type() *Type {
	return s.typ
}

// Schema returns the schema of the instance's type.
func (s *Struct) Schema() *schema.Schema {
	return s.typ.schema
}

// Has reports whether key is assigned on this instance.
func (s *Struct) Has(key string) bool {
	return indexOf(s.fields, key) >= 0
}

// Get returns the value of key, or fallback when it is not assigned.
func (s *Struct) Get(key string, fallback any) any {
	return s.Lookup(key).OrElse(fallback)
}

// Lookup returns the value of key if assigned.
func (s *Struct) Lookup(key string) mo.Option[any] {
	if i := indexOf(s.fields, key); i >= 0 {
		return mo.Some(s.fields[i].Value)
	}

	return mo.None[any]()
}

// Value returns the value of key or an UndefinedPropertyError.
func (s *Struct) Value(key string) (any, error) {
	if i := indexOf(s.fields, key); i >= 0 {
		return s.fields[i].Value, nil
	}

	return nil, &UndefinedPropertyError{Type: s.typ.name, Name: key}
}

// IsHydrated reports whether key holds the Hydrated placeholder.
func (s *Struct) IsHydrated(key string) bool {
	return IsHydrated(s.Get(key, nil))
}

// Set returns a new instance with key set to value. The whole data set is
// validated again; on failure the receiver stays usable.
func (s *Struct) Set(key string, value any) (*Struct, error) {
	fields := s.Fields()

	if i := indexOf(fields, key); i >= 0 {
		fields[i].Value = value
	} else {
		fields = append(fields, Field{Name: key, Value: value})
	}

	return s.typ.build(fields, options{partial: s.partial})
}

// Delete returns a new instance without key. It fails when key is required
// and has no default.
func (s *Struct) Delete(key string) (*Struct, error) {
	fields := lo.Reject(s.fields, func(f Field, _ int) bool { return f.Name == key })

	return s.typ.build(fields, options{partial: s.partial})
}

// All iterates over the assigned properties in assignment order.
func (s *Struct) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, f := range s.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Len returns the number of assigned properties.
func (s *Struct) Len() int {
	return len(s.fields)
}

// Keys returns the assigned property names in assignment order.
func (s *Struct) Keys() []string {
	return lo.Map(s.fields, func(f Field, _ int) string { return f.Name })
}

// Fields returns a copy of the assigned properties in assignment order.
func (s *Struct) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// ToMap returns the assigned properties as a map.
func (s *Struct) ToMap() map[string]any {
	return lo.SliceToMap(s.fields, func(f Field) (string, any) { return f.Name, f.Value })
}

// Equal reports whether both instances share a type and hold deeply equal
// values for the same properties.
func (s *Struct) Equal(other *Struct) bool {
	if s == nil || other == nil {
		return s == other
	}

	if s.typ != other.typ || len(s.fields) != len(other.fields) {
		return false
	}

	for _, f := range s.fields {
		v, ok := other.Lookup(f.Name).Get()
		if !ok || !reflect.DeepEqual(f.Value, v) {
			return false
		}
	}

	return true
}

// Projection is an ordered set of serialized properties.
type Projection []Field

// Map returns the projection as a map.
func (p Projection) Map() map[string]any {
	return lo.SliceToMap(p, func(f Field) (string, any) { return f.Name, f.Value })
}

// MarshalJSON encodes the projection as an object in field order.
func (p Projection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, f := range p {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", f.Name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Project serializes the assigned properties in schema order. Hydrated
// placeholders and properties the type's serializer excludes are left out.
func (s *Struct) Project() (Projection, error) {
	out := make(Projection, 0, len(s.fields))

	for _, p := range s.typ.schema.Props() {
		value, ok := s.Lookup(p.Name()).Get()
		if !ok || IsHydrated(value) {
			continue
		}

		if s.typ.serializer != nil {
			var err error

			value, err = s.typ.serializer(value, p)
			if errors.Is(err, ErrExclude) {
				continue
			}

			if err != nil {
				return nil, fmt.Errorf("serialize %s.%s: %w", s.typ.name, p.Name(), err)
			}
		}

		out = append(out, Field{Name: p.Name(), Value: value})
	}

	return out, nil
}

// MarshalJSON encodes the projection of the instance.
func (s *Struct) MarshalJSON() ([]byte, error) {
	p, err := s.Project()
	if err != nil {
		return nil, err
	}

	return p.MarshalJSON()
}

// String renders the instance for debugging.
func (s *Struct) String() string {
	var buf bytes.Buffer

	buf.WriteString(s.typ.name + "{")

	for i, f := range s.fields {
		if i > 0 {
			buf.WriteString(", ")
		}

		fmt.Fprintf(&buf, "%s: %v", f.Name, f.Value)
	}

	buf.WriteByte('}')

	return buf.String()
}
