package structs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/acelot/struct/errtree"
	"github.com/acelot/struct/internal/match"
	"github.com/acelot/struct/mapper"
	"github.com/acelot/struct/rule"
	"github.com/acelot/struct/schema"
)

// ErrExclude is returned by a Serializer to omit a property from the
// projection.
var ErrExclude = errors.New("exclude property")

// Serializer transforms a property value for the JSON projection. Return
// ErrExclude to omit the property.
type Serializer func(value any, prop schema.Prop) (any, error)

// Type is a named struct type: a schema plus the projection hook shared
// by all its instances.
type Type struct {
	name       string
	schema     *schema.Schema
	serializer Serializer
}

// TypeOption configures a Type.
type TypeOption func(*Type)

// WithSerializer sets the hook applied to every projected value.
func WithSerializer(s Serializer) TypeOption {
	return func(t *Type) {
		t.serializer = s
	}
}

// Define declares a struct type. It panics on a nil schema.
func Define(name string, s *schema.Schema, opts ...TypeOption) *Type {
	if s == nil {
		panic("structs: type " + name + " defined without a schema")
	}

	t := &Type{name: name, schema: s}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *Type) Name() string {
	return t.name
}

func (t *Type) Schema() *schema.Schema {
	return t.schema
}

// Field is a property name with its value.
type Field struct {
	Name  string
	Value any
}

// Option tunes a single construction.
type Option func(*options)

type options struct {
	partial        bool
	hydrate        []string
	hydrateMissing bool
}

// Partial treats every property as optional for this construction. The
// schema is not changed and the resulting instance keeps the mode for
// Set and Delete.
func Partial() Option {
	return func(o *options) {
		o.partial = true
	}
}

// Hydrate makes MapFrom store the Hydrated placeholder for the named
// properties instead of mapping them.
func Hydrate(names ...string) Option {
	return func(o *options) {
		o.hydrate = append(o.hydrate, names...)
	}
}

// HydrateMissing makes MapFrom store the Hydrated placeholder for every
// property its mapper finds no value for.
func HydrateMissing() Option {
	return func(o *options) {
		o.hydrateMissing = true
	}
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// New validates data and builds an instance. Supplied properties are
// assigned in schema order, followed by injected defaults.
func (t *Type) New(data map[string]any, opts ...Option) (*Struct, error) {
	fields := make([]Field, 0, len(data))

	for _, name := range t.schema.Names() {
		if v, ok := data[name]; ok {
			fields = append(fields, Field{Name: name, Value: v})
		}
	}

	extra := lo.Filter(lo.Keys(data), func(k string, _ int) bool { return !t.schema.Has(k) })
	slices.Sort(extra)

	for _, name := range extra {
		fields = append(fields, Field{Name: name, Value: data[name]})
	}

	return t.build(fields, collect(opts))
}

// NewFields validates fields and builds an instance keeping their order.
// A repeated name overrides the earlier value in place.
func (t *Type) NewFields(fields []Field, opts ...Option) (*Struct, error) {
	return t.build(fields, collect(opts))
}

// Parse is New returning a Result.
func (t *Type) Parse(data map[string]any, opts ...Option) mo.Result[*Struct] {
	return mo.TupleToResult(t.New(data, opts...))
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(data map[string]any, opts ...Option) *Struct {
	return t.Parse(data, opts...).MustGet()
}

// MapFrom reads every property from data with its mapper for source,
// falling back to the default mapper, and builds an instance from the
// result. Values missing from data are skipped.
func (t *Type) MapFrom(data any, source string, opts ...Option) (*Struct, error) {
	o := collect(opts)

	src, err := mapper.SourceOf(data)
	if err != nil {
		return nil, fmt.Errorf("map %s from %q: %w", t.name, source, err)
	}

	targets := make([]mapper.Target, 0, t.schema.Len())
	for _, p := range t.schema.Props() {
		r := p.MapperFor(source)
		if slices.Contains(o.hydrate, p.Name()) {
			r = mapper.Value(Hydrated{})
		}

		targets = append(targets, mapper.Target{Name: p.Name(), Rule: r})
	}

	out, failed := mapper.Map(src, targets...)

	if len(failed) > 0 {
		related := lo.Map(failed, func(f *mapper.TargetError, _ int) *errtree.Violation {
			return errtree.New("mapper", f.Err.Error()).AtKey(f.Name)
		})

		return nil, errtree.NewValidationError(errtree.KindInvalidValue,
			errtree.Flatten(errtree.Composite("allOf", "", related...)))
	}

	fields := lo.Map(out, func(o mapper.Output, _ int) Field {
		return Field{Name: o.Name, Value: o.Value}
	})

	if o.hydrateMissing {
		for _, name := range t.schema.Names() {
			if !lo.ContainsBy(fields, func(f Field) bool { return f.Name == name }) {
				fields = append(fields, Field{Name: name, Value: Hydrated{}})
			}
		}
	}

	return t.build(fields, o)
}

func (t *Type) build(input []Field, o options) (*Struct, error) {
	fields := dedupe(input)

	if err := t.checkKeys(fields); err != nil {
		return nil, err
	}

	for _, p := range t.schema.Props() {
		if !p.IsRequired() || !p.HasDefaultValue() || indexOf(fields, p.Name()) >= 0 {
			continue
		}

		fields = append(fields, Field{Name: p.Name(), Value: p.DefaultValue().MustGet()})
	}

	var failed []*errtree.Violation

	for _, p := range t.schema.Props() {
		i := indexOf(fields, p.Name())
		if i < 0 {
			if p.IsRequired() && !o.partial {
				failed = append(failed, errtree.New("key", "is required").AtKey(p.Name()))
			}

			continue
		}

		if IsHydrated(fields[i].Value) {
			continue
		}

		if v := rule.Violation(p.Validator(), fields[i].Value); v != nil {
			failed = append(failed, v.AtKey(p.Name()))
		}
	}

	if len(failed) > 0 {
		return nil, errtree.NewValidationError(errtree.KindInvalidValue,
			errtree.Flatten(errtree.Composite("allOf", "", failed...)))
	}

	return &Struct{typ: t, fields: fields, partial: o.partial}, nil
}

func (t *Type) checkKeys(fields []Field) error {
	var tree errtree.Tree

	for _, f := range fields {
		if t.schema.Has(f.Name) {
			continue
		}

		msg := fmt.Sprintf("Property %q not defined in schema", f.Name)
		if hint, ok := match.Suggest(f.Name, t.schema.Names()); ok {
			msg += fmt.Sprintf(", did you mean %q?", hint)
		}

		tree = tree.With(f.Name, errtree.Leaf(msg))
	}

	if tree.Len() == 0 {
		return nil
	}

	return errtree.NewValidationError(errtree.KindUnknownProperty, tree)
}

func dedupe(fields []Field) []Field {
	out := make([]Field, 0, len(fields))

	for _, f := range fields {
		if i := indexOf(out, f.Name); i >= 0 {
			out[i].Value = f.Value
			continue
		}

		out = append(out, f)
	}

	return out
}

func indexOf(fields []Field, name string) int {
	return slices.IndexFunc(fields, func(f Field) bool { return f.Name == name })
}
