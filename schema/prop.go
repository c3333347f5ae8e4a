package schema

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/acelot/struct/mapper"
	"github.com/acelot/struct/rule"
)

// DefaultSource names the mapper every property has. It reads the field
// named like the property and cannot be removed.
const DefaultSource = "default"

// Prop describes one property: how it is validated, whether it must be
// present, its default value, how it is read from each data source and
// free-form metadata. Props are values; every With method returns a
// modified copy and leaves the receiver untouched.
type Prop struct {
	name         string
	validator    rule.Validator
	required     bool
	defaultValue mo.Option[any]
	mappers      map[string]mapper.Rule
	meta         map[string]any
}

// NewProp returns a required property named name accepting any value and
// mapped from the same-named field.
func NewProp(name string) Prop {
	return Prop{
		name:         name,
		validator:    rule.AlwaysValid(),
		required:     true,
		defaultValue: mo.None[any](),
		mappers:      map[string]mapper.Rule{DefaultSource: mapper.Key(name)},
		meta:         map[string]any{},
	}
}

func (p Prop) Name() string {
	return p.name
}

func (p Prop) Validator() rule.Validator {
	return p.validator
}

func (p Prop) IsRequired() bool {
	return p.required
}

// DefaultValue returns the value injected when a required property is
// absent.
func (p Prop) DefaultValue() mo.Option[any] {
	return p.defaultValue
}

func (p Prop) HasDefaultValue() bool {
	return p.defaultValue.IsPresent()
}

// WithValidator replaces the validator. A nil validator accepts every value.
func (p Prop) WithValidator(v rule.Validator) Prop {
	if v == nil {
		v = rule.AlwaysValid()
	}

	p.validator = v

	return p
}

// WithMapper registers the rule reading this property from source.
func (p Prop) WithMapper(r mapper.Rule, source string) Prop {
	p.mappers = maps.Clone(p.mappers)
	p.mappers[source] = r

	return p
}

// WithoutMapper removes the rule registered for source. The default
// mapper cannot be removed.
func (p Prop) WithoutMapper(source string) (Prop, error) {
	if source == DefaultSource {
		return p, fmt.Errorf("%w: the %q mapper of property %q cannot be removed",
			ErrInvalidArgument, DefaultSource, p.name)
	}

	p.mappers = maps.Clone(p.mappers)
	delete(p.mappers, source)

	return p, nil
}

// HasMapper reports whether a rule is registered for source.
func (p Prop) HasMapper(source string) bool {
	_, ok := p.mappers[source]
	return ok
}

// Mapper returns the rule registered for source.
func (p Prop) Mapper(source string) (mapper.Rule, error) {
	r, ok := p.mappers[source]
	if !ok {
		return nil, fmt.Errorf("%w: property %q has no %q mapper", ErrOutOfBounds, p.name, source)
	}

	return r, nil
}

// MapperFor returns the rule for source, falling back to the default
// mapper.
func (p Prop) MapperFor(source string) mapper.Rule {
	if r, ok := p.mappers[source]; ok {
		return r
	}

	return p.mappers[DefaultSource]
}

// Sources lists the sources with a registered rule, sorted.
func (p Prop) Sources() []string {
	sources := lo.Keys(p.mappers)
	slices.Sort(sources)

	return sources
}

// Required marks the property as mandatory.
func (p Prop) Required() Prop {
	p.required = true
	return p
}

// NotRequired marks the property as optional. Optional properties never
// receive their default value.
func (p Prop) NotRequired() Prop {
	p.required = false
	return p
}

func (p Prop) WithDefaultValue(v any) Prop {
	p.defaultValue = mo.Some(v)
	return p
}

func (p Prop) WithoutDefaultValue() Prop {
	p.defaultValue = mo.None[any]()
	return p
}

func (p Prop) WithMeta(key string, value any) Prop {
	p.meta = maps.Clone(p.meta)
	p.meta[key] = value

	return p
}

func (p Prop) WithoutMeta(key string) Prop {
	p.meta = maps.Clone(p.meta)
	delete(p.meta, key)

	return p
}

func (p Prop) HasMeta(key string) bool {
	_, ok := p.meta[key]
	return ok
}

// Meta returns the metadata stored under key, or fallback.
func (p Prop) Meta(key string, fallback any) any {
	if v, ok := p.meta[key]; ok {
		return v
	}

	return fallback
}

// MetaKeys lists the metadata keys, sorted.
func (p Prop) MetaKeys() []string {
	keys := lo.Keys(p.meta)
	slices.Sort(keys)

	return keys
}
