package definition

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the root of a struct definition file.
type File struct {
	// Version of the definition format.
	Version string `yaml:"version,omitempty"`
	// Types declared in the file.
	Types []TypeDef `yaml:"types"`
}

// TypeDef declares one struct type.
type TypeDef struct {
	Name  string    `yaml:"name"`
	Props []PropDef `yaml:"props"`
}

// PropDef declares one property of a type.
type PropDef struct {
	Name string `yaml:"name"`
	// Required defaults to true when omitted.
	Required *bool `yaml:"required,omitempty"`
	// Default is injected for a required property left out of the data.
	// A null default is the same as no default.
	Default    any                  `yaml:"default,omitempty"`
	Validators []ValidatorDef       `yaml:"validators,omitempty"`
	Mappers    map[string]MapperDef `yaml:"mappers,omitempty"`
	// Exclude leaves the property out of JSON projections.
	Exclude bool `yaml:"exclude,omitempty"`
	// Format is the Go time layout used to project time values.
	Format string         `yaml:"format,omitempty"`
	Meta   map[string]any `yaml:"meta,omitempty"`
}

// IsRequired reports the effective required flag.
func (p *PropDef) IsRequired() bool {
	return p.Required == nil || *p.Required
}

// ValidatorDef names a registered validator with its parameters. In YAML it
// is either a bare name or a mapping with name and params.
type ValidatorDef struct {
	Name   string `yaml:"name"`
	Params []any  `yaml:"params,omitempty"`
}

// UnmarshalYAML accepts a scalar name or a full mapping.
func (v *ValidatorDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&v.Name)

	case yaml.MappingNode:
		type plain ValidatorDef

		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}

		*v = ValidatorDef(p)

		return nil

	default:
		return fmt.Errorf("line %d: expected validator name or mapping", node.Line)
	}
}

// MarshalYAML writes parameterless validators as a bare name.
func (v ValidatorDef) MarshalYAML() (any, error) {
	if len(v.Params) == 0 {
		return v.Name, nil
	}

	type plain ValidatorDef

	return plain(v), nil
}

// MapperDef describes how a property is read from one source. Steps run
// in a fixed order: transform, trim, lower, upper, strip_tags, as, default.
type MapperDef struct {
	// From is the path to read; the property name when empty.
	From       string   `yaml:"from,omitempty"`
	Transform  string   `yaml:"transform,omitempty"`
	Trim       bool     `yaml:"trim,omitempty"`
	Lower      bool     `yaml:"lower,omitempty"`
	Upper      bool     `yaml:"upper,omitempty"`
	StripTags  bool     `yaml:"strip_tags,omitempty"`
	As         string   `yaml:"as,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
	Default    any      `yaml:"default,omitempty"`
}
