package definition

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/acelot/struct/internal/diagnostic"
	"github.com/acelot/struct/internal/match"
	"github.com/acelot/struct/mapper"
	"github.com/acelot/struct/primitive"
	"github.com/acelot/struct/rule"
	"github.com/acelot/struct/schema"
	"github.com/acelot/struct/structs"
)

// ErrInvalidDefinition is returned by Build when Check reports errors.
var ErrInvalidDefinition = errors.New("invalid definition")

// Meta keys set on props built from a definition.
const (
	MetaExclude = "exclude"
	MetaFormat  = "format"
)

// Check lints a definition against the registry. It reports every finding
// rather than stopping at the first.
func Check(f *File, reg *Registry) *diagnostic.Diagnostics {
	c := newCompiler(reg)
	c.file(f)

	return c.diags
}

// Build compiles every type of the definition. It fails with
// ErrInvalidDefinition when Check reports errors; warnings are ignored.
func Build(f *File, reg *Registry) (map[string]*structs.Type, error) {
	c := newCompiler(reg)
	types := c.file(f)

	if err := c.diags.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	return types, nil
}

type compiler struct {
	reg   *Registry
	diags *diagnostic.Diagnostics
}

func newCompiler(reg *Registry) *compiler {
	if reg == nil {
		reg = NewRegistry()
	}

	return &compiler{reg: reg, diags: &diagnostic.Diagnostics{}}
}

func (c *compiler) file(f *File) map[string]*structs.Type {
	if f == nil {
		c.diags.AddError("definition_is_nil", "definition file is nil", "", "")
		return nil
	}

	if len(f.Types) == 0 {
		c.diags.AddWarning("no_types", "definition declares no types", "", "")
	}

	types := make(map[string]*structs.Type, len(f.Types))
	seen := make(map[string]struct{}, len(f.Types))

	for i := range f.Types {
		td := &f.Types[i]

		if td.Name == "" {
			c.diags.AddError("empty_type_name", fmt.Sprintf("type #%d has no name", i), "", "")
			continue
		}

		if _, ok := seen[td.Name]; ok {
			c.diags.AddError("duplicate_type", fmt.Sprintf("duplicate type %q", td.Name), td.Name, "")
			continue
		}

		seen[td.Name] = struct{}{}

		if t := c.typeDef(td); t != nil {
			types[td.Name] = t
		}
	}

	return types
}

func (c *compiler) typeDef(td *TypeDef) *structs.Type {
	if len(td.Props) == 0 {
		c.diags.AddError("no_props", "type declares no props", td.Name, "")
		return nil
	}

	props := make([]schema.Prop, 0, len(td.Props))
	seen := make(map[string]struct{}, len(td.Props))

	for i := range td.Props {
		pd := &td.Props[i]

		if pd.Name == "" {
			c.diags.AddError("empty_prop_name", fmt.Sprintf("prop #%d has no name", i), td.Name, "")
			continue
		}

		if _, ok := seen[pd.Name]; ok {
			c.diags.AddError("duplicate_prop", fmt.Sprintf("duplicate prop %q", pd.Name), td.Name, pd.Name)
			continue
		}

		seen[pd.Name] = struct{}{}

		props = append(props, c.prop(td.Name, pd))
	}

	s, err := schema.New(props...)
	if err != nil {
		c.diags.AddError("invalid_schema", err.Error(), td.Name, "")
		return nil
	}

	return structs.Define(td.Name, s, structs.WithSerializer(serialize))
}

func (c *compiler) prop(typeName string, pd *PropDef) schema.Prop {
	p := schema.NewProp(pd.Name)
	if !pd.IsRequired() {
		p = p.NotRequired()
	}

	validators := make([]rule.Validator, 0, len(pd.Validators))

	for _, vd := range pd.Validators {
		if !c.reg.HasValidator(vd.Name) {
			c.unknown("unknown_validator", "validator", vd.Name, typeName, pd.Name, c.reg.ValidatorNames())
			continue
		}

		v, err := c.reg.Validator(vd)
		if err != nil {
			c.diags.AddError("invalid_params", fmt.Sprintf("validator %q: %v", vd.Name, err), typeName, pd.Name)
			continue
		}

		validators = append(validators, v)
	}

	switch len(validators) {
	case 0:
	case 1:
		p = p.WithValidator(validators[0])
	default:
		p = p.WithValidator(rule.AllOf(validators...))
	}

	if pd.Default != nil {
		if !pd.IsRequired() {
			c.diags.AddWarning("default_not_applied",
				"default of an optional prop is never injected", typeName, pd.Name)
		}

		if v := rule.Violation(p.Validator(), pd.Default); v != nil {
			c.diags.AddError("invalid_default", fmt.Sprintf("default %v: %s", pd.Default, v.Error()), typeName, pd.Name)
		}

		p = p.WithDefaultValue(pd.Default)
	}

	for _, source := range sortedKeys(pd.Mappers) {
		if source == "" {
			c.diags.AddError("empty_source", "mapper source has no name", typeName, pd.Name)
			continue
		}

		md := pd.Mappers[source]
		p = p.WithMapper(c.mapper(typeName, pd.Name+"@"+source, pd.Name, &md), source)
	}

	if pd.Exclude {
		p = p.WithMeta(MetaExclude, true)
	}

	if pd.Format != "" {
		p = p.WithMeta(MetaFormat, pd.Format)
	}

	for _, k := range sortedKeys(pd.Meta) {
		p = p.WithMeta(k, pd.Meta[k])
	}

	return p
}

func (c *compiler) mapper(typeName, where, propName string, md *MapperDef) mapper.Field {
	f := mapper.Key(propName)

	if md.From != "" {
		if _, err := mapper.ParsePath(md.From); err != nil {
			c.diags.AddError("invalid_path", err.Error(), typeName, where)
		}

		f = mapper.From(md.From)
	}

	if md.Transform != "" {
		if t := c.reg.Transform(md.Transform); t != nil {
			f = f.Convert(t)
		} else {
			c.unknown("unknown_transform", "transform", md.Transform, typeName, where, c.reg.TransformNames())
		}
	}

	if md.Trim {
		f = f.Trim()
	}

	if md.Lower {
		f = f.Lower()
	}

	if md.Upper {
		f = f.Upper()
	}

	if md.StripTags {
		f = f.StripTags()
	}

	if md.As != "" {
		kind, ok := primitive.ParseKind(md.As)
		if !ok {
			c.diags.AddError("unknown_kind", fmt.Sprintf("unknown kind %q", md.As), typeName, where)
		}

		categories := primitive.CategoryAll
		if len(md.Categories) > 0 {
			var unknown []string

			categories, unknown = primitive.ParseCategories(md.Categories...)
			for _, u := range unknown {
				c.diags.AddError("unknown_category", fmt.Sprintf("unknown category %q", u), typeName, where)
			}
		}

		if ok {
			f = f.As(kind, categories)
		}
	} else if len(md.Categories) > 0 {
		c.diags.AddWarning("categories_without_as", "categories are ignored without as", typeName, where)
	}

	if md.Default != nil {
		f = f.Default(md.Default)
	}

	return f
}

func (c *compiler) unknown(code, what, name, typeName, path string, known []string) {
	msg := fmt.Sprintf("unknown %s %q", what, name)

	if hint, ok := match.Suggest(name, known); ok {
		c.diags.AddError(code, msg, typeName, path, hint)
		return
	}

	c.diags.AddError(code, msg, typeName, path)
}

// serialize honors the exclude and format metadata of a prop.
func serialize(value any, p schema.Prop) (any, error) {
	if exclude, _ := p.Meta(MetaExclude, false).(bool); exclude {
		return nil, structs.ErrExclude
	}

	if layout, _ := p.Meta(MetaFormat, "").(string); layout != "" {
		if t, ok := value.(time.Time); ok {
			return t.Format(layout), nil
		}
	}

	return value, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)

	return keys
}
