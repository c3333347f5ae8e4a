package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acelot/struct/mapper"
	"github.com/acelot/struct/rule"
)

func TestNewProp(t *testing.T) {
	p := NewProp("login")

	assert.Equal(t, "login", p.Name())
	assert.True(t, p.IsRequired())
	assert.False(t, p.HasDefaultValue())
	assert.Equal(t, rule.AlwaysValid(), p.Validator())
	assert.Equal(t, []string{DefaultSource}, p.Sources())
	assert.Empty(t, p.MetaKeys())

	m, err := p.Mapper(DefaultSource)
	require.NoError(t, err)
	assert.Equal(t, "login", m.(mapper.Field).Path())

	src, err := mapper.SourceOf(map[string]any{"first name": "Ada"})
	require.NoError(t, err)

	v, present, err := NewProp("first name").MapperFor(DefaultSource).Apply(src)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "Ada", v)

	_, present, err = NewProp("café").MapperFor(DefaultSource).Apply(src)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestProp_CopyOnWrite(t *testing.T) {
	base := NewProp("name")

	updated := base.
		WithValidator(rule.StringType()).
		NotRequired().
		WithDefaultValue("John Doe").
		WithMapper(mapper.From("profile.name").Trim(), "json").
		WithMeta("label", "Full name")

	assert.True(t, base.IsRequired())
	assert.False(t, base.HasDefaultValue())
	assert.False(t, base.HasMapper("json"))
	assert.False(t, base.HasMeta("label"))

	assert.False(t, updated.IsRequired())
	assert.Equal(t, "John Doe", updated.DefaultValue().MustGet())
	assert.True(t, updated.HasMapper("json"))
	assert.Equal(t, []string{DefaultSource, "json"}, updated.Sources())
	assert.Equal(t, "Full name", updated.Meta("label", nil))
	assert.Equal(t, "fallback", updated.Meta("missing", "fallback"))

	stripped := updated.WithoutDefaultValue().WithoutMeta("label").Required()
	assert.False(t, stripped.HasDefaultValue())
	assert.False(t, stripped.HasMeta("label"))
	assert.True(t, stripped.IsRequired())
	assert.True(t, updated.HasMeta("label"), "original keeps its metadata")

	assert.Equal(t, rule.AlwaysValid(), updated.WithValidator(nil).Validator())
}

func TestProp_Mappers(t *testing.T) {
	p := NewProp("birthday").WithMapper(mapper.From("dob"), "json")

	without, err := p.WithoutMapper("json")
	require.NoError(t, err)
	assert.False(t, without.HasMapper("json"))
	assert.True(t, p.HasMapper("json"))

	_, err = p.WithoutMapper(DefaultSource)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = p.Mapper("xml")
	require.ErrorIs(t, err, ErrOutOfBounds)

	assert.Equal(t, "dob", p.MapperFor("json").(mapper.Field).Path())
	assert.Equal(t, "birthday", p.MapperFor("xml").(mapper.Field).Path())
}

func TestSchema_New(t *testing.T) {
	_, err := New()
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(NewProp(""))
	require.ErrorIs(t, err, ErrInvalidArgument)

	assert.Panics(t, func() { MustNew() })

	s, err := New(
		NewProp("login"),
		NewProp("password"),
		NewProp("login").NotRequired(),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"login", "password"}, s.Names())
	assert.Equal(t, 2, s.Len())

	login, err := s.Prop("login")
	require.NoError(t, err)
	assert.False(t, login.IsRequired(), "last definition wins")

	_, err = s.Prop("email")
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSchema_WithWithout(t *testing.T) {
	s := MustNew(NewProp("login"), NewProp("password"))

	_, err := s.With()
	require.ErrorIs(t, err, ErrInvalidArgument)

	extended, err := s.With(NewProp("name"), NewProp("login").WithDefaultValue("guest"))
	require.NoError(t, err)
	assert.Equal(t, []string{"login", "password", "name"}, extended.Names())
	assert.Equal(t, 2, s.Len(), "original schema is unchanged")

	login, _ := extended.Lookup("login")
	assert.True(t, login.HasDefaultValue())

	login, _ = s.Lookup("login")
	assert.False(t, login.HasDefaultValue())

	same := s.Without("nonexistent")
	assert.Equal(t, s.Len(), same.Len())

	reduced := extended.Without("password")
	assert.Equal(t, []string{"login", "name"}, reduced.Names())
	assert.False(t, reduced.Has("password"))
	assert.True(t, extended.Has("password"))

	name, err := reduced.Prop("name")
	require.NoError(t, err)
	assert.Equal(t, "name", name.Name())
}

func TestSchema_All(t *testing.T) {
	s := MustNew(NewProp("a"), NewProp("b"), NewProp("c"))

	var names []string
	for name := range s.All() {
		names = append(names, name)
		if name == "b" {
			break
		}
	}

	assert.Equal(t, []string{"a", "b"}, names)

	props := s.Props()
	props[0] = NewProp("z")
	assert.Equal(t, []string{"a", "b", "c"}, s.Names())
}
