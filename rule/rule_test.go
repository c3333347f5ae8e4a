package rule

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acelot/struct/errtree"
)

func TestAtomicRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Validator
		value any
		ok    bool
	}{
		{"string ok", StringType(), "x", true},
		{"string bad", StringType(), 1, false},
		{"bool ok", BoolType(), true, true},
		{"bool bad", BoolType(), "true", false},
		{"int ok", IntType(), int64(3), true},
		{"int from json", IntType(), float64(3), true},
		{"int fraction", IntType(), 3.5, false},
		{"number ok", NumberType(), float32(1.5), true},
		{"number bad", NumberType(), "1", false},
		{"alnum ok", Alnum(), "superhacker42", true},
		{"alnum bad", Alnum(), "super hacker", false},
		{"alnum extra", Alnum('_'), "super_hacker", true},
		{"alnum non-string", Alnum(), 42, false},
		{"no whitespace ok", NoWhitespace(), "abc", true},
		{"no whitespace bad", NoWhitespace(), "a\tb", false},
		{"length ok", Length(0, 5), "héllo", true},
		{"length too long", Length(0, 4), "héllo", false},
		{"length slice", Length(1, -1), []int{1}, true},
		{"length map", Length(2, 2), map[string]int{"a": 1}, false},
		{"length non-sized", Length(0, 10), 5, false},
		{"not empty ok", NotEmpty(), "x", true},
		{"not empty string", NotEmpty(), "", false},
		{"not empty nil", NotEmpty(), nil, false},
		{"not empty zero", NotEmpty(), 0, false},
		{"regex ok", Regex(`^\d{4}$`), "1988", true},
		{"regex bad", Regex(`^\d{4}$`), "88", false},
		{"uuid string", UUID(), "8f14e45f-ceea-467a-9575-4c1d2a7ac5a2", true},
		{"uuid value", UUID(), uuid.New(), true},
		{"uuid bad", UUID(), "not-a-uuid", false},
		{"in ok", In("m", "f"), "f", true},
		{"in bad", In("m", "f"), "x", false},
		{"between ok", Between(1, 10), 10, true},
		{"between bad", Between(1, 10), 10.5, false},
		{"instance ok", InstanceOf[time.Time](), time.Now(), true},
		{"instance bad", InstanceOf[time.Time](), "1988-08-08", false},
		{"always", AlwaysValid(), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate(tt.value)
			if tt.ok {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			var v *errtree.Violation
			assert.True(t, errors.As(err, &v), "failure must be a violation")
		})
	}
}

func TestAlwaysValid_Singleton(t *testing.T) {
	assert.Equal(t, AlwaysValid(), AlwaysValid())
}

func TestInstanceOf_Message(t *testing.T) {
	err := InstanceOf[time.Time]().Validate("x")
	require.Error(t, err)
	assert.Equal(t, "must be an instance of time.Time", err.Error())
}

func TestAllOf(t *testing.T) {
	login := AllOf(StringType(), Alnum(), NoWhitespace(), Length(0, 64))

	assert.NoError(t, login.Validate("superhacker"))

	t.Run("single failure returned as is", func(t *testing.T) {
		err := AllOf(StringType(), Length(0, 3)).Validate("abcd")
		require.Error(t, err)

		v := errtree.From("", err)
		assert.Equal(t, "length", v.Rule)
		assert.True(t, v.IsLeaf())
	})

	t.Run("every failure reported", func(t *testing.T) {
		err := login.Validate("super hacker!")
		require.Error(t, err)

		want := map[any]any{
			"$alnum":        "must contain only letters (a-z) and digits (0-9)",
			"$noWhitespace": "must not contain whitespace",
		}
		if diff := cmp.Diff(want, errtree.Flatten(errtree.From("", err)).Plain()); diff != "" {
			t.Errorf("AllOf() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestAnyOfOneOf(t *testing.T) {
	strOrBool := AnyOf(StringType(), BoolType())
	assert.NoError(t, strOrBool.Validate("x"))
	assert.NoError(t, strOrBool.Validate(false))
	assert.Error(t, strOrBool.Validate(1))
	assert.NoError(t, AnyOf().Validate(1))

	exactlyOne := OneOf(StringType(), Length(0, 3))
	assert.NoError(t, exactlyOne.Validate("abcdef"))
	assert.Error(t, exactlyOne.Validate("abc"), "both rules pass")
	assert.Error(t, exactlyOne.Validate(1), "no rule passes")
}

func TestNotOptional(t *testing.T) {
	notString := Not(StringType(), "must not be a string")
	assert.NoError(t, notString.Validate(1))
	assert.EqualError(t, notString.Validate("x"), "must not be a string")

	opt := Optional(StringType())
	assert.NoError(t, opt.Validate(nil))
	assert.NoError(t, opt.Validate((*time.Time)(nil)))
	assert.Error(t, opt.Validate(1))
}

func TestKeyEach(t *testing.T) {
	address := AllOf(
		Key("city", StringType(), true),
		Key("zip", Regex(`^\d{5}$`), false),
	)

	assert.NoError(t, address.Validate(map[string]any{"city": "Berlin"}))

	err := address.Validate(map[string]any{"zip": "1"})
	require.Error(t, err)

	want := map[any]any{
		"city": "is required",
		"zip":  `must match pattern "^\\d{5}$"`,
	}
	if diff := cmp.Diff(want, errtree.Flatten(errtree.From("", err)).Plain()); diff != "" {
		t.Errorf("Key() mismatch (-want +got):\n%s", diff)
	}

	tags := Each(StringType())
	assert.NoError(t, tags.Validate([]any{"a", "b"}))
	assert.Error(t, tags.Validate(5))

	err = tags.Validate([]any{"a", 1, "c", false})
	require.Error(t, err)

	tree := errtree.Flatten(errtree.From("", err))
	assert.Equal(t, []any{1, 3}, tree.Keys())
}

func TestValidatorFunc(t *testing.T) {
	even := ValidatorFunc(func(value any) error {
		if n, ok := value.(int); ok && n%2 == 0 {
			return nil
		}

		return errors.New("must be even")
	})

	assert.NoError(t, even.Validate(2))

	v := Violation(even, 3)
	require.NotNil(t, v)
	assert.Equal(t, "callback", v.Rule)
	assert.Equal(t, "must be even", v.Message)
	assert.Nil(t, Violation(nil, 3))
}
