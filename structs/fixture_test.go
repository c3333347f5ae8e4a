package structs

import (
	"fmt"
	"time"

	"github.com/acelot/struct/mapper"
	"github.com/acelot/struct/rule"
	"github.com/acelot/struct/schema"
)

const rfc3339Extended = "2006-01-02T15:04:05.000-07:00"

var birthday = time.Date(1988, 8, 8, 0, 0, 0, 0, time.UTC)

func parseDate(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected a date string, got %T", value)
	}

	return time.Parse(time.DateOnly, s)
}

func userSchema() *schema.Schema {
	return schema.MustNew(
		schema.NewProp("login").
			WithValidator(rule.AllOf(
				rule.StringType(),
				rule.Alnum(),
				rule.NoWhitespace(),
				rule.Length(0, 64),
			)),

		schema.NewProp("password").
			WithValidator(rule.AllOf(
				rule.StringType(),
				rule.Length(0, 256),
			)),

		schema.NewProp("name").
			WithValidator(rule.AllOf(
				rule.StringType(),
				rule.Length(0, 256),
			)).
			WithMapper(mapper.From("name").Trim().Default("John Doe"), "json").
			NotRequired(),

		schema.NewProp("birthday").
			WithValidator(rule.InstanceOf[time.Time]()).
			WithMapper(mapper.From("birthday").Convert(parseDate), "json").
			NotRequired(),

		schema.NewProp("isActive").
			WithValidator(rule.BoolType()).
			WithDefaultValue(true),
	)
}

// createUser formats dates and never exposes the password.
func createUser() *Type {
	return Define("CreateUser", userSchema(), WithSerializer(func(value any, prop schema.Prop) (any, error) {
		if t, ok := value.(time.Time); ok {
			return t.Format(rfc3339Extended), nil
		}

		if prop.Name() == "password" {
			return nil, ErrExclude
		}

		return value, nil
	}))
}
