package rule

import (
	"fmt"
	"reflect"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Alnum accepts strings made of ASCII letters and digits only. Extra
// runes listed in allowed are accepted too.
func Alnum(allowed ...rune) Validator {
	return Func("alnum", "must contain only letters (a-z) and digits (0-9)", func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}

		for _, r := range s {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				continue
			}

			if !lo.Contains(allowed, r) {
				return false
			}
		}

		return true
	})
}

// NoWhitespace accepts strings without whitespace runes. Non-strings are
// rejected.
func NoWhitespace() Validator {
	return Func("noWhitespace", "must not contain whitespace", func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}

		for _, r := range s {
			if unicode.IsSpace(r) {
				return false
			}
		}

		return true
	})
}

// Length accepts strings (counted in runes), slices, arrays and maps whose
// length lies in [min, max]. A negative max means unbounded.
func Length(minLen, maxLen int) Validator {
	message := fmt.Sprintf("must have a length between %d and %d", minLen, maxLen)
	if maxLen < 0 {
		message = fmt.Sprintf("must have a length of at least %d", minLen)
	}

	return Func("length", message, func(value any) bool {
		n, ok := lengthOf(value)
		if !ok {
			return false
		}

		return n >= minLen && (maxLen < 0 || n <= maxLen)
	})
}

// NotEmpty rejects nil, zero-length values and zero values.
func NotEmpty() Validator {
	return Func("notEmpty", "must not be empty", func(value any) bool {
		if isNil(value) {
			return false
		}

		if n, ok := lengthOf(value); ok {
			return n > 0
		}

		return !reflect.ValueOf(value).IsZero()
	})
}

// Regex accepts strings matching pattern. It panics on an invalid pattern.
func Regex(pattern string) Validator {
	re := regexp.MustCompile(pattern)

	return Func("regex", fmt.Sprintf("must match pattern %q", pattern), func(value any) bool {
		s, ok := value.(string)
		return ok && re.MatchString(s)
	})
}

// UUID accepts strings holding a UUID in any form uuid.Parse understands,
// and uuid.UUID values.
func UUID() Validator {
	return Func("uuid", "must be a valid UUID", func(value any) bool {
		switch v := value.(type) {
		case uuid.UUID:
			return true
		case string:
			_, err := uuid.Parse(v)
			return err == nil
		default:
			return false
		}
	})
}

func lengthOf(value any) (int, bool) {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}
