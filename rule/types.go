package rule

import (
	"fmt"
	"math"
	"reflect"
)

// StringType accepts string values.
func StringType() Validator {
	return Func("stringType", "must be a string", func(value any) bool {
		_, ok := value.(string)
		return ok
	})
}

// BoolType accepts bool values.
func BoolType() Validator {
	return Func("boolType", "must be a boolean", func(value any) bool {
		_, ok := value.(bool)
		return ok
	})
}

// IntType accepts integers of any width and floats without a fraction,
// the form JSON decoders produce.
func IntType() Validator {
	return Func("intType", "must be an integer", func(value any) bool {
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			return !math.IsInf(f, 0) && f == math.Trunc(f)
		default:
			return false
		}
	})
}

// NumberType accepts integers and floats.
func NumberType() Validator {
	return Func("numberType", "must be a number", func(value any) bool {
		_, ok := toFloat(value)
		return ok
	})
}

// InstanceOf accepts values whose dynamic type is T or implements T when
// T is an interface.
func InstanceOf[T any]() Validator {
	name := reflect.TypeFor[T]().String()

	return Func("instance", fmt.Sprintf("must be an instance of %s", name), func(value any) bool {
		_, ok := value.(T)
		return ok
	})
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
