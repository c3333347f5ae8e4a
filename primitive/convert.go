package primitive

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrConversion is wrapped by every conversion failure.
	ErrConversion = errors.New("conversion failed")
	// ErrNotAllowed is returned when no selected category covers a conversion.
	ErrNotAllowed = errors.New("conversion not allowed")
)

// Convert converts value to the Go type of kind to, using only conversions
// the allowed categories cover. A value that already has the target type is
// returned unchanged.
func Convert(value any, to KindEnum, allowed CategoryEnum) (any, error) {
	target := to.Type()
	if target == nil {
		return nil, fmt.Errorf("%w: unsupported target kind %s", ErrConversion, to)
	}

	from := Of(value)
	if from == 0 {
		return nil, fmt.Errorf("%w: unsupported source type %T", ErrConversion, value)
	}

	if from == to {
		return value, nil
	}

	if !allowed.Allows(from, to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrNotAllowed, from, to)
	}

	out, err := convert(value, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %s to %s: %w", ErrConversion, from, to, err)
	}

	return out, nil
}

func convert(value any, from, to KindEnum) (any, error) {
	rv := reflect.ValueOf(value)
	target := to.Type()

	switch {
	case from.IsNumber() && to.IsNumber():
		return rv.Convert(target).Interface(), nil

	case from == KindString && to.IsNumber():
		return parseNumber(rv.String(), to)

	case from.IsNumber() && to == KindString:
		return formatNumber(rv, from), nil

	case from.IsInteger() && to == KindBool:
		return !rv.IsZero(), nil

	case from == KindBool && to.IsInteger():
		var n int64
		if rv.Bool() {
			n = 1
		}

		return reflect.ValueOf(n).Convert(target).Interface(), nil

	case from == KindString && to == KindBool:
		return parseBool(rv.String())

	case from == KindBool && to == KindString:
		return strconv.FormatBool(rv.Bool()), nil

	case from == KindString && to == KindTime:
		return time.Parse(time.RFC3339Nano, rv.String())

	case from == KindTime && to == KindString:
		return value.(time.Time).Format(time.RFC3339Nano), nil

	case from.IsInteger() && to == KindTime:
		return time.Unix(toInt64(rv, from), 0).UTC(), nil

	case from == KindTime && to.IsInteger():
		return reflect.ValueOf(value.(time.Time).Unix()).Convert(target).Interface(), nil

	case from == KindString && to == KindDuration:
		return time.ParseDuration(rv.String())

	case from == KindDuration && to == KindString:
		return value.(time.Duration).String(), nil

	case from.IsInteger() && to == KindDuration:
		return time.Duration(toInt64(rv, from)), nil

	case from == KindDuration && to.IsInteger():
		return reflect.ValueOf(int64(value.(time.Duration))).Convert(target).Interface(), nil

	case from.IsFloat() && to == KindDuration:
		return time.Duration(rv.Float() * float64(time.Second)), nil

	case from == KindDuration && to.IsFloat():
		return reflect.ValueOf(value.(time.Duration).Seconds()).Convert(target).Interface(), nil

	case from == KindPrimitiveEnum && to == KindString:
		if s, ok := value.(fmt.Stringer); ok {
			return s.String(), nil
		}

		if rv.Kind() == reflect.String {
			return rv.String(), nil
		}

		return strconv.FormatInt(rv.Int(), 10), nil
	}

	return nil, errors.New("no converter")
}

func parseNumber(s string, to KindEnum) (any, error) {
	s = strings.TrimSpace(s)
	target := to.Type()

	switch {
	case to.IsSigned():
		n, err := strconv.ParseInt(s, 10, to.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(target).Interface(), nil
	case to.IsUnsigned():
		n, err := strconv.ParseUint(s, 10, to.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(target).Interface(), nil
	default:
		n, err := strconv.ParseFloat(s, to.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(target).Interface(), nil
	}
}

func formatNumber(rv reflect.Value, from KindEnum) string {
	switch {
	case from.IsSigned():
		return strconv.FormatInt(rv.Int(), 10)
	case from.IsUnsigned():
		return strconv.FormatUint(rv.Uint(), 10)
	default:
		return strconv.FormatFloat(rv.Float(), 'f', -1, from.Bits())
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

func toInt64(rv reflect.Value, from KindEnum) int64 {
	if from.IsUnsigned() {
		return int64(rv.Uint())
	}

	return rv.Int()
}
