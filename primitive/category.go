package primitive

import (
	"strings"
)

// CategoryEnum is a bit set of conversion categories. A conversion between
// two kinds is allowed when one of its categories is selected.
type CategoryEnum int

// ConversionPair is a directed conversion between two kinds.
type ConversionPair struct {
	From, To KindEnum
}

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string
	CategoryNumericBool                           // int <-> bool as 0 and 1
	CategoryTextualBool                           // string <-> bool as yes/no, on/off, true/false
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time
	CategoryDuration                              // string(2h45m) <-> time.Duration
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration
	CategorySeconds                               // float(seconds) <-> time.Duration
	CategoryEnumString                            // string <-> named string or integer type

	CategoryAll  CategoryEnum = (1 << iota) - 1 // all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected
)

var categoryNames = map[string]CategoryEnum{
	"safe_number":   CategorySafeNumber,
	"unsafe_number": CategoryUnsafeNumber,
	"text_number":   CategoryTextNumber,
	"numeric_bool":  CategoryNumericBool,
	"textual_bool":  CategoryTextualBool,
	"datetime":      CategoryDatetime,
	"timestamp":     CategoryTimestamp,
	"duration":      CategoryDuration,
	"nanoseconds":   CategoryNanoseconds,
	"seconds":       CategorySeconds,
	"enum_string":   CategoryEnumString,
	"all":           CategoryAll,
	"none":          CategoryNone,
}

// ParseCategories combines named categories ("text_number", "datetime",
// "all", ...). Unknown names are returned as the second result.
func ParseCategories(names ...string) (CategoryEnum, []string) {
	var (
		result  CategoryEnum
		unknown []string
	)

	for _, name := range names {
		c, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			unknown = append(unknown, name)
			continue
		}

		result |= c
	}

	return result, unknown
}

// Has reports whether every category of other is selected in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

// CategoryOf returns the category that allows converting from one kind to
// another, or CategoryNone when no category does. Identity conversions of
// concrete kinds need no category and report CategoryAll.
func CategoryOf(from, to KindEnum) CategoryEnum {
	if from == to && from != KindPrimitiveEnum {
		return CategoryAll
	}

	pair := ConversionPair{from, to}
	for category, pairs := range conversionPairs {
		if _, ok := pairs[pair]; ok {
			return category
		}
	}

	return CategoryNone
}

// Allows reports whether a conversion from one kind to another is allowed
// by the selected categories.
func (c CategoryEnum) Allows(from, to KindEnum) bool {
	category := CategoryOf(from, to)
	return category != CategoryNone && c&category != 0
}

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

func init() {
	safe := safeNumberConversionPairs()

	conversionPairs = map[CategoryEnum]map[ConversionPair]struct{}{
		CategorySafeNumber:   safe,
		CategoryUnsafeNumber: {},
		CategoryTextNumber:   {},
		CategoryNumericBool:  {},
		CategoryTimestamp:    {},
		CategoryNanoseconds:  {},
		CategoryTextualBool: {
			{KindString, KindBool}: {},
			{KindBool, KindString}: {},
		},
		CategoryDatetime: {
			{KindString, KindTime}: {},
			{KindTime, KindString}: {},
		},
		CategoryDuration: {
			{KindString, KindDuration}: {},
			{KindDuration, KindString}: {},
		},
		CategorySeconds: {
			{KindFloat32, KindDuration}: {},
			{KindFloat64, KindDuration}: {},
			{KindDuration, KindFloat32}: {},
			{KindDuration, KindFloat64}: {},
		},
		CategoryEnumString: {
			{KindString, KindPrimitiveEnum}:        {},
			{KindPrimitiveEnum, KindString}:        {},
			{KindPrimitiveEnum, KindPrimitiveEnum}: {},
		},
	}

	both := func(category CategoryEnum, a, b KindEnum) {
		conversionPairs[category][ConversionPair{a, b}] = struct{}{}
		conversionPairs[category][ConversionPair{b, a}] = struct{}{}
	}

	for k := KindEnum(1); int(k) < KindTotal; k++ {
		if !k.IsNumber() {
			continue
		}

		both(CategoryTextNumber, k, KindString)

		for to := KindEnum(1); int(to) < KindTotal; to++ {
			if _, ok := safe[ConversionPair{k, to}]; to.IsNumber() && !ok {
				conversionPairs[CategoryUnsafeNumber][ConversionPair{k, to}] = struct{}{}
			}
		}

		if !k.IsInteger() {
			continue
		}

		both(CategoryNumericBool, k, KindBool)
		both(CategoryTimestamp, k, KindTime)

		if k != KindUint64 {
			both(CategoryNanoseconds, k, KindDuration)
		}
	}
}

func safeNumberConversionPairs() map[ConversionPair]struct{} {
	return map[ConversionPair]struct{}{
		{KindInt, KindInt}:   {}, // int can be any wide from 32 upto 64
		{KindInt, KindInt64}: {},

		{KindInt8, KindInt}:     {}, // int8 can be safely converted to any signed int
		{KindInt8, KindInt8}:    {},
		{KindInt8, KindInt16}:   {},
		{KindInt8, KindInt32}:   {},
		{KindInt8, KindInt64}:   {},
		{KindInt8, KindFloat32}: {},
		{KindInt8, KindFloat64}: {},

		{KindInt16, KindInt}:     {},
		{KindInt16, KindInt16}:   {}, // int16 omitting narrowing to int8
		{KindInt16, KindInt32}:   {},
		{KindInt16, KindInt64}:   {},
		{KindInt16, KindFloat32}: {},
		{KindInt16, KindFloat64}: {},

		{KindInt32, KindInt}:     {},
		{KindInt32, KindInt32}:   {}, // int32 omitting narrowing to int8/16
		{KindInt32, KindInt64}:   {},
		{KindInt32, KindFloat64}: {}, // int32 is wider than float32 mantissa

		{KindInt64, KindInt64}: {}, // int64 is the widest signed integer type

		{KindUint, KindUint}:   {}, // uint can be any wide from 32 upto 64
		{KindUint, KindUint64}: {},

		{KindUint8, KindUint}:    {}, // uint8 can be safely converted to any unsigned int
		{KindUint8, KindUint8}:   {},
		{KindUint8, KindUint16}:  {},
		{KindUint8, KindUint32}:  {},
		{KindUint8, KindUint64}:  {},
		{KindUint8, KindInt}:     {}, // also uint8 can be converted to any wider signed int
		{KindUint8, KindInt16}:   {},
		{KindUint8, KindInt32}:   {},
		{KindUint8, KindInt64}:   {},
		{KindUint8, KindFloat32}: {},
		{KindUint8, KindFloat64}: {},

		{KindUint16, KindUint}:    {},
		{KindUint16, KindUint16}:  {}, // uint16 omitting narrowing to uint8
		{KindUint16, KindUint32}:  {},
		{KindUint16, KindUint64}:  {},
		{KindUint16, KindInt}:     {}, // also uint16 can be converted to any wider signed int
		{KindUint16, KindInt32}:   {},
		{KindUint16, KindInt64}:   {},
		{KindUint16, KindFloat32}: {},
		{KindUint16, KindFloat64}: {},

		{KindUint32, KindUint32}:  {},
		{KindUint32, KindUint64}:  {}, // uint32 omitting narrowing to uint8/16
		{KindUint32, KindInt64}:   {}, // also only int64 is wide enough to hold uint32
		{KindUint32, KindFloat64}: {}, // uint32 is wider than float32 mantissa

		{KindUint64, KindUint64}: {}, // uint64 is the widest unsigned integer type

		{KindFloat32, KindFloat32}: {},
		{KindFloat32, KindFloat64}: {},

		{KindFloat64, KindFloat64}: {},
	}
}
