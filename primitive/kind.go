package primitive

import (
	"math"
	"reflect"
	"strings"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum enumerates the scalar kinds values can be converted between.
type KindEnum int

const (
	_ KindEnum = iota // zero value is the invalid kind

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named integer or string type

	// KindTotal is the number of kinds including the invalid zero kind.
	KindTotal = int(iota)
)

// kindTypes maps concrete kinds to their Go types. KindPrimitiveEnum has
// no single type and is absent.
var kindTypes = map[KindEnum]reflect.Type{
	KindInt:      reflect.TypeFor[int](),
	KindInt8:     reflect.TypeFor[int8](),
	KindInt16:    reflect.TypeFor[int16](),
	KindInt32:    reflect.TypeFor[int32](),
	KindInt64:    reflect.TypeFor[int64](),
	KindUint:     reflect.TypeFor[uint](),
	KindUint8:    reflect.TypeFor[uint8](),
	KindUint16:   reflect.TypeFor[uint16](),
	KindUint32:   reflect.TypeFor[uint32](),
	KindUint64:   reflect.TypeFor[uint64](),
	KindFloat32:  reflect.TypeFor[float32](),
	KindFloat64:  reflect.TypeFor[float64](),
	KindBool:     reflect.TypeFor[bool](),
	KindString:   reflect.TypeFor[string](),
	KindTime:     reflect.TypeFor[time.Time](),
	KindDuration: reflect.TypeFor[time.Duration](),
}

// kindNames holds the lowercase names accepted by ParseKind.
var kindNames = map[string]KindEnum{
	"int":      KindInt,
	"int8":     KindInt8,
	"int16":    KindInt16,
	"int32":    KindInt32,
	"int64":    KindInt64,
	"uint":     KindUint,
	"uint8":    KindUint8,
	"uint16":   KindUint16,
	"uint32":   KindUint32,
	"uint64":   KindUint64,
	"float32":  KindFloat32,
	"float64":  KindFloat64,
	"bool":     KindBool,
	"string":   KindString,
	"time":     KindTime,
	"duration": KindDuration,
}

// ParseKind resolves a Go type name ("int64", "string", "time",
// "duration") to its kind.
func ParseKind(name string) (KindEnum, bool) {
	k, ok := kindNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Type returns the Go type of a concrete kind, nil for the rest.
func (k KindEnum) Type() reflect.Type {
	return kindTypes[k]
}

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k KindEnum) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func (k KindEnum) IsSigned() bool {
	return k >= KindInt && k <= KindInt64
}

func (k KindEnum) IsUnsigned() bool {
	return k >= KindUint && k <= KindUint64
}

// Bits returns the width of a numeric kind. It panics for other kinds.
func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only numeric kinds have a bit width, but requested for: " + k.String())
	case KindInt, KindUint:
		bits := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			bits++
		}

		return bits
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

// Of returns the kind of a value's dynamic type.
func Of(value any) KindEnum {
	return FromReflectType(reflect.TypeOf(value))
}

// FromReflectType returns the kind of rtype. Named integer and string
// types other than time.Duration are KindPrimitiveEnum; unsupported types
// return the zero kind.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	for k, t := range kindTypes {
		if t == rtype {
			return k
		}
	}

	switch rtype.Kind() {
	case reflect.Int, reflect.String:
		return KindPrimitiveEnum
	default:
		return 0
	}
}
