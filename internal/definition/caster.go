package definition

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
	ErrCastRejected         = errors.New("caster rejected the value")
)

var errorType = reflect.TypeFor[error]()

// Caster is a typed Go function usable as a Transform.
type Caster struct {
	Src, Dst reflect.Type
	HasBool  bool
	HasErr   bool

	fn reflect.Value
}

// ParseCaster inspects fn and returns a Caster if it is a valid caster
// function.
//
// Supports signatures:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
func ParseCaster(fn any) (Caster, error) {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src, dst := fnType.In(0), fnType.Out(0)
	if isDoublePointer(src) || isDoublePointer(dst) {
		return Caster{}, ErrDoublePointer
	}

	caster := Caster{Src: src, Dst: dst, fn: fnVal}

	switch fnType.NumOut() {
	case 1:
		return caster, nil

	case 2:
		switch last := fnType.Out(1); {
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case last == errorType:
			caster.HasErr = true
		default:
			return Caster{}, ErrIsNotACaster
		}

		return caster, nil

	case 3:
		if fnType.Out(1).Kind() != reflect.Bool || fnType.Out(2) != errorType {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true

		return caster, nil

	default:
		return Caster{}, ErrIsNotACaster
	}
}

// Transform adapts the caster. Values not assignable to Src are rejected;
// a false bool result is reported as ErrCastRejected.
func (c Caster) Transform() Transform {
	return func(value any) (any, error) {
		in := reflect.ValueOf(value)

		switch {
		case !in.IsValid():
			if !canBeNil(c.Src) {
				return nil, fmt.Errorf("cannot cast nil to %s", c.Src)
			}

			in = reflect.Zero(c.Src)
		case in.Type().AssignableTo(c.Src):
		case in.Type().ConvertibleTo(c.Src) && in.Kind() == c.Src.Kind():
			in = in.Convert(c.Src)
		default:
			return nil, fmt.Errorf("cannot cast %s to %s", in.Type(), c.Src)
		}

		out := c.fn.Call([]reflect.Value{in})

		if c.HasErr {
			if err, _ := out[len(out)-1].Interface().(error); err != nil {
				return nil, err
			}
		}

		if c.HasBool && !out[1].Bool() {
			return nil, fmt.Errorf("%w: %v", ErrCastRejected, value)
		}

		return out[0].Interface(), nil
	}
}

// AddCaster registers a typed Go function as a transform.
func (r *Registry) AddCaster(name string, fn any) error {
	c, err := ParseCaster(fn)
	if err != nil {
		return fmt.Errorf("caster %q: %w", name, err)
	}

	r.AddTransform(name, c.Transform())

	return nil
}

func isDoublePointer(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Pointer
}

func canBeNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
