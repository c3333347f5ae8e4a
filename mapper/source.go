package mapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidSource is returned by SourceOf for data it cannot read from.
var ErrInvalidSource = errors.New("invalid mapping source")

// Source is external data mapping rules read fields from.
type Source interface {
	// Lookup returns the value stored at path and whether it exists.
	Lookup(path Path) (any, bool)
}

// SourceOf wraps data into a Source. Supported: any Source,
// map[string]any, map[string]string, JSON documents as []byte or
// json.RawMessage, and structs or pointers to structs.
func SourceOf(data any) (Source, error) {
	switch d := data.(type) {
	case Source:
		return d, nil
	case json.RawMessage:
		return JSON(d)
	case []byte:
		return JSON(d)
	case map[string]any, map[string]string:
		return valueSource{root: d}, nil
	}

	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return valueSource{root: rv.Interface()}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return valueSource{root: rv.Interface()}, nil
		}
	}

	return nil, fmt.Errorf("%w: %T", ErrInvalidSource, data)
}

// jsonSource reads fields from a raw JSON document with gjson.
type jsonSource struct {
	doc []byte
}

// JSON returns a Source over a raw JSON object.
func JSON(doc []byte) (Source, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidSource)
	}

	if !gjson.ParseBytes(doc).IsObject() {
		return nil, fmt.Errorf("%w: JSON document is not an object", ErrInvalidSource)
	}

	return jsonSource{doc: doc}, nil
}

func (s jsonSource) Lookup(path Path) (any, bool) {
	res := gjson.GetBytes(s.doc, gjsonPath(path))
	if !res.Exists() {
		return nil, false
	}

	return res.Value(), true
}

var gjsonEscaper = strings.NewReplacer(
	`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`, `|`, `\|`, `#`, `\#`, `@`, `\@`,
	`!`, `\!`, `[`, `\[`, `{`, `\{`,
)

func gjsonPath(path Path) string {
	parts := make([]string, 0, len(path.Segments))
	for _, s := range path.Segments {
		if s.Index != NoIndex {
			parts = append(parts, strconv.Itoa(s.Index))
			continue
		}

		parts = append(parts, gjsonEscaper.Replace(s.Name))
	}

	return strings.Join(parts, ".")
}

// valueSource walks Go values: string-keyed maps, structs, slices and
// arrays. Struct fields are matched by json tag, then by exact name, then
// case-insensitively.
type valueSource struct {
	root any
}

func (s valueSource) Lookup(path Path) (any, bool) {
	cur := reflect.ValueOf(s.root)

	for _, seg := range path.Segments {
		next, ok := descend(cur, seg)
		if !ok {
			return nil, false
		}

		cur = next
	}

	if !cur.IsValid() {
		return nil, true
	}

	return cur.Interface(), true
}

func descend(v reflect.Value, seg Segment) (reflect.Value, bool) {
	v = indirect(v)
	if !v.IsValid() {
		return reflect.Value{}, false
	}

	if seg.Index != NoIndex {
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return reflect.Value{}, false
		}

		if seg.Index >= v.Len() {
			return reflect.Value{}, false
		}

		return v.Index(seg.Index), true
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}

		item := v.MapIndex(reflect.ValueOf(seg.Name).Convert(v.Type().Key()))
		if !item.IsValid() {
			return reflect.Value{}, false
		}

		return item, true
	case reflect.Struct:
		return structField(v, seg.Name)
	default:
		return reflect.Value{}, false
	}
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()

	fold := -1

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == "-" {
			continue
		}

		if tag == name || (tag == "" && f.Name == name) {
			return v.Field(i), true
		}

		if fold < 0 && strings.EqualFold(f.Name, name) {
			fold = i
		}
	}

	if fold >= 0 {
		return v.Field(fold), true
	}

	return reflect.Value{}, false
}
