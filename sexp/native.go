package sexp

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Marshal converts a Go value to text, much as encoding/json would.  See
// FromNative for what is accepted.
func Marshal(v interface{}) (string, error) {
	val, err := FromNative(v)
	if err != nil {
		return "", err
	}
	return Encode(val)
}

// Unmarshal parses text and returns it as plain Go values.  See ToNative.
func Unmarshal(text string) (interface{}, error) {
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return ToNative(v), nil
}

// FromNative converts ordinary Go data into a Value.
//
// Booleans, strings and all integer and float kinds are atoms.  Slices and
// arrays become Sequences.  Maps with string keys become Mappings with their
// keys in sorted order.  Pointers and interfaces are followed.  A Value is
// returned as is, and an encoding.TextMarshaler becomes Text.
//
// Structs become Mappings of their exported fields in declaration order.  The
// key is the field name unless a `sexp:"name"` tag gives another; a tag of
// "-" skips the field and ",omitempty" skips it when it holds its zero value.
// Embedded structs are not flattened; they are keyed by their type name.
//
// Anything else, including nil, funcs, channels and complex numbers, fails
// with ErrUnsupportedType.  A nil pointer or interface field must be tagged
// omitempty to be left out.  Self-referencing data fails with ErrTooDeep.
func FromNative(v interface{}) (Value, error) {
	return fromNative(reflect.ValueOf(v), DefaultMaxDepth)
}

func fromNative(rv reflect.Value, budget int) (Value, error) {
	if !rv.IsValid() {
		return nil, fmt.Errorf("nil: %w", ErrUnsupportedType)
	}
	if rv.CanInterface() {
		if v, ok := rv.Interface().(Value); ok {
			if m, isMap := v.(*Mapping); !isMap || m != nil {
				return v, nil
			}
		}
		if tm, ok := rv.Interface().(encoding.TextMarshaler); ok && !isNilPtr(rv) {
			b, err := tm.MarshalText()
			if err != nil {
				return nil, fmt.Errorf("marshaling %v: %w", rv.Type(), err)
			}
			return Text(b), nil
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Boolean(rv.Bool()), nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil, fmt.Errorf("nil %v: %w", rv.Type(), ErrUnsupportedType)
		}
		if budget <= 0 {
			return nil, ErrTooDeep
		}
		return fromNative(rv.Elem(), budget-1)
	case reflect.Slice, reflect.Array:
		if budget <= 0 {
			return nil, ErrTooDeep
		}
		seq := make(Sequence, rv.Len())
		for i := range seq {
			item, err := fromNative(rv.Index(i), budget-1)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			seq[i] = item
		}
		return seq, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key %v: %w", rv.Type().Key(), ErrUnsupportedType)
		}
		if budget <= 0 {
			return nil, ErrTooDeep
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			kv := reflect.ValueOf(k).Convert(rv.Type().Key())
			item, err := fromNative(rv.MapIndex(kv), budget-1)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, item)
		}
		return m, nil
	case reflect.Struct:
		if budget <= 0 {
			return nil, ErrTooDeep
		}
		return fromStruct(rv, budget-1)
	}
	return nil, fmt.Errorf("%v: %w", rv.Type(), ErrUnsupportedType)
}

func isNilPtr(rv reflect.Value) bool {
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func fromStruct(rv reflect.Value, budget int) (Value, error) {
	m := NewMapping()
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, opts := f.Name, ""
		if tag, ok := f.Tag.Lookup("sexp"); ok {
			if tag == "-" {
				continue
			}
			if comma := strings.IndexByte(tag, ','); comma >= 0 {
				tag, opts = tag[:comma], tag[comma+1:]
			}
			if tag != "" {
				name = tag
			}
		}
		fv := rv.Field(i)
		if opts == "omitempty" && fv.IsZero() {
			continue
		}
		item, err := fromNative(fv, budget)
		if err != nil {
			return nil, fmt.Errorf("field %v: %w", f.Name, err)
		}
		m.Set(name, item)
	}
	return m, nil
}

// ToNative converts a Value into float64, string, bool, []interface{} and
// map[string]interface{}, the same shapes encoding/json produces.  Mapping
// order is lost.
func ToNative(v Value) interface{} {
	switch v := v.(type) {
	case Number:
		return float64(v)
	case Text:
		return string(v)
	case Boolean:
		return bool(v)
	case Sequence:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = ToNative(item)
		}
		return out
	case *Mapping:
		if v == nil {
			return nil
		}
		out := make(map[string]interface{}, v.Len())
		v.Range(func(k string, item Value) bool {
			out[k] = ToNative(item)
			return true
		})
		return out
	}
	return nil
}
