package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// ErrUnsupported is returned by Of and FromDecoded for Go values that have
// no option value form.
var ErrUnsupported = errors.New("value: unsupported option value")

// Normalize converts v into a JSON-compatible fragment. Keys of Keyed values
// and Symbols pass through NormalizeKey. Normalize(nil) is nil.
func Normalize(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case String:
		return string(t)
	case Symbol:
		return NormalizeKey(string(t))
	case List:
		return normalizeSeq(t)
	case Tuple:
		return normalizeSeq(t)
	case Keyed:
		return NormalizeKeyed(t)
	default:
		panic(fmt.Sprintf("value: unhandled option value %T", v))
	}
}

// NormalizeKeyed converts k into a document mapping. A nil Keyed yields an
// empty, non-nil map.
func NormalizeKeyed(k Keyed) map[string]any {
	out := make(map[string]any, len(k))
	for _, e := range k {
		out[NormalizeKey(e.Key)] = Normalize(e.Value)
	}
	return out
}

func normalizeSeq(items []Value) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = Normalize(it)
	}
	return out
}

// Of converts a Go value into an option value. Maps become Keyed with
// sorted keys, slices become List, arrays become Tuple. Anything without an
// option form fails with ErrUnsupported.
func Of(v any) (Value, error) {
	return of(v, false)
}

// MustOf is Of that panics on error. Intended for literals in tests and
// examples.
func MustOf(v any) Value {
	out, err := Of(v)
	if err != nil {
		panic(err)
	}
	return out
}

// FromDecoded converts a value decoded from JSON or YAML. Strings written as
// ":name" become Symbol("name"); every other string stays a String.
func FromDecoded(v any) (Value, error) {
	return of(v, true)
}

// KeyedOf converts a Go map into a Keyed value.
func KeyedOf(m map[string]any) (Keyed, error) {
	if m == nil {
		return nil, nil
	}
	v, err := of(m, false)
	if err != nil {
		return nil, err
	}
	return v.(Keyed), nil
}

// KeyedFromDecoded is FromDecoded for a decoded mapping.
func KeyedFromDecoded(m map[string]any) (Keyed, error) {
	if m == nil {
		return nil, nil
	}
	v, err := of(m, true)
	if err != nil {
		return nil, err
	}
	return v.(Keyed), nil
}

func of(v any, decoded bool) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		if decoded && len(t) > 1 && strings.HasPrefix(t, ":") {
			return Symbol(t[1:]), nil
		}
		return String(t), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Keyed, 0, len(keys))
		for _, k := range keys {
			item, err := of(t[k], decoded)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out = append(out, Entry{Key: k, Value: item})
		}
		return out, nil
	case []any:
		out := make(List, len(t))
		for i, it := range t {
			item, err := of(it, decoded)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = item
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows int64", ErrUnsupported, u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return of(rv.String(), decoded)
	case reflect.Slice:
		out := make(List, rv.Len())
		for i := range out {
			item, err := of(rv.Index(i).Interface(), decoded)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = item
		}
		return out, nil
	case reflect.Array:
		out := make(Tuple, rv.Len())
		for i := range out {
			item, err := of(rv.Index(i).Interface(), decoded)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = item
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return of(m, decoded)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
}
