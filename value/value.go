// Package value holds the option values accepted by the style builder and
// converts them into JSON-compatible document fragments.
//
// Option values form a closed set. Concrete types:
//
//   - Null, Bool, Int, Float, String  (scalars, passed through)
//   - Symbol                          (enum-like identifier, key-normalized)
//   - List                            (ordered sequence)
//   - Tuple                           (fixed-size literal such as a zoom pair)
//   - Keyed                           (ordered key/value entries)
package value

// Value is an option value. Only types in this package implement it.
type Value interface {
	optionValue()
}

// Null is the JSON null.
type Null struct{}

// Bool is a boolean option.
type Bool bool

// Int is an integral number.
type Int int64

// Float is a floating point number.
type Float float64

// String is a plain string, copied to the document unchanged.
type String string

// Symbol is an identifier such as a layer type. It is written to the
// document through NormalizeKey, so Symbol("fill_extrusion") becomes
// "fill-extrusion".
type Symbol string

// List is an ordered sequence of values.
type List []Value

// Tuple is a fixed-size literal, emitted as a JSON array. Used for compact
// forms like a center pair or a light position triple.
type Tuple []Value

// Entry is a single key/value pair of a Keyed value.
type Entry struct {
	Key   string
	Value Value
}

// Keyed is an ordered set of entries. Keys are idiomatic snake_case names.
type Keyed []Entry

func (Null) optionValue()   {}
func (Bool) optionValue()   {}
func (Int) optionValue()    {}
func (Float) optionValue()  {}
func (String) optionValue() {}
func (Symbol) optionValue() {}
func (List) optionValue()   {}
func (Tuple) optionValue()  {}
func (Keyed) optionValue()  {}

// E builds an Entry.
func E(key string, v Value) Entry { return Entry{Key: key, Value: v} }

// Map builds a Keyed value from entries.
func Map(entries ...Entry) Keyed { return Keyed(entries) }

// Pair builds a two element Tuple of floats.
func Pair(a, b float64) Tuple { return Tuple{Float(a), Float(b)} }

// Triple builds a three element Tuple of floats.
func Triple(a, b, c float64) Tuple { return Tuple{Float(a), Float(b), Float(c)} }

// Get returns the value stored under key. Later entries win over earlier
// ones with the same key.
func (k Keyed) Get(key string) (Value, bool) {
	for i := len(k) - 1; i >= 0; i-- {
		if k[i].Key == key {
			return k[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the entry keys in order, without duplicates.
func (k Keyed) Keys() []string {
	seen := make(map[string]bool, len(k))
	keys := make([]string, 0, len(k))
	for _, e := range k {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		keys = append(keys, e.Key)
	}
	return keys
}
