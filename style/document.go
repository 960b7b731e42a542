// Package style builds MapLibre style documents (style specification
// version 8).
//
// A Document is an immutable value. Every builder function takes a Document
// and returns a new one, or an error and no document; the Document passed in
// is never changed. Independent chains may start from the same Document.
//
//	doc, err := style.New(value.Map(
//		value.E("center", value.Pair(-74.5, 40)),
//		value.E("zoom", value.Int(6)),
//	))
//	doc, err = style.AddSource(doc, "provinces", value.Map(
//		value.E("type", value.Symbol("geojson")),
//		value.E("data", value.String("https://example.com/provinces.geojson")),
//	))
//	doc, err = style.AddLayer(doc, value.Map(
//		value.E("id", value.String("provinces")),
//		value.E("type", value.Symbol("fill")),
//		value.E("source", value.String("provinces")),
//		value.E("paint", value.Map(value.E("fill_color", value.String("#4A9661")))),
//	))
package style

import (
	"reflect"
	"sort"

	json "github.com/goccy/go-json"
)

// Version is the style specification version written to every document.
const Version = 8

// Root keys of a style document.
const (
	keyVersion    = "version"
	keySources    = "sources"
	keyLayers     = "layers"
	keyLight      = "light"
	keySprite     = "sprite"
	keyGlyphs     = "glyphs"
	keyTransition = "transition"
	keyMetadata   = "metadata"
)

// Document is a style document. The zero value is an empty version 8
// document.
type Document struct {
	data map[string]any
}

// FromMap wraps a decoded style document. m is copied, later changes to it
// do not reach the Document. A missing version is set to 8.
func FromMap(m map[string]any) Document {
	data := cloneMap(m)
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data[keyVersion]; !ok {
		data[keyVersion] = Version
	}
	return Document{data: data}
}

func (d Document) root() map[string]any {
	if d.data == nil {
		return map[string]any{keyVersion: Version}
	}
	return d.data
}

// Map returns a copy of the document as nested maps and slices.
func (d Document) Map() map[string]any {
	return cloneMap(d.root())
}

// Get returns a copy of the root value stored under key.
func (d Document) Get(key string) (any, bool) {
	v, ok := d.root()[key]
	if !ok {
		return nil, false
	}
	return cloneAny(v), true
}

// Version returns the document version as stored.
func (d Document) Version() any {
	return d.root()[keyVersion]
}

// Sources returns a copy of the sources mapping. Never nil.
func (d Document) Sources() map[string]any {
	src, _ := d.root()[keySources].(map[string]any)
	out := cloneMap(src)
	if out == nil {
		out = map[string]any{}
	}
	return out
}

// Layers returns a copy of the layer list, in drawing order.
func (d Document) Layers() []map[string]any {
	layers := d.layers()
	out := make([]map[string]any, 0, len(layers))
	for _, l := range layers {
		if m, ok := l.(map[string]any); ok {
			out = append(out, cloneMap(m))
		}
	}
	return out
}

// LayerIDs returns the ids of all layers in drawing order.
func (d Document) LayerIDs() []string {
	layers := d.layers()
	ids := make([]string, 0, len(layers))
	for _, l := range layers {
		ids = append(ids, layerID(l))
	}
	return ids
}

// SourceNames returns the source names, sorted.
func (d Document) SourceNames() []string {
	src, _ := d.root()[keySources].(map[string]any)
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON encodes the document.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.root())
}

// UnmarshalJSON decodes a style document into d.
func (d *Document) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*d = FromMap(m)
	return nil
}

func (d Document) layers() []any {
	layers, _ := d.root()[keyLayers].([]any)
	return layers
}

func (d Document) hasSource(name string) bool {
	src, _ := d.root()[keySources].(map[string]any)
	_, ok := src[name]
	return ok
}

// with returns a copy of d that fn may change freely.
func (d Document) with(fn func(root map[string]any)) Document {
	next := cloneMap(d.root())
	fn(next)
	return Document{data: next}
}

func layerID(l any) string {
	m, _ := l.(map[string]any)
	id, _ := m["id"].(string)
	return id
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, it := range t {
			out[i] = cloneAny(it)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []float64:
		return append([]float64(nil), t...)
	case []byte:
		return append([]byte(nil), t...)
	}

	// Typed containers such as []map[string]any or map[string]map[string]any
	// are turned into the generic shapes the builder reads.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return v
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = cloneAny(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = cloneAny(iter.Value().Interface())
		}
		return out
	default:
		return v
	}
}
