package style

import (
	"fmt"
	"slices"
	"strings"

	"github.com/khankhulgun/mapstyle/value"
)

// SourceTypes are the accepted values of a source's type.
var SourceTypes = []string{"vector", "raster", "raster-dem", "geojson", "image", "video"}

// LayerTypes are the accepted values of a layer's type.
var LayerTypes = []string{"background", "fill", "line", "symbol", "raster", "circle", "fill-extrusion", "heatmap", "hillshade"}

var (
	rootOptions       = []string{"bearing", "center", "name", "pitch", "zoom"}
	layerOptions      = []string{"id", "type", "source", "source_layer", "filter", "layout", "paint", "minzoom", "maxzoom", "metadata"}
	lightOptions      = []string{"anchor", "color", "intensity", "position"}
	transitionOptions = []string{"duration", "delay"}
	sourceOptions     = []string{
		"type", "url", "tiles", "bounds", "scheme", "minzoom", "maxzoom", "attribution",
		"promote_id", "volatile", "tile_size", "encoding", "data", "buffer", "tolerance",
		"cluster", "cluster_radius", "cluster_max_zoom", "cluster_min_points",
		"cluster_properties", "line_metrics", "generate_id", "filter", "urls", "coordinates",
		"red_factor", "green_factor", "blue_factor", "base_shift",
	}
)

// requireKnownOptions rejects option keys outside allowed.
func requireKnownOptions(opts value.Keyed, allowed []string) error {
	for _, key := range opts.Keys() {
		if !slices.Contains(allowed, key) && !knownHyphenated(key, allowed) {
			return newValidationError(ErrUnknownOption, key, allowed, "%q is not a supported option", key)
		}
	}
	return nil
}

// knownHyphenated accepts the hyphenated spelling of an allowed snake_case
// key, e.g. source-layer for source_layer.
func knownHyphenated(key string, allowed []string) bool {
	return value.IsHyphenated(key) && slices.Contains(allowed, strings.ReplaceAll(key, "-", "_"))
}

// requireField fails when fragment has no non-nil value under name.
func requireField(fragment map[string]any, name string) error {
	if v, ok := fragment[name]; !ok || v == nil {
		return newValidationError(ErrMissingField, name, nil, "%q is required", name)
	}
	return nil
}

// requireString fails when the field is present but not a non-empty string.
func requireString(fragment map[string]any, name string) (string, error) {
	if err := requireField(fragment, name); err != nil {
		return "", err
	}
	s, ok := fragment[name].(string)
	if !ok || s == "" {
		return "", newValidationError(ErrInvalidValue, fmt.Sprint(fragment[name]), nil, "%q must be a non-empty string", name)
	}
	return s, nil
}

// requireEnum fails when v is not one of allowed.
func requireEnum(field string, v any, allowed []string) error {
	s, ok := v.(string)
	if !ok || !slices.Contains(allowed, s) {
		return newValidationError(ErrInvalidEnum, fmt.Sprint(v), allowed, "%s %v is not supported", field, v)
	}
	return nil
}

// requireUniqueLayerID fails when doc already has a layer with id.
func requireUniqueLayerID(doc Document, id string) error {
	if _, ok := doc.layerIndex(id); ok {
		return newValidationError(ErrDuplicateLayerID, id, nil,
			"layer %q already exists, use UpdateLayer to change it", id)
	}
	return nil
}

// requireSourceExists fails when doc has no source called name.
func requireSourceExists(doc Document, name string) error {
	if !doc.hasSource(name) {
		return newValidationError(ErrUnknownSource, name, doc.SourceNames(),
			"source %q was not found", name)
	}
	return nil
}

// requireLayerExists returns the position of the layer with id.
func requireLayerExists(doc Document, id string) (int, error) {
	idx, ok := doc.layerIndex(id)
	if !ok {
		return -1, newValidationError(ErrUnknownLayer, id, doc.LayerIDs(),
			"layer %q was not found", id)
	}
	return idx, nil
}

// requireGeojsonData fails when a geojson source has no data or empty data.
func requireGeojsonData(fragment map[string]any) error {
	empty := func() error {
		return newValidationError(ErrMissingGeojsonData, "data", nil,
			"a geojson source needs a url or an inline object under \"data\"")
	}
	switch d := fragment["data"].(type) {
	case nil:
		return empty()
	case string:
		if d == "" {
			return empty()
		}
	case map[string]any:
		if len(d) == 0 {
			return empty()
		}
	case []any:
		if len(d) == 0 {
			return empty()
		}
	default:
		return empty()
	}
	return nil
}

// Check verifies the invariants of a document that did not come from the
// builder: version 8, unique layer ids and existing layer sources.
func (d Document) Check() error {
	switch v := d.Version().(type) {
	case int:
		if v != Version {
			return fmt.Errorf("%w: version %d, want %d", ErrInvalidDocument, v, Version)
		}
	case int64:
		if v != Version {
			return fmt.Errorf("%w: version %d, want %d", ErrInvalidDocument, v, Version)
		}
	case float64:
		if v != Version {
			return fmt.Errorf("%w: version %v, want %d", ErrInvalidDocument, v, Version)
		}
	default:
		return fmt.Errorf("%w: version %v, want %d", ErrInvalidDocument, v, Version)
	}

	root := d.root()
	if l, ok := root[keyLayers]; ok && l != nil {
		if _, ok := l.([]any); !ok {
			return fmt.Errorf("%w: layers is a %T, want a list", ErrInvalidDocument, l)
		}
	}
	if src, ok := root[keySources]; ok && src != nil {
		if _, ok := src.(map[string]any); !ok {
			return fmt.Errorf("%w: sources is a %T, want an object", ErrInvalidDocument, src)
		}
	}

	seen := make(map[string]bool)
	for i, l := range d.layers() {
		m, ok := l.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: layer %d is not an object", ErrInvalidDocument, i)
		}
		id := layerID(m)
		if id == "" {
			return fmt.Errorf("%w: layer %d has no id", ErrInvalidDocument, i)
		}
		if seen[id] {
			return fmt.Errorf("%w: layer id %q used twice", ErrInvalidDocument, id)
		}
		seen[id] = true
		if src, ok := m["source"].(string); ok && !d.hasSource(src) {
			return fmt.Errorf("%w: layer %q uses unknown source %q", ErrInvalidDocument, id, src)
		}
	}
	return nil
}

func (d Document) layerIndex(id string) (int, bool) {
	if id == "" {
		return -1, false
	}
	for i, l := range d.layers() {
		if layerID(l) == id {
			return i, true
		}
	}
	return -1, false
}
