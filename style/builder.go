package style

import (
	"github.com/khankhulgun/mapstyle/value"
)

// Loader fetches the initial document for Load. Errors are returned to the
// caller unchanged.
type Loader interface {
	Load(locator string) (map[string]any, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(locator string) (map[string]any, error)

// Load calls f.
func (f LoaderFunc) Load(locator string) (map[string]any, error) { return f(locator) }

// New returns a version 8 document with the given root options. Accepted
// options are bearing, center, name, pitch and zoom.
func New(opts value.Keyed) (Document, error) {
	return withRootOptions(Document{data: map[string]any{keyVersion: Version}}, opts)
}

// Load starts from the document returned by l for locator and applies the
// root options as New does.
func Load(l Loader, locator string, opts value.Keyed) (Document, error) {
	if err := requireKnownOptions(opts, rootOptions); err != nil {
		return Document{}, err
	}
	m, err := l.Load(locator)
	if err != nil {
		return Document{}, err
	}
	return withRootOptions(FromMap(m), opts)
}

func withRootOptions(doc Document, opts value.Keyed) (Document, error) {
	if err := requireKnownOptions(opts, rootOptions); err != nil {
		return Document{}, err
	}
	fragment := value.NormalizeKeyed(opts)
	return doc.with(func(root map[string]any) {
		for k, v := range fragment {
			root[k] = v
		}
	}), nil
}

// AddSource stores a source under name. An existing source with the same
// name is replaced.
func AddSource(doc Document, name string, opts value.Keyed) (Document, error) {
	if name == "" {
		return Document{}, newValidationError(ErrMissingField, "name", nil, "a source needs a name")
	}
	if err := requireKnownOptions(opts, sourceOptions); err != nil {
		return Document{}, err
	}
	fragment := value.NormalizeKeyed(opts)
	if err := requireField(fragment, "type"); err != nil {
		return Document{}, err
	}
	if err := requireEnum("source type", fragment["type"], SourceTypes); err != nil {
		return Document{}, err
	}
	if fragment["type"] == "geojson" {
		if err := requireGeojsonData(fragment); err != nil {
			return Document{}, err
		}
	}

	return doc.with(func(root map[string]any) {
		sources, _ := root[keySources].(map[string]any)
		if sources == nil {
			sources = map[string]any{}
		}
		sources[name] = fragment
		root[keySources] = sources
	}), nil
}

// AddLayer appends a layer, drawn above every existing layer.
func AddLayer(doc Document, opts value.Keyed) (Document, error) {
	fragment, err := prepareLayer(doc, opts)
	if err != nil {
		return Document{}, err
	}
	return insertLayer(doc, len(doc.layers()), fragment), nil
}

// AddLayerBelowLabels inserts a layer right before the first symbol layer,
// so that labels stay on top. Without symbol layers it appends.
func AddLayerBelowLabels(doc Document, opts value.Keyed) (Document, error) {
	fragment, err := prepareLayer(doc, opts)
	if err != nil {
		return Document{}, err
	}
	layers := doc.layers()
	at := len(layers)
	for i, l := range layers {
		if m, ok := l.(map[string]any); ok && m["type"] == "symbol" {
			at = i
			break
		}
	}
	return insertLayer(doc, at, fragment), nil
}

// UpdateLayer merges opts into the layer with id. Supplied keys replace the
// existing ones, everything else is kept. The layer keeps its position.
func UpdateLayer(doc Document, id string, opts value.Keyed) (Document, error) {
	idx, err := requireLayerExists(doc, id)
	if err != nil {
		return Document{}, err
	}
	if err := requireKnownOptions(opts, layerOptions); err != nil {
		return Document{}, err
	}
	fragment := value.NormalizeKeyed(opts)

	if _, ok := fragment["id"]; ok {
		newID, err := requireString(fragment, "id")
		if err != nil {
			return Document{}, err
		}
		if newID != id {
			if err := requireUniqueLayerID(doc, newID); err != nil {
				return Document{}, err
			}
		}
	}
	if t, ok := fragment["type"]; ok {
		if err := requireEnum("layer type", t, LayerTypes); err != nil {
			return Document{}, err
		}
	}

	// The merged layer must still satisfy the source rule, e.g. a background
	// layer turned into a fill layer needs a source.
	merged := make(map[string]any)
	if current, ok := doc.layers()[idx].(map[string]any); ok {
		for k, v := range current {
			merged[k] = v
		}
	}
	for k, v := range fragment {
		merged[k] = v
	}
	_, sourceGiven := fragment["source"]
	if merged["type"] != "background" || sourceGiven {
		src, err := requireString(merged, "source")
		if err != nil {
			return Document{}, err
		}
		if err := requireSourceExists(doc, src); err != nil {
			return Document{}, err
		}
	}

	return doc.with(func(root map[string]any) {
		layers := root[keyLayers].([]any)
		layer := layers[idx].(map[string]any)
		for k, v := range fragment {
			layer[k] = v
		}
	}), nil
}

// SetLight replaces the light section. Accepted options are anchor, color,
// intensity and position.
func SetLight(doc Document, opts value.Keyed) (Document, error) {
	return setSection(doc, keyLight, opts, lightOptions)
}

// SetTransition replaces the transition section. Accepted options are
// duration and delay.
func SetTransition(doc Document, opts value.Keyed) (Document, error) {
	return setSection(doc, keyTransition, opts, transitionOptions)
}

// SetSprite sets the sprite URL.
func SetSprite(doc Document, url string) (Document, error) {
	return setString(doc, keySprite, url)
}

// SetGlyphs sets the glyphs URL template.
func SetGlyphs(doc Document, url string) (Document, error) {
	return setString(doc, keyGlyphs, url)
}

// SetMetadata merges key=value into the metadata section.
func SetMetadata(doc Document, key, val string) (Document, error) {
	if key == "" {
		return Document{}, newValidationError(ErrMissingField, "key", nil, "metadata needs a key")
	}
	return doc.with(func(root map[string]any) {
		meta, _ := root[keyMetadata].(map[string]any)
		if meta == nil {
			meta = map[string]any{}
		}
		meta[key] = val
		root[keyMetadata] = meta
	}), nil
}

// ExpectString returns the string held by v, failing with ErrInvalidValue
// for any other option value. Used by callers that receive untyped input
// for sprite, glyphs or metadata.
func ExpectString(field string, v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", newValidationError(ErrInvalidValue, field, nil, "%s must be a string, got %T", field, v)
	}
	return string(s), nil
}

func prepareLayer(doc Document, opts value.Keyed) (map[string]any, error) {
	if err := requireKnownOptions(opts, layerOptions); err != nil {
		return nil, err
	}
	fragment := value.NormalizeKeyed(opts)

	id, err := requireString(fragment, "id")
	if err != nil {
		return nil, err
	}
	if err := requireUniqueLayerID(doc, id); err != nil {
		return nil, err
	}
	if err := requireField(fragment, "type"); err != nil {
		return nil, err
	}
	if err := requireEnum("layer type", fragment["type"], LayerTypes); err != nil {
		return nil, err
	}

	_, hasSource := fragment["source"]
	if fragment["type"] != "background" || hasSource {
		src, err := requireString(fragment, "source")
		if err != nil {
			return nil, err
		}
		if err := requireSourceExists(doc, src); err != nil {
			return nil, err
		}
	}
	return fragment, nil
}

func insertLayer(doc Document, at int, fragment map[string]any) Document {
	return doc.with(func(root map[string]any) {
		layers, _ := root[keyLayers].([]any)
		next := make([]any, 0, len(layers)+1)
		next = append(next, layers[:at]...)
		next = append(next, fragment)
		next = append(next, layers[at:]...)
		root[keyLayers] = next
	})
}

func setSection(doc Document, key string, opts value.Keyed, allowed []string) (Document, error) {
	if err := requireKnownOptions(opts, allowed); err != nil {
		return Document{}, err
	}
	fragment := value.NormalizeKeyed(opts)
	return doc.with(func(root map[string]any) {
		root[key] = fragment
	}), nil
}

func setString(doc Document, key, s string) (Document, error) {
	if s == "" {
		return Document{}, newValidationError(ErrInvalidValue, key, nil, "%s must be a non-empty string", key)
	}
	return doc.with(func(root map[string]any) {
		root[key] = s
	}), nil
}
