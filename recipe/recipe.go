// Package recipe applies a declarative list of builder steps, decoded from
// JSON or YAML, to a style document.
//
// A recipe looks like:
//
//	style: empty
//	options: {center: [-74.5, 40], zoom: 6}
//	steps:
//	  - op: add_source
//	    name: provinces
//	    options: {type: geojson, data: "https://example.com/provinces.geojson"}
//	  - op: add_layer
//	    options:
//	      id: provinces
//	      type: fill
//	      source: provinces
//	      paint: {fill_color: "#4A9661"}
//
// Option keys use snake_case. Strings written as ":name" are symbols and go
// through key normalization, e.g. type: ":fill_extrusion".
package recipe

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/khankhulgun/mapstyle/models"
	"github.com/khankhulgun/mapstyle/style"
	"github.com/khankhulgun/mapstyle/value"
)

// Step operations.
const (
	OpAddSource           = "add_source"
	OpAddLayer            = "add_layer"
	OpAddLayerBelowLabels = "add_layer_below_labels"
	OpUpdateLayer         = "update_layer"
	OpSetLight            = "set_light"
	OpSetSprite           = "set_sprite"
	OpSetGlyphs           = "set_glyphs"
	OpSetTransition       = "set_transition"
	OpSetMetadata         = "set_metadata"
)

var (
	ErrUnknownStep = errors.New("recipe: unknown step")
	ErrNoLoader    = errors.New("recipe: style given but no loader configured")
)

// StepError reports the step that failed. It unwraps to the builder error.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("recipe: step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// DecodeJSON decodes a JSON recipe.
func DecodeJSON(b []byte) (models.Recipe, error) {
	var r models.Recipe
	if err := json.Unmarshal(b, &r); err != nil {
		return models.Recipe{}, fmt.Errorf("recipe: decode json: %w", err)
	}
	return r, nil
}

// DecodeYAML decodes a YAML recipe.
func DecodeYAML(b []byte) (models.Recipe, error) {
	var r models.Recipe
	if err := yaml.Unmarshal(b, &r); err != nil {
		return models.Recipe{}, fmt.Errorf("recipe: decode yaml: %w", err)
	}
	return r, nil
}

// Build runs r. The loader is only needed when r.Style is set.
func Build(l style.Loader, r models.Recipe) (style.Document, error) {
	opts, err := value.KeyedFromDecoded(r.Options)
	if err != nil {
		return style.Document{}, fmt.Errorf("recipe: options: %w", err)
	}

	var doc style.Document
	if r.Style == "" {
		doc, err = style.New(opts)
	} else {
		if l == nil {
			return style.Document{}, ErrNoLoader
		}
		doc, err = style.Load(l, r.Style, opts)
	}
	if err != nil {
		return style.Document{}, err
	}

	for i, step := range r.Steps {
		doc, err = Apply(doc, step)
		if err != nil {
			return style.Document{}, &StepError{Index: i, Op: step.Op, Err: err}
		}
	}
	return doc, nil
}

// Apply runs a single step against doc.
func Apply(doc style.Document, step models.RecipeStep) (style.Document, error) {
	opts, err := value.KeyedFromDecoded(step.Options)
	if err != nil {
		return style.Document{}, err
	}

	switch step.Op {
	case OpAddSource:
		return style.AddSource(doc, step.Name, opts)
	case OpAddLayer:
		return style.AddLayer(doc, opts)
	case OpAddLayerBelowLabels:
		return style.AddLayerBelowLabels(doc, opts)
	case OpUpdateLayer:
		return style.UpdateLayer(doc, step.ID, opts)
	case OpSetLight:
		return style.SetLight(doc, opts)
	case OpSetTransition:
		return style.SetTransition(doc, opts)
	case OpSetSprite:
		url, err := stringValue(OpSetSprite, step.Value)
		if err != nil {
			return style.Document{}, err
		}
		return style.SetSprite(doc, url)
	case OpSetGlyphs:
		url, err := stringValue(OpSetGlyphs, step.Value)
		if err != nil {
			return style.Document{}, err
		}
		return style.SetGlyphs(doc, url)
	case OpSetMetadata:
		v, err := stringValue(OpSetMetadata, step.Value)
		if err != nil {
			return style.Document{}, err
		}
		return style.SetMetadata(doc, step.Key, v)
	default:
		return style.Document{}, fmt.Errorf("%w: %q", ErrUnknownStep, step.Op)
	}
}

func stringValue(field string, raw any) (string, error) {
	v, err := value.Of(raw)
	if err != nil {
		return "", err
	}
	return style.ExpectString(field, v)
}
