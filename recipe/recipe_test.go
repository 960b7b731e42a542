package recipe_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khankhulgun/mapstyle/loader"
	"github.com/khankhulgun/mapstyle/models"
	"github.com/khankhulgun/mapstyle/recipe"
	"github.com/khankhulgun/mapstyle/style"
)

const provincesYAML = `
name: provinces
options:
  center: [-74.5, 40]
  zoom: 6
steps:
  - op: add_source
    name: provinces
    options:
      type: geojson
      data: https://example.com/provinces.geojson
  - op: add_layer
    options:
      id: provinces
      type: fill
      source: provinces
      paint:
        fill_color: "#4A9661"
  - op: add_layer_below_labels
    options:
      id: extrusion
      type: ":fill_extrusion"
      source: provinces
      paint:
        fill_extrusion_height: 20
  - op: update_layer
    id: provinces
    options:
      paint:
        fill_color: "#4A9661"
        fill_opacity: 0.5
  - op: set_light
    options:
      anchor: viewport
      position: [1.15, 210, 30]
  - op: set_transition
    options: {duration: 300, delay: 0}
  - op: set_sprite
    value: https://example.com/sprite
  - op: set_glyphs
    value: "https://example.com/fonts/{fontstack}/{range}.pbf"
  - op: set_metadata
    key: owner
    value: gis
`

func TestBuild_YAML(t *testing.T) {
	r, err := recipe.DecodeYAML([]byte(provincesYAML))
	require.NoError(t, err)
	assert.Equal(t, "provinces", r.Name)
	require.Len(t, r.Steps, 9)

	doc, err := recipe.Build(nil, r)
	require.NoError(t, err)

	m := doc.Map()
	assert.Equal(t, 8, m["version"])
	assert.Equal(t, int64(6), m["zoom"])
	assert.Equal(t, []any{-74.5, int64(40)}, m["center"])
	assert.Equal(t, []string{"provinces", "extrusion"}, doc.LayerIDs())

	layers := doc.Layers()
	assert.Equal(t, map[string]any{"fill-color": "#4A9661", "fill-opacity": 0.5}, layers[0]["paint"])
	assert.Equal(t, "fill-extrusion", layers[1]["type"])
	assert.Equal(t, map[string]any{"fill-extrusion-height": int64(20)}, layers[1]["paint"])

	assert.Equal(t, map[string]any{"anchor": "viewport", "position": []any{1.15, int64(210), int64(30)}}, m["light"])
	assert.Equal(t, map[string]any{"duration": int64(300), "delay": int64(0)}, m["transition"])
	assert.Equal(t, "https://example.com/sprite", m["sprite"])
	assert.Equal(t, "https://example.com/fonts/{fontstack}/{range}.pbf", m["glyphs"])
	assert.Equal(t, map[string]any{"owner": "gis"}, m["metadata"])
	assert.NoError(t, doc.Check())
}

func TestBuild_JSON(t *testing.T) {
	r, err := recipe.DecodeJSON([]byte(`{
		"style": "empty",
		"options": {"zoom": 2},
		"steps": [
			{"op": "add_source", "name": "dem", "options": {"type": ":raster_dem", "url": "https://dem/tiles.json", "tile_size": 256}},
			{"op": "add_layer", "options": {"id": "hills", "type": "hillshade", "source": "dem"}}
		]
	}`))
	require.NoError(t, err)

	doc, err := recipe.Build(loader.New(), r)
	require.NoError(t, err)
	assert.Equal(t, 2.0, doc.Map()["zoom"])
	assert.Equal(t, map[string]any{
		"type":     "raster-dem",
		"url":      "https://dem/tiles.json",
		"tileSize": 256.0,
	}, doc.Sources()["dem"])
	assert.Equal(t, []string{"hills"}, doc.LayerIDs())
}

func TestBuild_StepErrors(t *testing.T) {
	r := models.Recipe{Steps: []models.RecipeStep{
		{Op: recipe.OpAddSource, Name: "a", Options: map[string]any{"type": "vector", "url": "x"}},
		{Op: recipe.OpAddLayer, Options: map[string]any{"id": "l", "type": "line", "source": "a"}},
		{Op: recipe.OpAddLayer, Options: map[string]any{"id": "l", "type": "line", "source": "a"}},
	}}
	_, err := recipe.Build(nil, r)
	require.Error(t, err)

	var se *recipe.StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Index)
	assert.Equal(t, recipe.OpAddLayer, se.Op)
	assert.True(t, errors.Is(err, style.ErrDuplicateLayerID))
}

func TestApply_Failures(t *testing.T) {
	tests := []struct {
		name string
		step models.RecipeStep
		want error
	}{
		{"unknown op", models.RecipeStep{Op: "remove_layer"}, recipe.ErrUnknownStep},
		{"sprite not a string", models.RecipeStep{Op: recipe.OpSetSprite, Value: 42}, style.ErrInvalidValue},
		{"glyphs list", models.RecipeStep{Op: recipe.OpSetGlyphs, Value: []any{"a"}}, style.ErrInvalidValue},
		{"metadata missing value", models.RecipeStep{Op: recipe.OpSetMetadata, Key: "k"}, style.ErrInvalidValue},
		{"metadata missing key", models.RecipeStep{Op: recipe.OpSetMetadata, Value: "v"}, style.ErrMissingField},
		{"unknown layer", models.RecipeStep{Op: recipe.OpUpdateLayer, ID: "x"}, style.ErrUnknownLayer},
		{"bad light option", models.RecipeStep{Op: recipe.OpSetLight, Options: map[string]any{"glow": 1}}, style.ErrUnknownOption},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := recipe.Apply(style.Document{}, tc.step)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestBuild_StyleNeedsLoader(t *testing.T) {
	_, err := recipe.Build(nil, models.Recipe{Style: "empty"})
	assert.True(t, errors.Is(err, recipe.ErrNoLoader))
}

func TestBuild_UnknownRootOption(t *testing.T) {
	_, err := recipe.Build(nil, models.Recipe{Options: map[string]any{"tilt": 10}})
	assert.True(t, errors.Is(err, style.ErrUnknownOption))
}

func TestDecode_Invalid(t *testing.T) {
	_, err := recipe.DecodeJSON([]byte(`{"steps": 1}`))
	assert.Error(t, err)
	_, err = recipe.DecodeYAML([]byte("steps: [\n"))
	assert.Error(t, err)
}
