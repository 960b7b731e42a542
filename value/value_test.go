package value_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khankhulgun/mapstyle/value"
)

func TestNormalizeKey_Hyphenated(t *testing.T) {
	cases := map[string]string{
		"fill_color":             "fill-color",
		"source_layer":           "source-layer",
		"text_max_width":         "text-max-width",
		"fill_extrusion":         "fill-extrusion",
		"fill_extrusion_height":  "fill-extrusion-height",
		"raster_dem":             "raster-dem",
		"circle_stroke_opacity":  "circle-stroke-opacity",
		"icon_allow_overlap":     "icon-allow-overlap",
		"hillshade_accent_color": "hillshade-accent-color",
	}
	for in, want := range cases {
		assert.Equal(t, want, value.NormalizeKey(in), "NormalizeKey(%q)", in)
	}
}

func TestNormalizeKey_IdempotentOnHyphenatedNames(t *testing.T) {
	for _, name := range []string{"fill-color", "source-layer", "text-max-width", "fill-extrusion", "raster-dem"} {
		require.True(t, value.IsHyphenated(name), name)
		assert.Equal(t, name, value.NormalizeKey(name))
		assert.Equal(t, name, value.NormalizeKey(value.NormalizeKey(name)))
	}
}

func TestNormalizeKey_LowerCamel(t *testing.T) {
	cases := map[string]string{
		"tile_size":        "tileSize",
		"cluster_max_zoom": "clusterMaxZoom",
		"promote_id":       "promoteId",
		"line_metrics":     "lineMetrics",
		"cluster_radius":   "clusterRadius",
		"zoom":             "zoom",
		"minzoom":          "minzoom",
		"geojson":          "geojson",
	}
	for in, want := range cases {
		got := value.NormalizeKey(in)
		assert.Equal(t, want, got, "NormalizeKey(%q)", in)
		assert.False(t, strings.Contains(got, "_"), "no underscores in %q", got)
	}
}

func TestNormalizeKey_SplitsOnUnderscoreOnly(t *testing.T) {
	cases := map[string]string{
		"mapbox:group":      "mapbox:group",
		"mapbox:group_name": "mapbox:groupName",
		"foo-bar":           "foo-bar",
		"foo-bar_baz":       "foo-barBaz",
		"a2b_c":             "a2bC",
		"layer_2d":          "layer2d",
		"x_1st_pass":        "x1stPass",
		"HTTP_url":          "httpUrl",
		"max_URL_length":    "maxURLLength",
		"has.dot_key":       "has.dotKey",
		"double__under":     "doubleUnder",
		"trailing_":         "trailing",
	}
	for in, want := range cases {
		assert.Equal(t, want, value.NormalizeKey(in), "NormalizeKey(%q)", in)
	}
}

func TestNormalize_KeepsPunctuatedMetadataKeys(t *testing.T) {
	got := value.Normalize(value.Map(value.E("metadata", value.Map(
		value.E("mapbox:group", value.String("g1")),
		value.E("mapbox:autocomposite", value.Bool(true)),
	))))
	assert.Equal(t, map[string]any{"metadata": map[string]any{
		"mapbox:group":         "g1",
		"mapbox:autocomposite": true,
	}}, got)
}

func TestOf_UintOverflow(t *testing.T) {
	v, err := value.Of(uint64(42))
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), v)

	_, err = value.Of(uint64(1) << 63)
	require.Error(t, err)
	assert.True(t, errors.Is(err, value.ErrUnsupported))
}

func TestNormalize_Scalars(t *testing.T) {
	assert.Nil(t, value.Normalize(nil))
	assert.Nil(t, value.Normalize(value.Null{}))
	assert.Equal(t, true, value.Normalize(value.Bool(true)))
	assert.Equal(t, false, value.Normalize(value.Bool(false)))
	assert.Equal(t, int64(6), value.Normalize(value.Int(6)))
	assert.Equal(t, -74.5, value.Normalize(value.Float(-74.5)))
	assert.Equal(t, "#4A9661", value.Normalize(value.String("#4A9661")))
	// strings are never re-cased, only symbols are
	assert.Equal(t, "fill_color", value.Normalize(value.String("fill_color")))
	assert.Equal(t, "fill-extrusion", value.Normalize(value.Symbol("fill_extrusion")))
	assert.Equal(t, "geojson", value.Normalize(value.Symbol("geojson")))
}

func TestNormalize_PreservesStructure(t *testing.T) {
	in := value.Map(
		value.E("center", value.Pair(-74.5, 40)),
		value.E("position", value.Triple(1.15, 210, 30)),
		value.E("paint", value.Map(
			value.E("fill_color", value.String("#4A9661")),
			value.E("fill_opacity", value.Float(0.5)),
		)),
		value.E("filter", value.List{value.String("=="), value.List{value.String("get"), value.String("kind")}, value.String("park")}),
		value.E("visible", value.Bool(true)),
		value.E("nothing", value.Null{}),
	)

	got := value.Normalize(in)
	want := map[string]any{
		"center":   []any{-74.5, 40.0},
		"position": []any{1.15, 210.0, 30.0},
		"paint": map[string]any{
			"fill-color":   "#4A9661",
			"fill-opacity": 0.5,
		},
		"filter":  []any{"==", []any{"get", "kind"}, "park"},
		"visible": true,
		"nothing": nil,
	}
	assert.Equal(t, want, got)
}

func TestNormalize_DoesNotTouchInput(t *testing.T) {
	in := value.Map(value.E("line_width", value.Int(2)))
	_ = value.Normalize(in)
	require.Len(t, in, 1)
	assert.Equal(t, "line_width", in[0].Key)
}

func TestNormalizeKeyed_NilIsEmptyMap(t *testing.T) {
	got := value.NormalizeKeyed(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestKeyed_GetAndKeys(t *testing.T) {
	k := value.Map(
		value.E("id", value.String("a")),
		value.E("type", value.Symbol("fill")),
		value.E("id", value.String("b")),
	)
	v, ok := k.Get("id")
	require.True(t, ok)
	assert.Equal(t, value.String("b"), v)
	_, ok = k.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"id", "type"}, k.Keys())
}

func TestOf_GoNatives(t *testing.T) {
	got, err := value.Of(map[string]any{
		"zoom":   6,
		"center": [2]float64{-74.5, 40},
		"tiles":  []string{"https://a/{z}/{x}/{y}.pbf"},
		"flag":   false,
		"none":   nil,
		"type":   value.Symbol("fill"),
	})
	require.NoError(t, err)

	want := value.Keyed{
		value.E("center", value.Tuple{value.Float(-74.5), value.Float(40)}),
		value.E("flag", value.Bool(false)),
		value.E("none", value.Null{}),
		value.E("tiles", value.List{value.String("https://a/{z}/{x}/{y}.pbf")}),
		value.E("type", value.Symbol("fill")),
		value.E("zoom", value.Int(6)),
	}
	assert.Equal(t, want, got)
}

func TestOf_FailsLoudly(t *testing.T) {
	_, err := value.Of(map[string]any{"paint": map[string]any{"fill_color": struct{}{}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, value.ErrUnsupported))
	assert.Contains(t, err.Error(), "paint")

	_, err = value.Of(make(chan int))
	assert.True(t, errors.Is(err, value.ErrUnsupported))

	assert.Panics(t, func() { value.MustOf(func() {}) })
}

func TestFromDecoded_Symbols(t *testing.T) {
	got, err := value.FromDecoded(map[string]any{
		"type":  ":fill_extrusion",
		"color": "#fff",
		"colon": ":",
	})
	require.NoError(t, err)
	k := got.(value.Keyed)

	typ, _ := k.Get("type")
	assert.Equal(t, value.Symbol("fill_extrusion"), typ)
	color, _ := k.Get("color")
	assert.Equal(t, value.String("#fff"), color)
	colon, _ := k.Get("colon")
	assert.Equal(t, value.String(":"), colon)

	// Of never interprets the prefix
	plain, err := value.Of(":fill")
	require.NoError(t, err)
	assert.Equal(t, value.String(":fill"), plain)
}

func TestKeyedOf(t *testing.T) {
	k, err := value.KeyedOf(nil)
	require.NoError(t, err)
	assert.Nil(t, k)

	k, err = value.KeyedOf(map[string]any{"b": 1, "a": "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, k.Keys())

	k, err = value.KeyedFromDecoded(map[string]any{"type": ":geojson"})
	require.NoError(t, err)
	typ, _ := k.Get("type")
	assert.Equal(t, value.Symbol("geojson"), typ)
}
