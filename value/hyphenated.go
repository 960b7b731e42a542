package value

// hyphenatedNames lists every name of style specification v8 that is written
// with hyphens: layout and paint properties, the source-layer key and the
// enum values containing a hyphen. Read-only after package init.
var hyphenatedNames = toSet(
	// layer keys
	"source-layer",

	// layer and source types
	"fill-extrusion",
	"raster-dem",

	// enum values
	"top-left",
	"top-right",
	"bottom-left",
	"bottom-right",
	"viewport-y",
	"width-and-height",
	"line-center",
	"source-order",

	// background
	"background-color",
	"background-pattern",
	"background-opacity",

	// fill
	"fill-sort-key",
	"fill-antialias",
	"fill-opacity",
	"fill-color",
	"fill-outline-color",
	"fill-translate",
	"fill-translate-anchor",
	"fill-pattern",

	// line
	"line-cap",
	"line-join",
	"line-miter-limit",
	"line-round-limit",
	"line-sort-key",
	"line-opacity",
	"line-color",
	"line-translate",
	"line-translate-anchor",
	"line-width",
	"line-gap-width",
	"line-offset",
	"line-blur",
	"line-dasharray",
	"line-pattern",
	"line-gradient",

	// symbol layout
	"symbol-placement",
	"symbol-spacing",
	"symbol-avoid-edges",
	"symbol-sort-key",
	"symbol-z-order",
	"icon-allow-overlap",
	"icon-overlap",
	"icon-ignore-placement",
	"icon-optional",
	"icon-rotation-alignment",
	"icon-size",
	"icon-text-fit",
	"icon-text-fit-padding",
	"icon-image",
	"icon-rotate",
	"icon-padding",
	"icon-keep-upright",
	"icon-offset",
	"icon-anchor",
	"icon-pitch-alignment",
	"text-pitch-alignment",
	"text-rotation-alignment",
	"text-field",
	"text-font",
	"text-size",
	"text-max-width",
	"text-line-height",
	"text-letter-spacing",
	"text-justify",
	"text-radial-offset",
	"text-variable-anchor",
	"text-variable-anchor-offset",
	"text-anchor",
	"text-max-angle",
	"text-writing-mode",
	"text-rotate",
	"text-padding",
	"text-keep-upright",
	"text-transform",
	"text-offset",
	"text-allow-overlap",
	"text-overlap",
	"text-ignore-placement",
	"text-optional",

	// symbol paint
	"icon-opacity",
	"icon-color",
	"icon-halo-color",
	"icon-halo-width",
	"icon-halo-blur",
	"icon-translate",
	"icon-translate-anchor",
	"text-opacity",
	"text-color",
	"text-halo-color",
	"text-halo-width",
	"text-halo-blur",
	"text-translate",
	"text-translate-anchor",

	// raster
	"raster-opacity",
	"raster-hue-rotate",
	"raster-brightness-min",
	"raster-brightness-max",
	"raster-saturation",
	"raster-contrast",
	"raster-resampling",
	"raster-fade-duration",

	// circle
	"circle-sort-key",
	"circle-radius",
	"circle-color",
	"circle-blur",
	"circle-opacity",
	"circle-translate",
	"circle-translate-anchor",
	"circle-pitch-scale",
	"circle-pitch-alignment",
	"circle-stroke-width",
	"circle-stroke-color",
	"circle-stroke-opacity",

	// fill-extrusion
	"fill-extrusion-opacity",
	"fill-extrusion-color",
	"fill-extrusion-translate",
	"fill-extrusion-translate-anchor",
	"fill-extrusion-pattern",
	"fill-extrusion-height",
	"fill-extrusion-base",
	"fill-extrusion-vertical-gradient",

	// heatmap
	"heatmap-radius",
	"heatmap-weight",
	"heatmap-intensity",
	"heatmap-color",
	"heatmap-opacity",

	// hillshade
	"hillshade-illumination-direction",
	"hillshade-illumination-anchor",
	"hillshade-exaggeration",
	"hillshade-shadow-color",
	"hillshade-highlight-color",
	"hillshade-accent-color",
)

func toSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
