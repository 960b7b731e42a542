package sprite_test

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khankhulgun/mapstyle/models"
	"github.com/khankhulgun/mapstyle/sprite"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 8" width="8" height="8">
  <rect x="0" y="0" width="8" height="8" fill="#ff0000"/>
</svg>`

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 120, B: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestMakeSprite(t *testing.T) {
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a-park.png"), 4, 6)
	writePNG(t, filepath.Join(src, "b-school.png"), 10, 3)
	dest := filepath.Join(t.TempDir(), "out", "sprite")

	index, err := sprite.MakeSprite(src, dest)
	require.NoError(t, err)

	assert.Equal(t, sprite.Index{
		"a-park":   {X: 0, Y: 0, Width: 4, Height: 6, PixelRatio: 1},
		"b-school": {X: 4, Y: 0, Width: 10, Height: 3, PixelRatio: 1},
	}, index)

	for _, name := range []string{"sprite.png", "sprite@2x.png", "sprite.json", "sprite@2x.json"} {
		_, err := os.Stat(filepath.Join(filepath.Dir(dest), name))
		assert.NoError(t, err, name)
	}

	f, err := os.Open(dest + ".png")
	require.NoError(t, err)
	defer f.Close()
	sheet, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 14, sheet.Bounds().Dx())
	assert.Equal(t, 6, sheet.Bounds().Dy())

	b, err := os.ReadFile(dest + ".json")
	require.NoError(t, err)
	var decoded map[string]models.SpriteMeta
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, 4, decoded["b-school"].X)
	assert.True(t, strings.Contains(string(b), `"pixelRatio"`))
}

func TestMakeSprite_Empty(t *testing.T) {
	_, err := sprite.MakeSprite(t.TempDir(), filepath.Join(t.TempDir(), "sprite"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sprite.ErrNoImages))
}

func TestMakeSprite_RasterizesSVG(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "marker.svg"), []byte(squareSVG), 0o644))

	index, err := sprite.MakeSprite(src, filepath.Join(t.TempDir(), "sprite"))
	require.NoError(t, err)
	require.Contains(t, index, "marker")
	assert.Equal(t, 16, index["marker"].Width)
	assert.Equal(t, 16, index["marker"].Height)
}

func TestRasterize(t *testing.T) {
	img, err := sprite.Rasterize(strings.NewReader(squareSVG))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())

	r, g, _, a := img.At(8, 8).RGBA()
	assert.Greater(t, r, uint32(60000))
	assert.Less(t, g, uint32(1000))
	assert.Greater(t, a, uint32(60000))
}

func TestSVGToPNG_MissingFile(t *testing.T) {
	err := sprite.SVGToPNG(filepath.Join(t.TempDir(), "nope.svg"), filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}
