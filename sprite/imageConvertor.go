package sprite

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// SVGToPNG rasterizes an SVG icon at twice its view box size. White pixels
// become transparent.
func SVGToPNG(svgFile, pngFile string) error {
	f, err := os.Open(svgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := Rasterize(f)
	if err != nil {
		return err
	}

	out, err := os.Create(pngFile)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, img)
}

// Rasterize draws the SVG read from r onto a transparent RGBA image.
func Rasterize(r io.Reader) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}

	w := int(icon.ViewBox.W) * 2
	h := int(icon.ViewBox.H) * 2
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("sprite: svg has an empty view box")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	dasher.SetColor(nil) // keep transparency

	icon.Draw(dasher, 1)

	// Remove white background. RGBA() returns color in [0, 65535] range
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if r > 65000 && g > 65000 && b > 65000 && a > 65000 {
				img.Set(x, y, image.Transparent)
			}
		}
	}
	return img, nil
}
