package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/khankhulgun/mapstyle/models"
)

// ErrNoImages is returned when the source directory holds no icons.
var ErrNoImages = errors.New("sprite: no images found")

// Index maps an icon name to its place in the sprite sheet.
type Index map[string]models.SpriteMeta

// MakeSprite packs every PNG (and SVG, rasterized first) in srcDir into a
// single row and writes destFile.png, destFile@2x.png, destFile.json and
// destFile@2x.json. Icon names are the file names without extension.
func MakeSprite(srcDir, destFile string) (Index, error) {
	if err := rasterizeSVGs(srcDir); err != nil {
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(srcDir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("sprite: read files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, srcDir)
	}
	sort.Strings(files)

	// Load images and calculate sprite dimensions
	var images []image.Image
	var spriteWidth, maxHeight int
	index := make(Index, len(files))

	for _, file := range files {
		img, err := decodePNG(file)
		if err != nil {
			return nil, err
		}

		images = append(images, img)
		bounds := img.Bounds()
		width, height := bounds.Dx(), bounds.Dy()
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		index[name] = models.SpriteMeta{
			X:          spriteWidth,
			Y:          0,
			Width:      width,
			Height:     height,
			PixelRatio: 1,
		}
		spriteWidth += width
		if height > maxHeight {
			maxHeight = height
		}
	}

	spriteImg := image.NewRGBA(image.Rect(0, 0, spriteWidth, maxHeight))
	currentX := 0
	for _, img := range images {
		bounds := img.Bounds()
		width, height := bounds.Dx(), bounds.Dy()
		draw.Draw(spriteImg, image.Rect(currentX, 0, currentX+width, height), img, bounds.Min, draw.Over)
		currentX += width
	}

	if err := os.MkdirAll(filepath.Dir(destFile), os.ModePerm); err != nil {
		return nil, fmt.Errorf("sprite: create output directory: %w", err)
	}
	for _, suffix := range []string{"", "@2x"} {
		if err := saveImage(spriteImg, destFile+suffix+".png"); err != nil {
			return nil, err
		}
		if err := saveJSON(index, destFile+suffix+".json"); err != nil {
			return nil, err
		}
	}

	log.Printf("Sprite sheet and JSON metadata created: %s, %s", destFile+".png", destFile+".json")
	return index, nil
}

// rasterizeSVGs converts every SVG in dir that has no PNG next to it.
func rasterizeSVGs(dir string) error {
	svgs, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		return fmt.Errorf("sprite: read files: %w", err)
	}
	for _, svg := range svgs {
		target := strings.TrimSuffix(svg, filepath.Ext(svg)) + ".png"
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := SVGToPNG(svg, target); err != nil {
			return fmt.Errorf("sprite: convert %s: %w", filepath.Base(svg), err)
		}
	}
	return nil
}

func decodePNG(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("sprite: open %s: %w", file, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sprite: decode %s: %w", file, err)
	}
	return img, nil
}

func saveImage(img image.Image, filename string) error {
	outFile, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("sprite: create image: %w", err)
	}
	defer outFile.Close()
	if err := png.Encode(outFile, img); err != nil {
		return fmt.Errorf("sprite: encode png: %w", err)
	}
	return nil
}

func saveJSON(index Index, filename string) error {
	b, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("sprite: encode index: %w", err)
	}
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		return fmt.Errorf("sprite: write index: %w", err)
	}
	return nil
}
