package glyphs

import (
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultUpstream serves glyph ranges for the common open fonts.
const DefaultUpstream = "https://fonts.openmaptiles.org"

// URLTemplate returns the glyphs URL a style document should carry when
// fonts are served by Handler mounted under prefix on domain.
func URLTemplate(domain, prefix string) string {
	return strings.TrimRight(domain, "/") + prefix + "/{fontstack}/{range}.pbf"
}

// Handler serves font glyphs for map text rendering from fontDir. Missing
// ranges are downloaded from upstream and kept on disk. An empty upstream
// disables downloading.
func Handler(fontDir, upstream string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fontstack, err := url.PathUnescape(c.Params("fontstack"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid font request")
		}
		rangeParam := c.Params("range")
		if !validName(fontstack) || !validName(rangeParam) {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid font request")
		}

		fontPath := filepath.Join(fontDir, fontstack, rangeParam+".pbf")

		if _, err := os.Stat(fontPath); err == nil {
			c.Set("Content-Type", "application/x-protobuf")
			c.Set("Cache-Control", "public, max-age=86400") // Cache for 1 day
			return c.SendFile(fontPath)
		}

		if upstream == "" {
			return c.Status(fiber.StatusNotFound).SendString("Font not found")
		}

		fontURL := strings.TrimRight(upstream, "/") + "/" + url.PathEscape(fontstack) + "/" + rangeParam + ".pbf"
		code, body, errs := fiber.Get(fontURL).Timeout(30 * time.Second).Bytes()
		if len(errs) > 0 {
			log.Printf("glyphs: fetch %s: %v", fontURL, errs[0])
			return c.Status(fiber.StatusInternalServerError).SendString("Error fetching font")
		}
		if code != fiber.StatusOK {
			return c.Status(code).SendString("Font not found")
		}

		// Save to local storage for future requests
		if err := os.MkdirAll(filepath.Dir(fontPath), os.ModePerm); err == nil {
			if err := os.WriteFile(fontPath, body, 0o644); err != nil {
				log.Printf("glyphs: cache %s: %v", fontPath, err)
			}
		}

		c.Set("Content-Type", "application/x-protobuf")
		c.Set("Cache-Control", "public, max-age=86400")
		return c.Send(body)
	}
}

func validName(s string) bool {
	return s != "" && !strings.Contains(s, "..") && !strings.ContainsAny(s, `/\`)
}
