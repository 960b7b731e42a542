// Package mapstyle mounts the style builder service on a fiber app.
package mapstyle

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/khankhulgun/mapstyle/config"
	"github.com/khankhulgun/mapstyle/controllers"
	"github.com/khankhulgun/mapstyle/database/migrations"
	"github.com/khankhulgun/mapstyle/database/seeds"
	"github.com/khankhulgun/mapstyle/glyphs"
	"github.com/khankhulgun/mapstyle/loader"
	"github.com/khankhulgun/mapstyle/store"
)

// FontPrefix is where glyph ranges are served.
const FontPrefix = "/mapstyle/fonts"

// Service holds what Set wired up.
type Service struct {
	Styles *controllers.StyleController
	store  *store.Store
	loader *loader.Cached
}

// Close releases the caches.
func (s *Service) Close() {
	if s.store != nil {
		s.store.Close()
	}
	s.loader.Close()
}

// Set registers the routes on app. db may be nil; stored styles are then
// unavailable and only building works.
func Set(app *fiber.App, cfg config.Config, db *gorm.DB) (*Service, error) {
	cached, err := loader.NewCached(loader.New(loader.WithTimeout(cfg.LoaderTimeout)), 0, cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("mapstyle: loader cache: %w", err)
	}
	svc := &Service{loader: cached}

	if db != nil {
		if cfg.Migrate {
			if err := migrations.Migrate(db); err != nil {
				return nil, err
			}
		}
		st, err := store.New(db, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		svc.store = st
		if cfg.Seed {
			if _, err := seeds.Seed(st, cached, cfg.SeedDir); err != nil {
				return nil, err
			}
		}
	}

	svc.Styles = &controllers.StyleController{
		Store:     svc.store,
		Loader:    cached,
		PublicDir: cfg.PublicDir,
		Domain:    cfg.Domain,
	}

	app.Get(FontPrefix+"/:fontstack/:range.pbf", glyphs.Handler(filepath.Join(cfg.PublicDir, "fonts"), cfg.FontUpstream))
	app.Static("/mapstyle/sprite", filepath.Join(cfg.PublicDir, "sprite"))

	a := app.Group("/mapstyle/api")
	a.Get("/styles", svc.Styles.ListStyles)
	a.Get("/style/:id", svc.Styles.GetStyle)
	a.Post("/style", svc.Styles.BuildStyle)
	a.Post("/sprite/:name", svc.Styles.MakeSprite)
	a.Get("/endpoints", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"glyphs": glyphs.URLTemplate(cfg.Domain, FontPrefix),
			"sprite": controllers.SpriteURL(cfg.Domain, "{name}"),
		})
	})

	return svc, nil
}
