package controllers

import (
	"errors"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/khankhulgun/mapstyle/loader"
	"github.com/khankhulgun/mapstyle/models"
	"github.com/khankhulgun/mapstyle/recipe"
	"github.com/khankhulgun/mapstyle/sprite"
	"github.com/khankhulgun/mapstyle/store"
	"github.com/khankhulgun/mapstyle/style"
)

// StyleController serves built and stored style documents. Store may be nil,
// in which case only building works.
type StyleController struct {
	Store     *store.Store
	Loader    style.Loader
	PublicDir string
	Domain    string
}

// GetStyle returns the stored document with the given id.
func (sc *StyleController) GetStyle(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "ID parameter is required",
		})
	}
	if sc.Store == nil {
		return errorResponse(c, errNoStore)
	}

	doc, err := sc.Store.Get(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(doc)
}

// ListStyles returns the stored style records without their documents.
func (sc *StyleController) ListStyles(c *fiber.Ctx) error {
	if sc.Store == nil {
		return errorResponse(c, errNoStore)
	}
	records, err := sc.Store.List()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(records)
}

// BuildStyle runs the recipe in the request body. YAML bodies are accepted
// when the content type says so. With ?save=true the result is stored and
// the response carries the new record next to the document.
func (sc *StyleController) BuildStyle(c *fiber.Ctx) error {
	var (
		r   models.Recipe
		err error
	)
	if isYAML(c.Get(fiber.HeaderContentType)) {
		r, err = recipe.DecodeYAML(c.Body())
	} else {
		r, err = recipe.DecodeJSON(c.Body())
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	doc, err := recipe.Build(sc.Loader, r)
	if err != nil {
		return errorResponse(c, err)
	}

	if !c.QueryBool("save") {
		return c.JSON(doc)
	}
	if sc.Store == nil {
		return errorResponse(c, errNoStore)
	}

	name := r.Name
	if name == "" {
		name = "untitled"
	}
	record, err := sc.Store.Save(name, recipeDescription(r), doc)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"record": record,
		"style":  doc,
	})
}

// MakeSprite packs <public>/sprite/<name>/images into a sprite sheet and
// returns its index together with the URL to put in a style's sprite field.
func (sc *StyleController) MakeSprite(c *fiber.Ctx) error {
	name := c.Params("name")
	if !validName(name) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "invalid sprite name",
		})
	}

	dir := filepath.Join(sc.PublicDir, "sprite", name)
	index, err := sprite.MakeSprite(filepath.Join(dir, "images"), filepath.Join(dir, name))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"sprite": SpriteURL(sc.Domain, name),
		"index":  index,
	})
}

// SpriteURL is the sprite location for name as served under /mapstyle/sprite.
func SpriteURL(domain, name string) string {
	spriteURL := strings.TrimRight(domain, "/") + "/mapstyle/sprite/" + name + "/" + name
	if strings.HasPrefix(spriteURL, "http://") || strings.HasPrefix(spriteURL, "https://") || strings.HasPrefix(spriteURL, "/") {
		return spriteURL
	}
	return "https://" + spriteURL
}

// recipeDescription treats a blank description as absent.
func recipeDescription(r models.Recipe) *string {
	if r.Description == nil || strings.TrimSpace(*r.Description) == "" {
		return nil
	}
	return r.Description
}

var errNoStore = errors.New("no database configured")

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	body := fiber.Map{
		"status":  "error",
		"message": err.Error(),
	}
	if ve, ok := style.AsValidationError(err); ok {
		body["kind"] = ve.Kind.Error()
		if ve.Value != "" {
			body["value"] = ve.Value
		}
		if len(ve.Valid) > 0 {
			body["valid"] = ve.Valid
		}
	}
	var se *recipe.StepError
	if errors.As(err, &se) {
		body["step"] = se.Index
	}
	if status == fiber.StatusInternalServerError {
		log.Printf("Style request failed: %v", err)
	}
	return c.Status(status).JSON(body)
}

func statusOf(err error) int {
	var le *loader.LoadError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, sprite.ErrNoImages):
		return fiber.StatusNotFound
	case errors.Is(err, errNoStore):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &le):
		return fiber.StatusUnprocessableEntity
	}
	if _, ok := style.AsValidationError(err); ok {
		return fiber.StatusBadRequest
	}
	for _, sentinel := range []error{recipe.ErrUnknownStep, recipe.ErrNoLoader, style.ErrInvalidValue, style.ErrUnknownOption} {
		if errors.Is(err, sentinel) {
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

func isYAML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "yaml") || strings.Contains(ct, "yml")
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
