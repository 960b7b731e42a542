package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khankhulgun/mapstyle/models"
	"github.com/khankhulgun/mapstyle/recipe"
)

func TestRecipeDescription(t *testing.T) {
	assert.Nil(t, recipeDescription(models.Recipe{}))

	blank := "  "
	assert.Nil(t, recipeDescription(models.Recipe{Description: &blank}))

	r, err := recipe.DecodeJSON([]byte(`{"name": "roads", "description": "main roads"}`))
	assert.NoError(t, err)
	got := recipeDescription(r)
	if assert.NotNil(t, got) {
		assert.Equal(t, "main roads", *got)
	}

	r, err = recipe.DecodeYAML([]byte("name: roads\ndescription: \"\"\n"))
	assert.NoError(t, err)
	assert.Nil(t, recipeDescription(r))
}
