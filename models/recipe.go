package models

// Recipe describes how to build a style document: an optional initial
// document, root options and a list of builder steps.
type Recipe struct {
	Name        string         `json:"name" yaml:"name"`
	Description *string        `json:"description" yaml:"description"`
	Style       string         `json:"style" yaml:"style"`
	Options     map[string]any `json:"options" yaml:"options"`
	Steps       []RecipeStep   `json:"steps" yaml:"steps"`
}

// RecipeStep is one builder call. Op selects the call; the remaining fields
// are its arguments.
type RecipeStep struct {
	Op      string         `json:"op" yaml:"op"`
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	ID      string         `json:"id,omitempty" yaml:"id,omitempty"`
	Key     string         `json:"key,omitempty" yaml:"key,omitempty"`
	Value   any            `json:"value,omitempty" yaml:"value,omitempty"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}
