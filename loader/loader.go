// Package loader fetches and decodes initial style documents. A locator is a
// built-in alias, an http(s) URL, a path to a JSON or YAML file, or the
// document itself as JSON or YAML text.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds a remote fetch.
const DefaultTimeout = 10 * time.Second

// Built-in aliases. "empty" is resolved locally, the others are fetched.
var Builtin = map[string]string{
	"default": "https://demotiles.maplibre.org/style.json",
	"demo":    "https://demotiles.maplibre.org/style.json",
}

var (
	ErrEmptyLocator   = errors.New("loader: empty locator")
	ErrNotObject      = errors.New("loader: document is not an object")
	ErrUnknownLocator = errors.New("loader: locator is not a url, file or document")
	ErrStatus         = errors.New("loader: unexpected response status")
)

// LoadError is returned for every failed load.
type LoadError struct {
	Locator string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loader: load %q: %v", shorten(e.Locator), e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader resolves locators. The zero value is ready to use.
type Loader struct {
	timeout time.Duration
	aliases map[string]string
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the timeout of remote fetches.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// WithAlias adds or replaces a named locator.
func WithAlias(name, locator string) Option {
	return func(l *Loader) {
		if l.aliases == nil {
			l.aliases = map[string]string{}
		}
		l.aliases[name] = locator
	}
}

// New returns a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load returns the document named by locator.
func (l *Loader) Load(locator string) (map[string]any, error) {
	m, err := l.load(strings.TrimSpace(locator))
	if err != nil {
		return nil, &LoadError{Locator: locator, Err: err}
	}
	return m, nil
}

func (l *Loader) load(locator string) (map[string]any, error) {
	if locator == "" {
		return nil, ErrEmptyLocator
	}
	if locator == "empty" {
		return map[string]any{"version": 8, "sources": map[string]any{}, "layers": []any{}}, nil
	}
	if target, ok := l.alias(locator); ok {
		locator = target
	}

	switch {
	case strings.HasPrefix(locator, "{"):
		return DecodeJSON([]byte(locator))
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		return l.fetch(locator)
	}

	if info, err := os.Stat(locator); err == nil && !info.IsDir() {
		return ReadFile(locator)
	}
	if strings.Contains(locator, "\n") || strings.Contains(locator, ": ") {
		return DecodeYAML([]byte(locator))
	}
	return nil, ErrUnknownLocator
}

func (l *Loader) alias(name string) (string, bool) {
	if target, ok := l.aliases[name]; ok {
		return target, true
	}
	target, ok := Builtin[name]
	return target, ok
}

func (l *Loader) fetch(url string) (map[string]any, error) {
	timeout := l.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	code, body, errs := fiber.Get(url).Timeout(timeout).Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatus, code)
	}
	if isYAMLPath(url) {
		return DecodeYAML(body)
	}
	return DecodeJSON(body)
}

// ReadFile reads a JSON or YAML style document from disk. Files ending in
// .yaml or .yml are decoded as YAML.
func ReadFile(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAMLPath(path) {
		return DecodeYAML(b)
	}
	return DecodeJSON(b)
}

// DecodeJSON decodes a JSON object.
func DecodeJSON(b []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return m, nil
}

// DecodeYAML decodes a YAML mapping into JSON-like data.
func DecodeYAML(b []byte) (map[string]any, error) {
	var v any
	dec := yaml.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	m, ok := yamlNormalize(v).(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return m, nil
}

// yamlNormalize turns map[any]any produced for non-string keys into
// map[string]any, recursively.
func yamlNormalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalize(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = yamlNormalize(vv)
		}
		return out
	default:
		return v
	}
}

func isYAMLPath(p string) bool {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}

func shorten(s string) string {
	const limit = 80
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
