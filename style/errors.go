package style

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every builder failure matches exactly one of them with
// errors.Is; loader failures are returned unchanged.
var (
	// ErrUnknownOption means an option key is not accepted by the operation.
	ErrUnknownOption = errors.New("style: unknown option")

	// ErrMissingField means a required field (id, type, source) is absent.
	ErrMissingField = errors.New("style: missing field")

	// ErrInvalidEnum means a type value is not one of the allowed values.
	ErrInvalidEnum = errors.New("style: invalid enum value")

	// ErrMissingGeojsonData means a geojson source has no data.
	ErrMissingGeojsonData = errors.New("style: geojson source requires data")

	// ErrDuplicateLayerID means a layer with the same id already exists.
	ErrDuplicateLayerID = errors.New("style: duplicate layer id")

	// ErrUnknownSource means a layer names a source that is not defined.
	ErrUnknownSource = errors.New("style: unknown source")

	// ErrUnknownLayer means no layer has the requested id.
	ErrUnknownLayer = errors.New("style: unknown layer")

	// ErrInvalidValue means a value has the wrong shape, e.g. a sprite that
	// is not a string.
	ErrInvalidValue = errors.New("style: invalid value")

	// ErrInvalidDocument means an externally supplied document breaks one of
	// the document invariants. Returned by Document.Check.
	ErrInvalidDocument = errors.New("style: invalid document")
)

// ValidationError describes a rejected builder call.
type ValidationError struct {
	Kind    error    // one of the sentinels above
	Value   string   // offending value
	Valid   []string // currently valid alternatives, if any
	Message string
}

func (e *ValidationError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Valid) > 0 {
		fmt.Fprintf(b, " (valid: %s)", strings.Join(quoteAll(e.Valid), ", "))
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// AsValidationError extracts a ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func newValidationError(kind error, value string, valid []string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Value:   value,
		Valid:   valid,
		Message: fmt.Sprintf(format, args...),
	}
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
