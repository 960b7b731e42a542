package value

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// plainSnake matches identifiers strcase converts exactly: lowercase letter
// words joined by single underscores. Digits and punctuation are word breaks
// for strcase, so anything else goes through camelSegments.
var plainSnake = regexp.MustCompile(`^[a-z]+(_[a-z]+)*$`)

// NormalizeKey converts a snake_case identifier into the casing used by the
// style document. Names listed in the hyphenated table get hyphens. Every
// other name is split on underscores only: the first segment is lowercased,
// each later segment gets an upper case first letter and the segments are
// joined. Characters other than underscores are kept, so "mapbox:group"
// stays as it is.
func NormalizeKey(id string) string {
	hyphenated := strings.ReplaceAll(id, "_", "-")
	if IsHyphenated(hyphenated) {
		return hyphenated
	}
	if plainSnake.MatchString(id) {
		return strcase.ToLowerCamel(id)
	}
	return camelSegments(id)
}

func camelSegments(id string) string {
	segments := strings.Split(id, "_")
	b := &strings.Builder{}
	b.WriteString(strings.ToLower(segments[0]))
	for _, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(seg[size:])
	}
	return b.String()
}

// IsHyphenated reports whether name is a hyphen-separated name of the style
// specification.
func IsHyphenated(name string) bool {
	_, ok := hyphenatedNames[name]
	return ok
}
