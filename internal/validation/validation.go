// Package validation provides the predicates used to flag cell values. A
// failing predicate only changes visual state; it never blocks typing or a
// commit.
package validation

import (
	"errors"
	"fmt"
	"regexp"
)

// Predicate reports whether text is acceptable for a column.
type Predicate func(text string) bool

// Kind names a built-in predicate.
type Kind string

const (
	Phone    Kind = "phone"
	NotBlank Kind = "notblank"
	Integer  Kind = "integer"
)

// ErrUnknownKind is returned by Lookup for names without a built-in predicate.
var ErrUnknownKind = errors.New("unknown validation kind")

type builtin struct {
	pattern *regexp.Regexp
	hint    string
}

var builtins = map[Kind]builtin{
	Phone:    {regexp.MustCompile(`^\s*\+\d{11}\s*$`), "Phone number: +12345678901"},
	NotBlank: {regexp.MustCompile(`\w`), "Value required"},
	Integer:  {regexp.MustCompile(`^\s*\d+\s*$`), "Numbers only"},
}

// Lookup returns the predicate and its default hint for a built-in kind. The
// empty kind means "no validation" and yields a nil predicate.
func Lookup(kind Kind) (Predicate, string, error) {
	if kind == "" {
		return nil, "", nil
	}
	b, ok := builtins[kind]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	return b.pattern.MatchString, b.hint, nil
}

// Check runs p against text. A nil predicate accepts everything.
func Check(p Predicate, text string) bool {
	if p == nil {
		return true
	}
	return p(text)
}
