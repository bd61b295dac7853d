// This file contains the logic for translating HCL schema structs into the
// format-agnostic sheet model defined in the config package.

package hcl_adapter

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/sheetgrid/internal/config"
	"github.com/specialistvlad/sheetgrid/internal/record"
)

func translateColumn(c *Column) *config.Column {
	return &config.Column{
		Label:      c.Label,
		Path:       c.Path,
		Validation: c.Validation,
		Hint:       c.Hint,
		Editor:     c.Editor,
		Choices:    c.Choices,
	}
}

func translateStore(s *Store) *config.Store {
	return &config.Store{
		Kind:               s.Kind,
		DSN:                s.DSN,
		URL:                s.URL,
		Namespace:          s.Namespace,
		InsecureSkipVerify: s.InsecureSkipVerify,
	}
}

// translateRow evaluates every attribute of a row body. Expressions are
// evaluated without variables, so only literal values are accepted.
func translateRow(r *Row) (*config.Row, error) {
	attrs, diags := r.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("row %q: %w", r.ID, diags)
	}
	fields := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		if strings.HasPrefix(name, "_") {
			return nil, fmt.Errorf("row %q: attribute %q: names starting with '_' are reserved", r.ID, name)
		}
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("row %q: attribute %q: %w", r.ID, name, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("row %q: attribute %q: %w", r.ID, name, err)
		}
		fields[name] = native
	}
	return &config.Row{ID: r.ID, Fields: fields}, nil
}

// reservedField reports whether key is managed by the grid rather than the user.
func reservedField(key string) bool {
	return key == record.IDKey || key == record.RevKey
}
