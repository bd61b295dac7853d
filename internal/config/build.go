package config

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/sheetgrid/internal/record"
	"github.com/specialistvlad/sheetgrid/internal/sheet"
	"github.com/specialistvlad/sheetgrid/internal/validation"
)

// Editor names accepted in column definitions.
const EditorChoice = "choice"

var (
	// ErrUnknownEditor is returned for editor names without an implementation.
	ErrUnknownEditor = errors.New("unknown editor")
	// ErrUnknownStore is returned for unsupported store kinds.
	ErrUnknownStore = errors.New("unknown store kind")
)

// BuildColumns resolves validation kinds and editors into grid columns.
func BuildColumns(m *Model) ([]sheet.Column, error) {
	cols := make([]sheet.Column, 0, len(m.Columns))
	for _, c := range m.Columns {
		if len(c.Path) == 0 {
			return nil, fmt.Errorf("column %q: path must not be empty", c.Label)
		}
		pred, hint, err := validation.Lookup(validation.Kind(c.Validation))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Label, err)
		}
		if c.Hint != "" {
			hint = c.Hint
		}
		col := sheet.Column{
			Label:    c.Label,
			Path:     append([]string(nil), c.Path...),
			Validate: pred,
			Hint:     hint,
		}
		switch c.Editor {
		case "":
		case EditorChoice:
			if len(c.Choices) == 0 {
				return nil, fmt.Errorf("column %q: choice editor needs choices", c.Label)
			}
			col.Editor = sheet.ChoiceEditor{Options: append([]string(nil), c.Choices...)}
		default:
			return nil, fmt.Errorf("column %q: %w: %q", c.Label, ErrUnknownEditor, c.Editor)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// BuildRows turns row definitions into records. The row name becomes "_id".
func BuildRows(m *Model) []*record.Record {
	rows := make([]*record.Record, 0, len(m.Rows))
	for _, r := range m.Rows {
		fields := make(map[string]any, len(r.Fields)+1)
		for k, v := range r.Fields {
			fields[k] = v
		}
		fields[record.IDKey] = r.ID
		rows = append(rows, record.New(fields))
	}
	return rows
}

// StoreKind returns the configured store kind, defaulting to memory.
func (m *Model) StoreKind() (string, error) {
	if m.Store == nil || m.Store.Kind == "" {
		return StoreMemory, nil
	}
	switch m.Store.Kind {
	case StoreMemory, StoreSQLite, StoreSocketIO:
		return m.Store.Kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStore, m.Store.Kind)
}
