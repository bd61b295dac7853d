package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/sheetgrid/internal/config"
	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL sheet loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and merges their blocks into one
// model. Columns keep file order; a second store block or a repeated row id
// is an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}
	seenRows := make(map[string]string)

	hclFiles, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, c := range root.Columns {
			model.Columns = append(model.Columns, translateColumn(c))
		}
		for _, s := range root.Stores {
			if model.Store != nil {
				return nil, fmt.Errorf("in %s: store %q: only one store block is allowed", file, s.Kind)
			}
			model.Store = translateStore(s)
		}
		for _, r := range root.Rows {
			if prev, dup := seenRows[r.ID]; dup {
				return nil, fmt.Errorf("in %s: row %q already defined in %s", file, r.ID, prev)
			}
			seenRows[r.ID] = file
			row, err := translateRow(r)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Rows = append(model.Rows, row)
		}
	}

	logger.Debug("HCL loading complete.", "columns", len(model.Columns), "rows", len(model.Rows), "store", model.Store != nil)
	return model, nil
}
