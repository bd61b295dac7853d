package hcl_adapter

import (
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/sheetgrid/internal/record"
)

// WriteRows renders records as `row` blocks that Load reads back. Fields
// managed by the grid are left out.
func WriteRows(w io.Writer, rows []*record.Record) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, r := range rows {
		if r.ID() == "" {
			return fmt.Errorf("row %d has no id", i)
		}
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("row", []string{r.ID()})
		fields := r.Fields()
		keys := make([]string, 0, len(fields))
		for k := range fields {
			if !reservedField(k) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !hclsyntax.ValidIdentifier(k) {
				return fmt.Errorf("row %q: field %q is not a valid attribute name", r.ID(), k)
			}
			val, err := ToCtyValue(fields[k])
			if err != nil {
				return fmt.Errorf("row %q: field %q: %w", r.ID(), k, err)
			}
			block.Body().SetAttributeValue(k, val)
		}
	}
	_, err := f.WriteTo(w)
	return err
}
