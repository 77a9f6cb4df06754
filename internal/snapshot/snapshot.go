// Package snapshot writes debug copies of the canonical record table: a
// delimited-text dump for interop and a SQLite database for interactive
// inspection. Snapshots are observational only; no pipeline stage reads
// them back.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// renderCell flattens a canonical cell to text. Strings pass through
// unquoted; everything else (numbers, boxes, segmentation lists) is JSON
// encoded.
func renderCell(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("rendering cell %v: %w", v, err)
	}
	return string(data), nil
}

// renderRow flattens one row in column order.
func renderRow(table *types.Table, i int) ([]string, error) {
	out := make([]string, len(table.Columns))
	for j, col := range table.Columns {
		s, err := renderCell(table.Cell(i, col))
		if err != nil {
			return nil, err
		}
		out[j] = s
	}
	return out, nil
}
