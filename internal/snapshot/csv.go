package snapshot

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// WriteCSV dumps the canonical table as delimited text at path: a header
// row with the schema columns in order, then one line per table row. The
// file is written atomically via temp file and rename.
func WriteCSV(table *types.Table, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range table.Rows {
		row, err := renderRow(table, i)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".csv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
