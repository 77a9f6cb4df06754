// Package export regroups the canonical record table into the nested COCO
// document shape and writes it to disk.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// ExportCOCO regroups table into a COCO document and writes it as 4-space
// indented JSON at outputPath, returning the path written.
//
// Each row is examined independently: an image record is emitted when img_id
// is present, a category record when cat_id is present, an annotation record
// when ann_id is present. Whitespace-only cells count as missing. The three
// sequences are accumulated without deduplication or cross-referencing, so
// duplicate ids from a verbatim COCO merge flow straight into the output.
//
// Any id, image reference, or category reference that does not coerce to an
// integer, and any non-numeric area or bbox cell, aborts the export; the
// file is only written after every row has been processed, via a temp file
// and rename, so a failed export leaves nothing behind.
func ExportCOCO(table *types.Table, outputPath string) (string, error) {
	doc := types.NewDocument()

	for i := range table.Rows {
		if err := emitRow(table, i, doc); err != nil {
			return "", fmt.Errorf("row %d: %w", i, err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshaling coco document: %w", err)
	}

	if err := writeAtomic(outputPath, append(data, '\n')); err != nil {
		return "", err
	}
	return outputPath, nil
}

// emitRow appends the image, category, and annotation records the row
// provides, each gated only on its own id cell.
func emitRow(table *types.Table, i int, doc *types.Document) error {
	if cell := table.Cell(i, types.ColImgID); !isMissing(cell) {
		id, err := coerceInt(cell)
		if err != nil {
			return fmt.Errorf("img_id: %w", err)
		}
		// image_name and file_name both carry the img_file_name cell;
		// width and height are copied verbatim, not re-validated.
		fileName := cellString(table.Cell(i, types.ColImgFileName))
		doc.Images = append(doc.Images, types.ImageRecord{
			ID:        id,
			Width:     verbatim(table.Cell(i, types.ColImgWidth)),
			Height:    verbatim(table.Cell(i, types.ColImgHeight)),
			ImageName: fileName,
			FileName:  fileName,
		})
	}

	if cell := table.Cell(i, types.ColCatID); !isMissing(cell) {
		id, err := coerceInt(cell)
		if err != nil {
			return fmt.Errorf("cat_id: %w", err)
		}
		doc.Categories = append(doc.Categories, types.CategoryRecord{
			ID:            id,
			Name:          cellString(table.Cell(i, types.ColCatName)),
			Supercategory: cellString(table.Cell(i, types.ColCatSuper)),
		})
	}

	if cell := table.Cell(i, types.ColAnnID); !isMissing(cell) {
		ann, err := emitAnnotation(table, i)
		if err != nil {
			return err
		}
		doc.Annotations = append(doc.Annotations, ann)
	}

	return nil
}

// emitAnnotation builds one annotation record with the required integer
// coercions applied.
func emitAnnotation(table *types.Table, i int) (types.AnnotationRecord, error) {
	var rec types.AnnotationRecord

	id, err := coerceInt(table.Cell(i, types.ColAnnID))
	if err != nil {
		return rec, fmt.Errorf("ann_id: %w", err)
	}
	imageID, err := coerceInt(table.Cell(i, types.ColAnnImageID))
	if err != nil {
		return rec, fmt.Errorf("ann_image_id: %w", err)
	}
	categoryID, err := coerceInt(table.Cell(i, types.ColAnnCategoryID))
	if err != nil {
		return rec, fmt.Errorf("ann_category_id: %w", err)
	}

	area := verbatim(table.Cell(i, types.ColAnnArea))
	if err := checkNumeric(area); err != nil {
		return rec, fmt.Errorf("ann_area: %w", err)
	}
	bbox := verbatim(table.Cell(i, types.ColAnnBBox))
	if err := checkNumericList(bbox); err != nil {
		return rec, fmt.Errorf("ann_bbox: %w", err)
	}

	segmentation := verbatim(table.Cell(i, types.ColAnnSegmentation))
	if segmentation == nil {
		segmentation = []any{}
	}

	// iscrowd defaults to 0 when missing.
	iscrowd := verbatim(table.Cell(i, types.ColAnnIsCrowd))
	if iscrowd == nil {
		iscrowd = 0
	}

	return types.AnnotationRecord{
		ID:           id,
		Segmentation: segmentation,
		ImageID:      imageID,
		CategoryID:   categoryID,
		Area:         area,
		BBox:         bbox,
		IsCrowd:      iscrowd,
	}, nil
}

// isMissing reports whether a cell counts as absent: nil or a string that is
// empty or whitespace-only.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// verbatim normalizes missing cells to nil and passes everything else
// through untouched.
func verbatim(v any) any {
	if isMissing(v) {
		return nil
	}
	return v
}

// cellString renders a cell for a string-typed output field; missing cells
// become the empty string.
func cellString(v any) string {
	if isMissing(v) {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// coerceInt converts a cell to int. Floats truncate; numeric strings parse;
// anything else fails with ErrNotNumeric.
func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%q: %w", n, types.ErrNotNumeric)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%v (%T): %w", v, v, types.ErrNotNumeric)
	}
}

// checkNumeric verifies a present cell holds a number or numeric string.
func checkNumeric(v any) error {
	if v == nil {
		return nil
	}
	switch n := v.(type) {
	case int, int64, float64:
		return nil
	case string:
		if _, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err != nil {
			return fmt.Errorf("%q: %w", n, types.ErrNotNumeric)
		}
		return nil
	default:
		return fmt.Errorf("%v (%T): %w", v, v, types.ErrNotNumeric)
	}
}

// checkNumericList verifies a present cell holds a sequence of numbers.
func checkNumericList(v any) error {
	switch list := v.(type) {
	case nil:
		return nil
	case types.BBox:
		return nil
	case []float64:
		return nil
	case []int:
		return nil
	case []any:
		for _, item := range list {
			if err := checkNumeric(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%v (%T): %w", v, v, types.ErrNotNumeric)
	}
}

// writeAtomic writes data via a temp file and rename so no partial document
// is ever committed.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".coco-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
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
