package types

// Canonical column names referenced by the importers, assembler, and exporter.
const (
	ColInfo            = "info"
	ColImgID           = "img_id"
	ColImgWidth        = "img_width"
	ColImgHeight       = "img_height"
	ColImgImageName    = "img_image_name"
	ColImgFileName     = "img_file_name"
	ColLicenses        = "licenses"
	ColCatID           = "cat_id"
	ColCatName         = "cat_name"
	ColCatSuper        = "cat_supercategory"
	ColErrors          = "errors"
	ColAnnID           = "ann_id"
	ColAnnSegmentation = "ann_segmentation"
	ColAnnImageID      = "ann_image_id"
	ColAnnCategoryID   = "ann_category_id"
	ColAnnArea         = "ann_area"
	ColAnnBBox         = "ann_bbox"
	ColAnnIsCrowd      = "ann_iscrowd"
	ColLabels          = "labels"
	ColClassifications = "classifications"
	ColAugmentation    = "augmentation_settings"
	ColTileSettings    = "tile_settings"
	ColFalsePositive   = "False_positive"
)

// defaultSchema is the fixed canonical column ordering. Column order is
// significant on export; callers may supply an alternate ordering through
// Config.Schema.
var defaultSchema = []string{
	ColInfo, ColImgID, ColImgWidth, ColImgHeight, ColImgImageName, ColImgFileName,
	ColLicenses, ColCatID, ColCatName, ColCatSuper, ColErrors, ColAnnID,
	ColAnnSegmentation, ColAnnImageID, ColAnnCategoryID, ColAnnArea, ColAnnBBox,
	ColAnnIsCrowd, ColLabels, ColClassifications, ColAugmentation,
	ColTileSettings, ColFalsePositive,
}

// DefaultSchema returns a copy of the fixed canonical column ordering.
func DefaultSchema() []string {
	out := make([]string, len(defaultSchema))
	copy(out, defaultSchema)
	return out
}

// Empty is the sentinel value for cells absent from a given import.
const Empty = ""

// Row is one positionally-aligned record of the canonical table, keyed by
// column name. Rows pair image, category, and annotation fields that aligned
// by position during assembly; ann_image_id and ann_category_id remain the
// authoritative foreign keys for any relational reading of the table.
type Row map[string]any

// Table is the canonical wide record table: the pivot format between all
// native annotation dialects. Column order follows Columns, not map order.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column ordering.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Append adds a row. Columns missing from the row are left to Reindex to
// fill with the Empty sentinel.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Cell returns the value at row i, or the Empty sentinel when the column is
// absent from that row.
func (t *Table) Cell(i int, column string) any {
	v, ok := t.Rows[i][column]
	if !ok {
		return Empty
	}
	return v
}

// Reindex returns a new table with exactly the given columns in the given
// order. Columns absent from a row are created and filled with the Empty
// sentinel; columns outside the schema are dropped.
func (t *Table) Reindex(schema []string) *Table {
	out := NewTable(schema)
	for _, row := range t.Rows {
		next := make(Row, len(schema))
		for _, col := range schema {
			if v, ok := row[col]; ok && v != nil {
				next[col] = v
			} else {
				next[col] = Empty
			}
		}
		out.Append(next)
	}
	return out
}
