// Package canonical assembles importer output into the fixed wide record
// table that pivots between all native annotation dialects.
package canonical

import (
	"strconv"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// Assemble merges the three entity collections into one table conforming to
// the given schema.
//
// The merge is column-wise and positional: row i pairs image i, category i,
// and annotation i, whichever of those exist. Rows are NOT one annotation
// per row when the collection lengths differ; ann_image_id and
// ann_category_id remain the authoritative foreign keys for any relational
// reading. Category and annotation-category ids are carried as strings while
// the table is in flight (downstream joins compare by string equality);
// they only become integers again at COCO export. Cells the source format
// never provided are created and filled with the empty-string sentinel.
func Assemble(raw *types.RawTables, schema []string) *types.Table {
	table := types.NewTable(schema)

	rows := max(len(raw.Images), max(len(raw.Categories), len(raw.Annotations)))
	for i := 0; i < rows; i++ {
		row := types.Row{}

		if i < len(raw.Images) {
			img := raw.Images[i]
			row[types.ColImgID] = img.ID
			row[types.ColImgWidth] = coerceDimension(img.Width)
			row[types.ColImgHeight] = coerceDimension(img.Height)
			row[types.ColImgImageName] = img.ImageName
			row[types.ColImgFileName] = img.FileName
		}

		if i < len(raw.Categories) {
			cat := raw.Categories[i]
			row[types.ColCatID] = strconv.Itoa(cat.ID)
			row[types.ColCatName] = cat.Name
			row[types.ColCatSuper] = cat.Supercategory
		}

		if i < len(raw.Annotations) {
			ann := raw.Annotations[i]
			row[types.ColAnnID] = ann.ID
			row[types.ColAnnSegmentation] = ann.Segmentation
			row[types.ColAnnImageID] = ann.ImageID
			row[types.ColAnnCategoryID] = strconv.Itoa(ann.CategoryID)
			row[types.ColAnnArea] = ann.Area
			row[types.ColAnnBBox] = ann.BBox
			row[types.ColAnnIsCrowd] = ann.IsCrowd
		}

		table.Append(row)
	}

	// Reindex guarantees exact schema compliance: absent columns filled
	// with the sentinel, anything else dropped.
	return table.Reindex(schema)
}

// coerceDimension clamps image dimensions to non-negative integers; anything
// invalid becomes 0.
func coerceDimension(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
