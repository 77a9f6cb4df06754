package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

func sampleRaw() *types.RawTables {
	return &types.RawTables{
		Images: []types.Image{
			{ID: 0, Width: 640, Height: 480, ImageName: "a.jpg", FileName: "/data/a.jpg"},
		},
		Categories: []types.Category{
			{ID: 0, Name: "dog"},
		},
		Annotations: []types.Annotation{
			{ID: 0, Segmentation: []any{}, ImageID: 0, CategoryID: 0, Area: 20000, BBox: types.BBox{10, 20, 100, 200}, IsCrowd: 0},
			{ID: 1, Segmentation: []any{}, ImageID: 0, CategoryID: 0, Area: 2500, BBox: types.BBox{0, 0, 50, 50}, IsCrowd: 0},
		},
	}
}

func TestAssembleSchemaCompleteness(t *testing.T) {
	table := Assemble(sampleRaw(), types.DefaultSchema())

	assert.Equal(t, types.DefaultSchema(), table.Columns)
	require.Equal(t, 2, table.NumRows())
	for _, row := range table.Rows {
		require.Len(t, row, len(types.DefaultSchema()))
		for _, col := range table.Columns {
			_, ok := row[col]
			assert.True(t, ok, "column %s must exist in every row", col)
		}
	}
}

func TestAssemblePositionalAlignment(t *testing.T) {
	table := Assemble(sampleRaw(), types.DefaultSchema())

	// Row 0 carries image, category, and first annotation fields.
	assert.Equal(t, 0, table.Cell(0, types.ColImgID))
	assert.Equal(t, "0", table.Cell(0, types.ColCatID))
	assert.Equal(t, 0, table.Cell(0, types.ColAnnID))

	// Row 1 has only annotation fields; the rest are sentinel-filled.
	assert.Equal(t, types.Empty, table.Cell(1, types.ColImgID))
	assert.Equal(t, types.Empty, table.Cell(1, types.ColCatID))
	assert.Equal(t, 1, table.Cell(1, types.ColAnnID))
	assert.Equal(t, types.BBox{0, 0, 50, 50}, table.Cell(1, types.ColAnnBBox))
}

func TestAssembleInFlightStringIDs(t *testing.T) {
	table := Assemble(sampleRaw(), types.DefaultSchema())

	// cat_id and ann_category_id are strings while the table is in flight.
	assert.IsType(t, "", table.Cell(0, types.ColCatID))
	assert.IsType(t, "", table.Cell(0, types.ColAnnCategoryID))
	assert.Equal(t, "0", table.Cell(0, types.ColAnnCategoryID))
}

func TestAssembleCoercesDimensions(t *testing.T) {
	raw := &types.RawTables{
		Images: []types.Image{{ID: 0, Width: -5, Height: 480}},
	}
	table := Assemble(raw, types.DefaultSchema())
	assert.Equal(t, 0, table.Cell(0, types.ColImgWidth))
	assert.Equal(t, 480, table.Cell(0, types.ColImgHeight))
}

func TestAssembleFixedColumnsAreSentinel(t *testing.T) {
	table := Assemble(sampleRaw(), types.DefaultSchema())
	for _, col := range []string{
		types.ColInfo, types.ColLicenses, types.ColErrors, types.ColLabels,
		types.ColClassifications, types.ColAugmentation, types.ColTileSettings,
		types.ColFalsePositive,
	} {
		assert.Equal(t, types.Empty, table.Cell(0, col), col)
	}
}

func TestAssembleAlternateSchema(t *testing.T) {
	schema := []string{types.ColAnnID, types.ColImgID, "custom"}
	table := Assemble(sampleRaw(), schema)

	assert.Equal(t, schema, table.Columns)
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, types.Empty, table.Cell(0, "custom"))

	// Columns outside the schema are dropped.
	_, ok := table.Rows[0][types.ColCatName]
	assert.False(t, ok)
}

func TestAssembleEmptyInput(t *testing.T) {
	table := Assemble(&types.RawTables{}, types.DefaultSchema())
	assert.Zero(t, table.NumRows())
	assert.Equal(t, types.DefaultSchema(), table.Columns)
}
