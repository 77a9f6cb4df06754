package snapshot

import (
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labelpivot/internal/canonical"
	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

func sampleTable() *types.Table {
	return canonical.Assemble(&types.RawTables{
		Images: []types.Image{
			{ID: 0, Width: 640, Height: 480, ImageName: "a.jpg", FileName: "/data/a.jpg"},
		},
		Categories: []types.Category{
			{ID: 0, Name: "dog"},
		},
		Annotations: []types.Annotation{
			{ID: 0, Segmentation: []any{}, ImageID: 0, CategoryID: 0, Area: 20000, BBox: types.BBox{10, 20, 100, 200}, IsCrowd: 0},
		},
	}, types.DefaultSchema())
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canonical.csv")
	require.NoError(t, WriteCSV(sampleTable(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, types.DefaultSchema(), records[0])

	row := records[1]
	schema := types.DefaultSchema()
	byCol := map[string]string{}
	for i, col := range schema {
		byCol[col] = row[i]
	}
	assert.Equal(t, "0", byCol[types.ColImgID])
	assert.Equal(t, "640", byCol[types.ColImgWidth])
	assert.Equal(t, "a.jpg", byCol[types.ColImgImageName])
	assert.Equal(t, "0", byCol[types.ColCatID])
	assert.Equal(t, "[10,20,100,200]", byCol[types.ColAnnBBox])
	assert.Equal(t, "20000", byCol[types.ColAnnArea])
	assert.Equal(t, "", byCol[types.ColInfo])
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canonical.db")
	require.NoError(t, WriteSQLite(sampleTable(), path))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM canonical_records").Scan(&count))
	assert.Equal(t, 1, count)

	var imgID, catName, bbox string
	require.NoError(t, db.QueryRow(
		`SELECT img_id, cat_name, ann_bbox FROM canonical_records WHERE row_idx = 0`,
	).Scan(&imgID, &catName, &bbox))
	assert.Equal(t, "0", imgID)
	assert.Equal(t, "dog", catName)
	assert.Equal(t, "[10,20,100,200]", bbox)
}
