package pipeline

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

const vocDog = `<annotation>
	<filename>dog.jpg</filename>
	<path>/data/dog.jpg</path>
	<size><width>640</width><height>480</height></size>
	<object>
		<name>dog</name>
		<bndbox><xmin>10</xmin><ymin>20</ymin><xmax>110</xmax><ymax>220</ymax></bndbox>
	</object>
	<object>
		<name>cat</name>
		<bndbox><xmin>0</xmin><ymin>0</ymin><xmax>50</xmax><ymax>50</ymax></bndbox>
	</object>
</annotation>`

const cocoDoc = `{
	"images": [{"id": 0, "width": 800, "height": 600, "file_name": "c.jpg"}],
	"categories": [{"id": 0, "name": "car", "supercategory": "vehicle"}],
	"annotations": [{"id": 0, "image_id": 0, "category_id": 0, "area": 50, "bbox": [5, 6, 10, 5], "iscrowd": 0}]
}`

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readDocument(t *testing.T, path string) types.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc types.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestConvertTreeVOC(t *testing.T) {
	out := t.TempDir()
	src := filepath.Join(t.TempDir(), "dataset")
	writeTree(t, src, map[string]string{
		"dog.xml":        vocDog,
		"images/dog.jpg": "jpegbytes",
	})

	conv, err := New(types.Config{OutputDir: out, CSVSnapshot: true})
	require.NoError(t, err)

	report, err := conv.ConvertTree(src)
	require.NoError(t, err)

	assert.Equal(t, "dataset", report.DatasetName)
	assert.Equal(t, string(types.FormatVOC), report.AnnotationFormat)
	assert.Equal(t, 1, report.NumImages)
	assert.Equal(t, 1, report.NumAnnotationFiles)
	assert.NotEmpty(t, report.RunID)

	doc := readDocument(t, report.OutputPath)
	require.Len(t, doc.Images, 1)
	require.Len(t, doc.Categories, 1)
	require.Len(t, doc.Annotations, 2)
	assert.Equal(t, "/data/dog.jpg", doc.Images[0].FileName)

	// The CSV snapshot lands next to the output document.
	assert.FileExists(t, filepath.Join(filepath.Dir(report.OutputPath), "canonical.csv"))
}

func TestConvertArchiveCOCO(t *testing.T) {
	out := t.TempDir()
	zipPath := filepath.Join(t.TempDir(), "cars.zip")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, content := range map[string]string{
		"annotations.json": cocoDoc,
		"images/c.jpg":     "jpegbytes",
	} {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	conv, err := New(types.Config{OutputDir: out})
	require.NoError(t, err)

	report, err := conv.ConvertArchive(zipPath)
	require.NoError(t, err)

	assert.Equal(t, "cars.zip", report.DatasetName)
	assert.Equal(t, string(types.FormatCOCO), report.AnnotationFormat)

	doc := readDocument(t, report.OutputPath)
	require.Len(t, doc.Annotations, 1)
	assert.Equal(t, "car", doc.Categories[0].Name)

	// Scratch space is cleaned up; organized buckets remain.
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "converted_cars.zip", entries[0].Name())
	assert.FileExists(t, filepath.Join(out, "converted_cars.zip", "train_images", "c.jpg"))
}

func TestConvertTreeYOLOUnsupported(t *testing.T) {
	src := filepath.Join(t.TempDir(), "yolo-set")
	writeTree(t, src, map[string]string{
		"labels.txt": "0 0.5 0.5 0.1 0.1\n",
	})

	conv, err := New(types.Config{OutputDir: t.TempDir()})
	require.NoError(t, err)

	_, err = conv.ConvertTree(src)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestConvertTreeNothingDetected(t *testing.T) {
	src := filepath.Join(t.TempDir(), "empty-set")
	writeTree(t, src, map[string]string{"readme.md": "hello"})

	conv, err := New(types.Config{OutputDir: t.TempDir()})
	require.NoError(t, err)

	_, err = conv.ConvertTree(src)
	assert.ErrorIs(t, err, types.ErrUnknownFormat)
}

func TestNewRejectsBadSchema(t *testing.T) {
	_, err := New(types.Config{Schema: []string{"img_id", ""}})
	assert.ErrorIs(t, err, types.ErrSchemaEmpty)
}
