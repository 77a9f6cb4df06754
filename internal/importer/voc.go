package importer

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// vocFile mirrors the Pascal VOC per-image XML layout.
type vocFile struct {
	XMLName  xml.Name    `xml:"annotation"`
	Filename string      `xml:"filename"`
	Path     string      `xml:"path"`
	Size     vocSize     `xml:"size"`
	Objects  []vocObject `xml:"object"`
}

type vocSize struct {
	Width  string `xml:"width"`
	Height string `xml:"height"`
}

type vocObject struct {
	Name   string    `xml:"name"`
	BndBox vocBndBox `xml:"bndbox"`
}

type vocBndBox struct {
	XMin string `xml:"xmin"`
	YMin string `xml:"ymin"`
	XMax string `xml:"xmax"`
	YMax string `xml:"ymax"`
}

// ImportVOC parses every .xml file in dir (one file per image, in directory
// order) into the three entity collections.
//
// img_id follows file-processing order and ann_id global object-processing
// order, both contiguous from 0. Categories are resolved by name through a
// single run-scoped index. Boxes convert from VOC corners to COCO
// [x, y, width, height] here, once; area = width * height. VOC carries no
// crowd or polygon data, so iscrowd is always 0 and segmentation empty.
//
// Any file that fails to parse aborts the whole import: callers pre-filter
// non-VOC files through the sniffer, so a malformed file here is a defect
// worth surfacing, not skipping.
func ImportVOC(dir string) (*types.RawTables, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	raw := &types.RawTables{}
	index := newCategoryIndex()
	imgID := 0
	annID := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var file vocFile
		if err := xml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing %s: %w: %v", path, types.ErrMalformedAnnotation, err)
		}

		raw.Images = append(raw.Images, types.Image{
			ID:        imgID,
			Width:     lenientInt(file.Size.Width),
			Height:    lenientInt(file.Size.Height),
			ImageName: file.Filename,
			FileName:  file.Path,
		})

		for _, obj := range file.Objects {
			if obj.Name == "" {
				return nil, fmt.Errorf("%s: object name: %w", path, types.ErrMissingField)
			}
			bbox, err := parseBndBox(obj.BndBox)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}

			raw.Annotations = append(raw.Annotations, types.Annotation{
				ID:           annID,
				Segmentation: []any{},
				ImageID:      imgID,
				CategoryID:   index.resolve(obj.Name),
				Area:         bbox.Area(),
				BBox:         bbox,
				IsCrowd:      0,
			})
			annID++
		}

		imgID++
	}

	raw.Categories = index.categories()
	return raw, nil
}

// parseBndBox converts the four corner coordinates, all required and
// integer-valued, into a COCO-convention box.
func parseBndBox(b vocBndBox) (types.BBox, error) {
	corners := [4]struct {
		name  string
		value string
	}{
		{"xmin", b.XMin},
		{"ymin", b.YMin},
		{"xmax", b.XMax},
		{"ymax", b.YMax},
	}

	var parsed [4]float64
	for i, c := range corners {
		raw := strings.TrimSpace(c.value)
		if raw == "" {
			return nil, fmt.Errorf("bndbox %s: %w", c.name, types.ErrMissingField)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("bndbox %s %q: %w", c.name, raw, types.ErrNotNumeric)
		}
		parsed[i] = float64(n)
	}

	return types.NewBBoxFromCorners(parsed[0], parsed[1], parsed[2], parsed[3]), nil
}

// lenientInt parses a dimension, coercing anything unparseable to 0.
func lenientInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
