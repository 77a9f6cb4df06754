package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// cocoDocument mirrors the subset of a COCO file the importer consumes.
type cocoDocument struct {
	Images      []cocoImage      `json:"images"`
	Categories  []cocoCategory   `json:"categories"`
	Annotations []cocoAnnotation `json:"annotations"`
}

type cocoImage struct {
	ID        int    `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageName string `json:"image_name"`
	FileName  string `json:"file_name"`
}

type cocoCategory struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

type cocoAnnotation struct {
	ID           int        `json:"id"`
	Segmentation any        `json:"segmentation"`
	ImageID      int        `json:"image_id"`
	CategoryID   int        `json:"category_id"`
	Area         float64    `json:"area"`
	BBox         types.BBox `json:"bbox"`
	IsCrowd      int        `json:"iscrowd"`
}

// ImportCOCO parses every .json file in dir (each already in COCO document
// shape, in directory order) and merges them into one run.
//
// With renumber false, ids are taken verbatim from each input file: no
// cross-file renumbering or category-name deduplication happens, so two
// files that both define category id 0 contribute two rows sharing that id,
// and the exporter's identity-blind grouping will carry the collision into
// the output. That is the documented merge behavior, not a defect to patch
// silently.
//
// With renumber true, image and annotation ids become positional counters
// from 0 across the merged set, categories are deduplicated by name through
// a run-scoped index, and annotation references are remapped accordingly.
func ImportCOCO(dir string, renumber bool) (*types.RawTables, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	raw := &types.RawTables{}
	index := newCategoryIndex()
	imgID := 0
	annID := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var doc cocoDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w: %v", path, types.ErrMalformedAnnotation, err)
		}

		if !renumber {
			appendVerbatim(raw, &doc)
			continue
		}

		// Per-file remap tables for foreign references.
		imageIDs := make(map[int]int, len(doc.Images))
		categoryIDs := make(map[int]int, len(doc.Categories))

		for _, img := range doc.Images {
			imageIDs[img.ID] = imgID
			raw.Images = append(raw.Images, types.Image{
				ID:        imgID,
				Width:     img.Width,
				Height:    img.Height,
				ImageName: img.ImageName,
				FileName:  img.FileName,
			})
			imgID++
		}

		for _, cat := range doc.Categories {
			id := index.resolve(cat.Name)
			categoryIDs[cat.ID] = id
			if cat.Supercategory != "" && index.ordered[id].Supercategory == "" {
				index.ordered[id].Supercategory = cat.Supercategory
			}
		}

		for _, ann := range doc.Annotations {
			raw.Annotations = append(raw.Annotations, types.Annotation{
				ID:           annID,
				Segmentation: ann.Segmentation,
				ImageID:      imageIDs[ann.ImageID],
				CategoryID:   categoryIDs[ann.CategoryID],
				Area:         ann.Area,
				BBox:         ann.BBox,
				IsCrowd:      ann.IsCrowd,
			})
			annID++
		}
	}

	if renumber {
		raw.Categories = index.categories()
	}
	return raw, nil
}

// appendVerbatim merges one document without touching any id.
func appendVerbatim(raw *types.RawTables, doc *cocoDocument) {
	for _, img := range doc.Images {
		raw.Images = append(raw.Images, types.Image{
			ID:        img.ID,
			Width:     img.Width,
			Height:    img.Height,
			ImageName: img.ImageName,
			FileName:  img.FileName,
		})
	}
	for _, cat := range doc.Categories {
		raw.Categories = append(raw.Categories, types.Category{
			ID:            cat.ID,
			Name:          cat.Name,
			Supercategory: cat.Supercategory,
		})
	}
	for _, ann := range doc.Annotations {
		raw.Annotations = append(raw.Annotations, types.Annotation{
			ID:           ann.ID,
			Segmentation: ann.Segmentation,
			ImageID:      ann.ImageID,
			CategoryID:   ann.CategoryID,
			Area:         ann.Area,
			BBox:         ann.BBox,
			IsCrowd:      ann.IsCrowd,
		})
	}
}
