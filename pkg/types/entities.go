package types

// BBox is a bounding box in COCO convention: [x_min, y_min, width, height].
// VOC corner boxes are converted to this convention once, at import.
type BBox []float64

// NewBBoxFromCorners converts a VOC [xmin, ymin, xmax, ymax] corner box to
// the COCO [x, y, width, height] convention.
func NewBBoxFromCorners(xmin, ymin, xmax, ymax float64) BBox {
	return BBox{xmin, ymin, xmax - xmin, ymax - ymin}
}

// Area returns width * height.
func (b BBox) Area() float64 {
	if len(b) != 4 {
		return 0
	}
	return b[2] * b[3]
}

// Image describes one source image referenced by annotations.
// Width and height are non-negative; unparseable dimensions are coerced
// to zero during assembly.
type Image struct {
	ID        int    `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageName string `json:"image_name"`
	FileName  string `json:"file_name"`
}

// Category is an object class. Identity is the name string; the ID is
// assigned in first-seen order within one conversion run.
type Category struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

// Annotation is one labeled object. ImageID and CategoryID are foreign
// references resolved at parse time; they are never re-validated afterward.
type Annotation struct {
	ID           int     `json:"id"`
	Segmentation any     `json:"segmentation"`
	ImageID      int     `json:"image_id"`
	CategoryID   int     `json:"category_id"`
	Area         float64 `json:"area"`
	BBox         BBox    `json:"bbox"`
	IsCrowd      int     `json:"iscrowd"`
}

// RawTables holds the three per-entity collections an importer produces
// before canonical assembly.
type RawTables struct {
	Images      []Image
	Categories  []Category
	Annotations []Annotation
}
