package types

// ImageRecord is one entry of a COCO document's images array.
type ImageRecord struct {
	ID        int    `json:"id"`
	Width     any    `json:"width"`
	Height    any    `json:"height"`
	ImageName string `json:"image_name"`
	FileName  string `json:"file_name"`
}

// CategoryRecord is one entry of a COCO document's categories array.
type CategoryRecord struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

// AnnotationRecord is one entry of a COCO document's annotations array.
type AnnotationRecord struct {
	ID           int     `json:"id"`
	Segmentation any     `json:"segmentation"`
	ImageID      int     `json:"image_id"`
	CategoryID   int     `json:"category_id"`
	Area         any     `json:"area"`
	BBox         any     `json:"bbox"`
	IsCrowd      any     `json:"iscrowd"`
}

// Document is the on-disk COCO output shape. Field order matches the fixed
// key ordering of the output artifact; the extra top-level sections are
// always present and empty.
type Document struct {
	Info                 map[string]any     `json:"info"`
	Images               []ImageRecord      `json:"images"`
	Categories           []CategoryRecord   `json:"categories"`
	Licenses             []any              `json:"licenses"`
	Errors               []any              `json:"errors"`
	Annotations          []AnnotationRecord `json:"annotations"`
	Labels               []any              `json:"labels"`
	Classifications      []any              `json:"classifications"`
	AugmentationSettings map[string]any     `json:"augmentation_settings"`
	TileSettings         map[string]any     `json:"tile_settings"`
	FalsePositive        map[string]any     `json:"False_positive"`
}

// NewDocument returns an empty Document with every section initialized, so
// empty sections serialize as [] and {} rather than null.
func NewDocument() *Document {
	return &Document{
		Info:                 map[string]any{},
		Images:               []ImageRecord{},
		Categories:           []CategoryRecord{},
		Licenses:             []any{},
		Errors:               []any{},
		Annotations:          []AnnotationRecord{},
		Labels:               []any{},
		Classifications:      []any{},
		AugmentationSettings: map[string]any{},
		TileSettings:         map[string]any{},
		FalsePositive:        map[string]any{},
	}
}
