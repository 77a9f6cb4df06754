package types

// Format identifies an annotation dialect detected by the sniffer.
type Format string

// Recognized annotation formats. The string values match the labels the
// organizer writes into its report.
const (
	FormatVOC     Format = "Pascal VOC"
	FormatCOCO    Format = "COCO"
	FormatYOLO    Format = "YOLO"
	FormatUnknown Format = "Unknown"

	// FormatMixed is reported when no single format holds a majority
	// among the annotation files of one archive.
	FormatMixed Format = "Mixed"
)

// String returns the report label for the format.
func (f Format) String() string {
	if f == "" {
		return string(FormatUnknown)
	}
	return string(f)
}

// Bucket returns the annotations subdirectory name for the format, or an
// empty string for formats that have no bucket.
func (f Format) Bucket() string {
	switch f {
	case FormatVOC:
		return "xml"
	case FormatCOCO:
		return "coco"
	case FormatYOLO:
		return "yolo"
	default:
		return ""
	}
}
