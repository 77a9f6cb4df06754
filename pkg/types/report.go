package types

// Report summarizes one organize-and-convert run.
//
// AnnotationFormat is the majority format among the routed annotation files,
// or FormatMixed when no single format holds a strict majority. FormatCounts
// preserves the full per-format tally so mixed archives stay observable, and
// SkippedFiles counts files that matched no sniffer test and were left in
// place.
type Report struct {
	RunID              string         `json:"run_id"`
	DatasetName        string         `json:"dataset_name"`
	AnnotationFormat   string         `json:"annotation_format"`
	NumImages          int            `json:"num_images"`
	NumAnnotationFiles int            `json:"num_annotations_files"`
	SkippedFiles       int            `json:"skipped_files"`
	FormatCounts       map[string]int `json:"format_counts,omitempty"`
	OutputPath         string         `json:"output_path,omitempty"`
}
