// Package sniff classifies annotation files by structural inspection.
// Classification is a pure query over file content: a parse failure means
// "not this format", never an error.
package sniff

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// DetectFile reads a file and classifies its content. Only I/O failures are
// returned as errors; unparseable content classifies as FormatUnknown.
func DetectFile(path string) (types.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.FormatUnknown, fmt.Errorf("reading %s: %w", path, err)
	}
	return Detect(data), nil
}

// Detect classifies raw content by trying each format test in order of
// structural strictness. YOLO is tested last: any numeric 5-tuple text
// passes its heuristic.
func Detect(data []byte) types.Format {
	switch {
	case IsVOC(data):
		return types.FormatVOC
	case IsCOCO(data):
		return types.FormatCOCO
	case IsYOLO(data):
		return types.FormatYOLO
	default:
		return types.FormatUnknown
	}
}

// vocProbe matches the minimal Pascal VOC shape: an <annotation> root with
// at least one <object> child.
type vocProbe struct {
	XMLName xml.Name   `xml:"annotation"`
	Objects []struct{} `xml:"object"`
}

// IsVOC reports whether data is a well-formed Pascal VOC annotation: XML
// with root element <annotation> containing at least one <object>.
func IsVOC(data []byte) bool {
	var probe vocProbe
	if err := xml.Unmarshal(data, &probe); err != nil {
		return false
	}
	return len(probe.Objects) > 0
}

// IsCOCO reports whether data is a COCO document: a JSON object whose top
// level contains the annotations, images, and categories keys.
func IsCOCO(data []byte) bool {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	for _, key := range []string{"annotations", "images", "categories"} {
		if _, ok := doc[key]; !ok {
			return false
		}
	}
	return true
}

// IsYOLO reports whether every non-empty line of data splits into exactly 5
// whitespace-separated numeric fields. A single malformed line disqualifies
// the file, and a file with no non-empty lines does not qualify. This is a
// best-effort heuristic, not a format spec: any numeric 5-tuple text (a
// stray CSV, say) passes it.
func IsYOLO(data []byte) bool {
	seen := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 5 {
			return false
		}
		for _, f := range fields {
			if _, err := strconv.ParseFloat(f, 64); err != nil {
				return false
			}
		}
		seen = true
	}
	return seen
}
