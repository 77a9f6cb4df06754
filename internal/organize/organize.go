// Package organize routes the files of an extracted dataset archive into
// image and per-format annotation buckets, using structural sniffing rather
// than extension trust, and reports what it found.
package organize

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/labelpivot/internal/sniff"
	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// imageExtensions are routed to the train images bucket, case-insensitive.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// sniffByExtension maps an annotation extension to the single format test
// applied to files carrying it.
var sniffByExtension = map[string]struct {
	format types.Format
	test   func([]byte) bool
}{
	".xml":  {types.FormatVOC, sniff.IsVOC},
	".txt":  {types.FormatYOLO, sniff.IsYOLO},
	".json": {types.FormatCOCO, sniff.IsCOCO},
}

// majorityOrder fixes the tally iteration order so majority selection is
// deterministic.
var majorityOrder = []types.Format{types.FormatVOC, types.FormatCOCO, types.FormatYOLO}

// Organizer walks an extraction tree and relocates every classified file
// into the layout's buckets.
type Organizer struct {
	layout *Layout
}

// New creates an Organizer that routes files into the given layout.
func New(layout *Layout) *Organizer {
	return &Organizer{layout: layout}
}

// Organize classifies and relocates every file under scratchDir. Images move
// to the train images bucket; annotation files that pass their extension's
// sniff test move to the matching format bucket. Files that match nothing
// stay where they are and are tallied as skipped.
//
// The returned report carries per-format counts; AnnotationFormat is the
// strict majority among them, Mixed on a tie, Unknown when no annotation
// file was routed.
func (o *Organizer) Organize(scratchDir string) (*types.Report, error) {
	report := &types.Report{FormatCounts: map[string]int{}}

	err := filepath.WalkDir(scratchDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return o.routeFile(path, report)
	})
	if err != nil {
		return nil, fmt.Errorf("organizing %s: %w", scratchDir, err)
	}

	report.AnnotationFormat = majorityFormat(report.FormatCounts).String()
	return report, nil
}

// routeFile classifies a single file and moves it to its bucket.
func (o *Organizer) routeFile(path string, report *types.Report) error {
	ext := strings.ToLower(filepath.Ext(path))

	if imageExtensions[ext] {
		if _, err := moveFile(path, o.layout.TrainImagesDir); err != nil {
			return err
		}
		report.NumImages++
		return nil
	}

	probe, ok := sniffByExtension[ext]
	if !ok {
		report.SkippedFiles++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !probe.test(data) {
		report.SkippedFiles++
		return nil
	}

	if _, err := moveFile(path, o.layout.AnnotationBucket(probe.format)); err != nil {
		return err
	}
	report.NumAnnotationFiles++
	report.FormatCounts[string(probe.format)]++
	return nil
}

// moveFile moves src into dstDir, creating the directory if needed. When the
// destination name is taken, a numeric suffix is appended before the
// extension and incremented until a free name is found, so no source file
// ever overwrites another. Returns the destination path used.
func moveFile(src, dstDir string) (string, error) {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dstDir, err)
	}

	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	dst := filepath.Join(dstDir, base)
	for n := 1; ; n++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		} else if err != nil {
			return "", fmt.Errorf("stat %s: %w", dst, err)
		}
		dst = filepath.Join(dstDir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}

	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("moving %s to %s: %w", src, dst, err)
	}
	return dst, nil
}

// majorityFormat picks the format with the strictly greatest count. Ties
// between two or more leading formats report Mixed; an empty tally reports
// Unknown.
func majorityFormat(counts map[string]int) types.Format {
	best := types.FormatUnknown
	bestCount := 0
	tied := false
	for _, f := range majorityOrder {
		c := counts[string(f)]
		if c == 0 {
			continue
		}
		switch {
		case c > bestCount:
			best, bestCount, tied = f, c, false
		case c == bestCount:
			tied = true
		}
	}
	if bestCount == 0 {
		return types.FormatUnknown
	}
	if tied {
		return types.FormatMixed
	}
	return best
}

// Cleanup removes the extraction scratch directory. It is a no-op when the
// directory is already absent and never touches the organized buckets.
func Cleanup(scratchDir string) error {
	if err := os.RemoveAll(scratchDir); err != nil {
		return fmt.Errorf("cleaning up %s: %w", scratchDir, err)
	}
	return nil
}
