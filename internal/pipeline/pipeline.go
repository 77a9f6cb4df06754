// Package pipeline drives one conversion run end to end: extract, organize,
// import, assemble, export.
package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/labelpivot/internal/archive"
	"github.com/mesh-intelligence/labelpivot/internal/canonical"
	"github.com/mesh-intelligence/labelpivot/internal/export"
	"github.com/mesh-intelligence/labelpivot/internal/importer"
	"github.com/mesh-intelligence/labelpivot/internal/organize"
	"github.com/mesh-intelligence/labelpivot/internal/snapshot"
	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// Artifact filenames written under the cocos bucket.
const (
	outputFileName      = "train_coco.json"
	csvSnapshotFileName = "canonical.csv"
	dbSnapshotFileName  = "canonical.db"
)

// Converter runs conversions with a fixed configuration. Each run owns its
// own state end to end; one Converter may serve many runs.
type Converter struct {
	cfg types.Config
}

// New creates a Converter. Returns an error when the configuration is
// invalid.
func New(cfg types.Config) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Converter{cfg: cfg}, nil
}

// ConvertArchive extracts the zip archive at zipPath into a per-run scratch
// directory, organizes and converts it, and removes the scratch directory.
// Prior filesystem reorganization is not rolled back on failure; the
// scratch directory is cleaned up regardless.
func (c *Converter) ConvertArchive(zipPath string) (*types.Report, error) {
	runID := archive.NewRunID()
	scratch := archive.ScratchDir(c.cfg.OutputDir, runID)

	if err := archive.ExtractZip(zipPath, scratch); err != nil {
		return nil, err
	}
	defer organize.Cleanup(scratch)

	report, err := c.convertTree(scratch, filepath.Base(zipPath))
	if err != nil {
		return nil, err
	}
	report.RunID = runID

	if err := organize.Cleanup(scratch); err != nil {
		return nil, err
	}
	return report, nil
}

// ConvertTree organizes and converts an already-extracted directory tree.
// Files are moved out of root into the organized buckets; root itself is
// left in place.
func (c *Converter) ConvertTree(root string) (*types.Report, error) {
	report, err := c.convertTree(root, filepath.Base(root))
	if err != nil {
		return nil, err
	}
	report.RunID = archive.NewRunID()
	return report, nil
}

// convertTree runs organize → import → assemble → export for one source
// tree.
func (c *Converter) convertTree(root, datasetName string) (*types.Report, error) {
	layout, err := organize.Scaffold(c.cfg.OutputDir, datasetName)
	if err != nil {
		return nil, err
	}

	report, err := organize.New(layout).Organize(root)
	if err != nil {
		return nil, err
	}
	report.DatasetName = datasetName

	outputPath, err := c.convertFormat(layout, types.Format(report.AnnotationFormat))
	if err != nil {
		return nil, err
	}
	report.OutputPath = outputPath
	return report, nil
}

// convertFormat dispatches on the detected format, assembles the canonical
// table, writes any requested snapshots, and exports the COCO document.
func (c *Converter) convertFormat(layout *organize.Layout, format types.Format) (string, error) {
	var raw *types.RawTables
	var err error

	switch format {
	case types.FormatVOC:
		raw, err = importer.ImportVOC(layout.AnnotationBucket(types.FormatVOC))
	case types.FormatCOCO:
		raw, err = importer.ImportCOCO(layout.AnnotationBucket(types.FormatCOCO), c.cfg.RenumberCOCO)
	case types.FormatYOLO:
		return "", fmt.Errorf("converting %s: %w", format, types.ErrUnsupportedFormat)
	case types.FormatMixed:
		return "", fmt.Errorf("archive mixes annotation formats: %w", types.ErrUnsupportedFormat)
	default:
		return "", fmt.Errorf("no annotation format detected: %w", types.ErrUnknownFormat)
	}
	if err != nil {
		return "", err
	}

	table := canonical.Assemble(raw, c.cfg.EffectiveSchema())

	if c.cfg.CSVSnapshot {
		if err := snapshot.WriteCSV(table, filepath.Join(layout.CocosDir, csvSnapshotFileName)); err != nil {
			return "", err
		}
	}
	if c.cfg.SQLiteSnapshot {
		if err := snapshot.WriteSQLite(table, filepath.Join(layout.CocosDir, dbSnapshotFileName)); err != nil {
			return "", err
		}
	}

	return export.ExportCOCO(table, filepath.Join(layout.CocosDir, outputFileName))
}
