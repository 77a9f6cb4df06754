package organize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// Bucket directory names under the converted_<dataset> root.
const (
	trainImagesDirName      = "train_images"
	validationImagesDirName = "validation_images"
	cocosDirName            = "cocos"
	annotationsDirName      = "annotations"
)

// seedCocoFiles are created empty during scaffolding; the converter later
// writes train_coco.json alongside them.
var seedCocoFiles = []string{"val_coco.json", "test_coco.json"}

// Layout holds the organized bucket paths for one dataset.
type Layout struct {
	BaseDir             string
	TrainImagesDir      string
	ValidationImagesDir string
	CocosDir            string
	AnnotationsDir      string
}

// AnnotationBucket returns the annotations subdirectory for a format.
func (l *Layout) AnnotationBucket(format types.Format) string {
	return filepath.Join(l.AnnotationsDir, format.Bucket())
}

// Scaffold creates the converted_<dataset> directory tree under outputDir
// and seeds the cocos bucket with empty COCO documents. Scaffolding is
// idempotent: existing directories are reused and existing seed files are
// left untouched.
func Scaffold(outputDir, datasetName string) (*Layout, error) {
	baseDir := filepath.Join(outputDir, "converted_"+datasetName)
	layout := &Layout{
		BaseDir:             baseDir,
		TrainImagesDir:      filepath.Join(baseDir, trainImagesDirName),
		ValidationImagesDir: filepath.Join(baseDir, validationImagesDirName),
		CocosDir:            filepath.Join(baseDir, cocosDirName),
		AnnotationsDir:      filepath.Join(baseDir, annotationsDirName),
	}

	dirs := []string{
		layout.BaseDir,
		layout.TrainImagesDir,
		layout.ValidationImagesDir,
		layout.CocosDir,
		layout.AnnotationsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	for _, name := range seedCocoFiles {
		path := filepath.Join(layout.CocosDir, name)
		if err := seedCocoFile(path); err != nil {
			return nil, err
		}
	}

	return layout, nil
}

// seedCocoFile writes an empty COCO document if the file does not exist.
func seedCocoFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := json.MarshalIndent(types.NewDocument(), "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling empty coco document: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("seeding %s: %w", path, err)
	}
	return nil
}
