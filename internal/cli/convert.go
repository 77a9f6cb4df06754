package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labelpivot/internal/pipeline"
	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// convertFlags holds per-invocation overrides of the config file values.
type convertFlags struct {
	csvSnapshot    bool
	sqliteSnapshot bool
	renumber       bool
}

func newConvertCmd() *cobra.Command {
	var local convertFlags

	cmd := &cobra.Command{
		Use:   "convert <archive.zip | directory>",
		Short: "Convert a dataset archive to a COCO JSON document",
		Long: "Extract (when given a zip), organize, and convert a dataset in Pascal VOC\n" +
			"or COCO layout into cocos/train_coco.json under the converted_<dataset> tree.\n" +
			"YOLO datasets are detected but not yet convertible.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], local)
		},
	}

	cmd.Flags().BoolVar(&local.csvSnapshot, "csv-snapshot", false, "also write the canonical table as CSV")
	cmd.Flags().BoolVar(&local.sqliteSnapshot, "sqlite-snapshot", false, "also write the canonical table as a SQLite database")
	cmd.Flags().BoolVar(&local.renumber, "renumber", false, "renumber ids and dedupe categories when merging COCO files")

	return cmd
}

func runConvert(cmd *cobra.Command, source string, local convertFlags) error {
	v, err := loadConfig()
	if err != nil {
		return err
	}
	cfg, err := buildConfig(v)
	if err != nil {
		return err
	}

	// Command flags turn features on in addition to the config file.
	cfg.CSVSnapshot = cfg.CSVSnapshot || local.csvSnapshot
	cfg.SQLiteSnapshot = cfg.SQLiteSnapshot || local.sqliteSnapshot
	cfg.RenumberCOCO = cfg.RenumberCOCO || local.renumber

	conv, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	var report *types.Report
	if strings.EqualFold(filepath.Ext(source), ".zip") {
		report, err = conv.ConvertArchive(source)
	} else {
		report, err = conv.ConvertTree(source)
	}
	if err != nil {
		return err
	}

	return printReport(cmd, report)
}
