package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labelpivot/internal/organize"
)

func newOrganizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "organize <directory>",
		Short: "Route an extracted archive tree into image and annotation buckets",
		Long: "Walk an extracted dataset tree, classify every file by structural sniffing,\n" +
			"and move images and recognized annotation files into the converted_<dataset>\n" +
			"bucket layout. Unrecognized files are left in place and counted.",
		Args: cobra.ExactArgs(1),
		RunE: runOrganize,
	}
}

func runOrganize(cmd *cobra.Command, args []string) error {
	v, err := loadConfig()
	if err != nil {
		return err
	}
	cfg, err := buildConfig(v)
	if err != nil {
		return err
	}

	root := args[0]
	datasetName := filepath.Base(root)

	layout, err := organize.Scaffold(cfg.OutputDir, datasetName)
	if err != nil {
		return err
	}

	report, err := organize.New(layout).Organize(root)
	if err != nil {
		return err
	}
	report.DatasetName = datasetName

	if err := printReport(cmd, report); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "organized into %s\n", layout.BaseDir)
	return nil
}
