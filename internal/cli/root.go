// Package cli implements the labelpivot command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labelpivot/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	outputDir string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "labelpivot" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "labelpivot",
		Short: "Normalize object-detection annotations into COCO",
		Long: "Labelpivot ingests dataset archives in Pascal VOC, COCO, or YOLO layout,\n" +
			"normalizes them through a canonical record table, and re-serializes the\n" +
			"result as a COCO JSON document.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .labelpivot)")
	root.PersistentFlags().StringVar(&flags.outputDir, "output-dir", "", "directory receiving converted_<dataset> trees (default: cwd)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newSniffCmd())
	root.AddCommand(newOrganizeCmd())
	root.AddCommand(newConvertCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode maps a command error to a process exit status: filesystem
// failures report a system error, everything else bad input.
func exitCode(err error) int {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return exitSysError
	}
	return exitUserError
}

// printReport writes a run report in text or JSON mode.
func printReport(cmd *cobra.Command, report *types.Report) error {
	if flags.jsonMode {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "dataset:          %s\n", report.DatasetName)
	fmt.Fprintf(out, "format:           %s\n", report.AnnotationFormat)
	fmt.Fprintf(out, "images:           %d\n", report.NumImages)
	fmt.Fprintf(out, "annotation files: %d\n", report.NumAnnotationFiles)
	fmt.Fprintf(out, "skipped files:    %d\n", report.SkippedFiles)
	if report.OutputPath != "" {
		fmt.Fprintf(out, "output:           %s\n", report.OutputPath)
	}
	return nil
}
