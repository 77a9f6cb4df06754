package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labelpivot/internal/sniff"
)

func newSniffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sniff <file>...",
		Short: "Classify annotation files by structural inspection",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSniff,
	}
}

func runSniff(cmd *cobra.Command, args []string) error {
	results := make([]struct {
		Path   string `json:"path"`
		Format string `json:"format"`
	}, 0, len(args))

	for _, path := range args {
		format, err := sniff.DetectFile(path)
		if err != nil {
			return err
		}
		results = append(results, struct {
			Path   string `json:"path"`
			Format string `json:"format"`
		}{Path: path, Format: format.String()})
	}

	if flags.jsonMode {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Path, r.Format)
	}
	return nil
}
