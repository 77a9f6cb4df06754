package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labelpivot/pkg/labelpivot"
)

const modulePath = "github.com/mesh-intelligence/labelpivot"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the labelpivot version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "labelpivot v%s\nmodule: %s\n", labelpivot.Version, modulePath)
			return nil
		},
	}
}
