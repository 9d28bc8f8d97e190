package cli

import (
	"github.com/spf13/cobra"

	"github.com/ericogr/squadxp/internal/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), version.Info())
		},
	}
}
