package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/helios/pkg/token"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the Helios version and the keyword table version it parses.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Helios v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Keyword table v%d\n", token.KeywordTableVersion)
		},
	}
}
