package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/storykeeper/pkg/storykeeper"
)

const modulePath = "github.com/petar-djukic/storykeeper"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the storykeeper version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "storykeeper v%s\nmodule: %s\n", storykeeper.Version, modulePath)
			return nil
		},
	}
}
