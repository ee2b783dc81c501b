package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize storykeeper configuration and dictionary",
		Long:  "Write a default config.yaml if none exists, then create the dictionary\ndatabase with its tables and default contexts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wrote, err := writeConfigIfMissing(a.configDir)
			if err != nil {
				return sysErr(err)
			}
			// Re-read so a freshly written file takes effect.
			if wrote {
				cfg, err := loadConfig(a.configDir)
				if err != nil {
					return sysErr(err)
				}
				a.cfg = cfg
			}

			location, err := a.databasePath()
			if err != nil {
				return err
			}
			err = a.withStore(func(dict types.Dictionary) error { return nil })
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "StoryKeeper initialized successfully")
			fmt.Fprintln(out, "  config:  ", filepath.Join(a.configDir, configFileExt))
			fmt.Fprintln(out, "  database:", location)
			return nil
		},
	}
}
