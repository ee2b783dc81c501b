package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/storykeeper/pkg/types"
)

func newSettingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Read and write stored settings",
	}

	var def string
	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting, or the default when unset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(dict types.Dictionary) error {
				v, err := dict.Settings().Get(args[0], def)
				if err != nil {
					return storeErr(err)
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]string{args[0]: v})
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
	get.Flags().StringVar(&def, "default", "", "value printed when the key is unset")
	cmd.AddCommand(get)

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(dict types.Dictionary) error {
				if err := dict.Settings().Set(args[0], args[1]); err != nil {
					return storeErr(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
				return nil
			})
		},
	})

	return cmd
}
