package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/storykeeper/internal/wordbook"
	"github.com/petar-djukic/storykeeper/pkg/types"
)

func newContextCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage the context vocabulary",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List contexts alphabetically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(dict types.Dictionary) error {
				names, err := dict.Contexts().List()
				if err != nil {
					return storeErr(err)
				}
				if a.flags.jsonMode {
					if names == nil {
						names = []string{}
					}
					return printJSON(cmd.OutOrStdout(), names)
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a context; adding an existing name does nothing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := contextName(args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(dict types.Dictionary) error {
				if err := dict.Contexts().Add(name); err != nil {
					return storeErr(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added context %s\n", name)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a context",
		Long: `Rename changes the name in the context list. Entries whose context hint
holds the old name keep it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newName, err := contextName(args[1])
			if err != nil {
				return err
			}
			return a.withStore(func(dict types.Dictionary) error {
				if err := dict.Contexts().Rename(args[0], newName); err != nil {
					return storeErr(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed context %s to %s\n", args[0], newName)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(dict types.Dictionary) error {
				if err := dict.Contexts().Delete(args[0]); err != nil {
					return storeErr(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted context %s\n", args[0])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "auto-learn [on|off]",
		Short: "Show or set whether entry contexts are learned automatically",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(dict types.Dictionary) error {
				svc := wordbook.New(dict, wordbook.WithLogger(a.logger))
				if len(args) == 1 {
					on, err := parseSwitch(args[0])
					if err != nil {
						return err
					}
					if err := svc.SetAutoLearn(on); err != nil {
						return storeErr(err)
					}
				}
				on, err := svc.AutoLearn()
				if err != nil {
					return storeErr(err)
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]bool{types.SettingAutoLearnContexts: on})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "auto-learn contexts: %s\n", onOff(on))
				return nil
			})
		},
	})

	return cmd
}

func contextName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("context name must not be empty")
	}
	return s, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("want on or off, got %q", s)
	}
	return v, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
