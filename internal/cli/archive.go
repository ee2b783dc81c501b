package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/storykeeper/internal/archive"
	"github.com/petar-djukic/storykeeper/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		contentFile  string
		noDictionary bool
		noContexts   bool
	)
	cmd := &cobra.Command{
		Use:   "export <archive.zip>",
		Short: "Export a project archive",
		Long: `Export writes a zip holding content.txt and, unless excluded, the
dictionary and contexts as dictionary.json and contexts.json. Empty
collections are left out. The document body comes from --content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content string
			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("read content: %w", err)
				}
				content = string(data)
			}

			return a.withStore(func(dict types.Dictionary) error {
				res, err := archive.Export(args[0], dict.Exchange(), archive.ExportOptions{
					IncludeDictionary: !noDictionary,
					IncludeContexts:   !noContexts,
					Content:           content,
					Logger:            a.logger,
				})
				if err != nil {
					return storeErr(err)
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]any{
						"run_id":   res.RunID,
						"members":  res.Members,
						"entries":  res.Entries,
						"contexts": res.Contexts,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %s: %d entries, %d contexts (%s)\n",
					args[0], res.Entries, res.Contexts, strings.Join(res.Members, ", "))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&contentFile, "content", "", "file holding the document body")
	cmd.Flags().BoolVar(&noDictionary, "no-dictionary", false, "leave the dictionary out")
	cmd.Flags().BoolVar(&noContexts, "no-contexts", false, "leave the contexts out")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var (
		dictMode   string
		ctxMode    string
		contentOut string
	)
	cmd := &cobra.Command{
		Use:   "import <archive.zip>",
		Short: "Import a project archive",
		Long: `Import applies dictionary.json and contexts.json from a project archive.
Each mode is merge (keep existing rows), replace (drop existing rows first)
or skip (leave that kind alone). A malformed archive changes nothing.
The document body is written to --content-out when given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dictionary-mode") {
				dictMode = a.cfg.GetString(cfgKeyDictionaryMode)
			}
			if !cmd.Flags().Changed("contexts-mode") {
				ctxMode = a.cfg.GetString(cfgKeyContextsMode)
			}
			dm, err := types.ParseImportMode(dictMode)
			if err != nil {
				return err
			}
			cm, err := types.ParseImportMode(ctxMode)
			if err != nil {
				return err
			}

			return a.withStore(func(dict types.Dictionary) error {
				res, err := archive.Import(args[0], dict.Exchange(), archive.ImportOptions{
					DictionaryMode: dm,
					ContextMode:    cm,
					Logger:         a.logger,
				})
				if err != nil {
					return storeErr(err)
				}
				if contentOut != "" && res.HasContent {
					if err := os.WriteFile(contentOut, []byte(res.Content), 0o644); err != nil {
						return sysErr(fmt.Errorf("write content: %w", err))
					}
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]any{
						"run_id":      res.RunID,
						"entries":     res.Entries,
						"contexts":    res.Contexts,
						"has_content": res.HasContent,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d entries (%s), %d contexts (%s)\n",
					args[0], res.Entries, dm, res.Contexts, cm)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dictMode, "dictionary-mode", string(types.ImportMerge), "merge, replace or skip")
	cmd.Flags().StringVar(&ctxMode, "contexts-mode", string(types.ImportMerge), "merge, replace or skip")
	cmd.Flags().StringVar(&contentOut, "content-out", "", "write the document body to this file")
	return cmd
}
