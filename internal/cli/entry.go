package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/storykeeper/internal/wordbook"
	"github.com/petar-djukic/storykeeper/pkg/types"
)

func newEntryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Add, list and delete dictionary entries",
	}
	cmd.AddCommand(newEntryAddCmd(a))
	cmd.AddCommand(newEntryAddSensesCmd(a))
	cmd.AddCommand(newEntryListCmd(a))
	cmd.AddCommand(newEntryShowCmd(a))
	cmd.AddCommand(newEntryWordsCmd(a))
	cmd.AddCommand(newEntryDeleteCmd(a))
	return cmd
}

func newEntryAddCmd(a *app) *cobra.Command {
	var e types.Entry
	cmd := &cobra.Command{
		Use:   "add <word>",
		Short: "Add or replace one sense of a word",
		Long: `Add writes one entry. An entry with the same word, category, part of
speech and sense number is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Word = args[0]
			return a.withStore(func(dict types.Dictionary) error {
				if err := dict.Entries().Upsert(e); err != nil {
					return storeErr(err)
				}
				stored, err := e.Normalize()
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), types.NewEntryRecord(stored))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s (%d)\n", stored.Word, stored.SenseNumber)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&e.Category, "category", types.DefaultCategory, "category")
	cmd.Flags().StringVar(&e.PartOfSpeech, "pos", "Noun", "part of speech")
	cmd.Flags().StringVar(&e.Definition, "definition", "", "definition")
	cmd.Flags().StringVar(&e.ContextHint, "context", "", "context hint")
	cmd.Flags().IntVar(&e.SenseNumber, "sense", types.DefaultSenseNumber, "sense number")
	return cmd
}

func newEntryAddSensesCmd(a *app) *cobra.Command {
	var (
		category string
		specs    []string
	)
	cmd := &cobra.Command{
		Use:   "add-senses <word>",
		Short: "Add several senses of a word in one batch",
		Long: `Add-senses stores every --sense-spec of a word in one transaction.

A spec is "pos|definition|context|n"; the context and sense number may be
omitted. Senses with an empty definition are skipped. A blank category
becomes General. When auto-learn is on, each context is added to the
context list.

Example:
  storykeeper entry add-senses kaneran --category Species \
    --sense-spec "Noun|An alien species.|Sci-fi context|1" \
    --sense-spec "Adjective|Of the kaneran.||2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			senses := make([]types.Sense, 0, len(specs))
			for _, s := range specs {
				sense, err := wordbook.ParseSenseSpec(s)
				if err != nil {
					return err
				}
				senses = append(senses, sense)
			}

			return a.withStore(func(dict types.Dictionary) error {
				svc := wordbook.New(dict, wordbook.WithLogger(a.logger))
				res, err := svc.AddWord(args[0], category, senses)
				if err != nil {
					return storeErr(err)
				}
				if a.flags.jsonMode {
					records := make([]types.EntryRecord, 0, len(res.Senses))
					for _, s := range res.Senses {
						records = append(records, types.NewEntryRecord(s.Entry(res.Word, res.Category)))
					}
					return printJSON(cmd.OutOrStdout(), struct {
						Entries []types.EntryRecord `json:"entries"`
						Learned []string            `json:"learned"`
					}{records, res.Learned})
				}
				out := cmd.OutOrStdout()
				if len(res.Senses) == 0 {
					fmt.Fprintln(out, "nothing to add: every definition is empty")
					return nil
				}
				fmt.Fprintf(out, "added %d sense(s) of %s [%s]\n", len(res.Senses), res.Word, res.Category)
				for _, c := range res.Learned {
					fmt.Fprintf(out, "learned context %s\n", c)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category (default General)")
	cmd.Flags().StringArrayVar(&specs, "sense-spec", nil, `sense as "pos|definition|context|n" (repeatable)`)
	_ = cmd.MarkFlagRequired("sense-spec")
	return cmd
}

func newEntryListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every entry grouped by word and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(dict types.Dictionary) error {
				entries, err := dict.Entries().List()
				if err != nil {
					return storeErr(err)
				}
				return a.printEntries(cmd, entries)
			})
		},
	}
}

func newEntryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <word>",
		Short: "Show the senses of one word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(dict types.Dictionary) error {
				entries, err := dict.Entries().Lookup(args[0])
				if err != nil {
					return storeErr(err)
				}
				if len(entries) == 0 && !a.flags.jsonMode {
					return fmt.Errorf("word %q not found", args[0])
				}
				return a.printEntries(cmd, entries)
			})
		},
	}
}

func (a *app) printEntries(cmd *cobra.Command, entries []types.Entry) error {
	if a.flags.jsonMode {
		records := make([]types.EntryRecord, 0, len(entries))
		for _, e := range entries {
			records = append(records, types.NewEntryRecord(e))
		}
		return printJSON(cmd.OutOrStdout(), records)
	}
	for _, g := range wordbook.GroupEntries(entries) {
		fmt.Fprintln(cmd.OutOrStdout(), g.String())
	}
	return nil
}

func newEntryWordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "List the distinct words, sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(dict types.Dictionary) error {
				words, err := dict.Entries().Words()
				if err != nil {
					return storeErr(err)
				}
				sort.Strings(words)
				if a.flags.jsonMode {
					if words == nil {
						words = []string{}
					}
					return printJSON(cmd.OutOrStdout(), words)
				}
				for _, w := range words {
					fmt.Fprintln(cmd.OutOrStdout(), w)
				}
				return nil
			})
		},
	}
}

func newEntryDeleteCmd(a *app) *cobra.Command {
	var sense int
	cmd := &cobra.Command{
		Use:   "delete <word>",
		Short: "Delete a word, or one sense of it with --sense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]
			return a.withStore(func(dict types.Dictionary) error {
				if cmd.Flags().Changed("sense") {
					if err := dict.Entries().DeleteSense(word, sense); err != nil {
						return storeErr(err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "deleted sense %d of %s\n", sense, word)
					return nil
				}
				if err := dict.Entries().DeleteWord(word); err != nil {
					return storeErr(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", word)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&sense, "sense", 0, "delete only this sense number")
	return cmd
}
