package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/storykeeper/internal/spellcheck"
	"github.com/petar-djukic/storykeeper/pkg/types"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		wordList string
		watch    bool
	)
	cmd := &cobra.Command{
		Use:   "check <pattern>...",
		Short: "Spell-check documents against a word list and the dictionary",
		Long: `Check prints every word that is in neither the word list nor the
dictionary, one "file:line: word" per line. Patterns may use ** to match
files at any depth. With --watch, files are re-checked whenever they change
until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := spellcheck.Expand(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files match %v", args)
			}
			if !cmd.Flags().Changed("wordlist") {
				wordList = a.cfg.GetString(cfgKeyWordList)
			}

			var speller spellcheck.Speller
			if wl, err := spellcheck.LoadWordList(wordList); err != nil {
				a.logger.Warn("spellcheck disabled: word list unavailable", "path", wordList, "error", err)
			} else {
				speller = wl
			}

			return a.withStore(func(dict types.Dictionary) error {
				checker := spellcheck.NewChecker(speller, dict.Entries(), a.logger)
				out := cmd.OutOrStdout()
				for _, f := range files {
					a.checkFile(out, checker, f)
				}
				if !watch {
					return nil
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				w := &spellcheck.Watcher{
					Logger: a.logger,
					OnChange: func(path string) {
						a.checkFile(out, checker, path)
					},
				}
				return w.Run(ctx, files)
			})
		},
	}
	cmd.Flags().StringVar(&wordList, "wordlist", spellcheck.DefaultWordList, "newline-separated word list")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-check files when they change")
	return cmd
}

// checkFile prints the misspellings of one file. An unreadable file is
// logged and skipped.
func (a *app) checkFile(out io.Writer, checker *spellcheck.Checker, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		a.logger.Warn("skipping unreadable file", "path", path, "error", err)
		return
	}
	for _, m := range checker.Check(string(data)) {
		fmt.Fprintf(out, "%s:%d: %s\n", path, m.Line, m.Word)
	}
}
