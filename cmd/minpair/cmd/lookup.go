package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/minpair/internal/corpus"
	"github.com/f3rmion/minpair/internal/report"
	"github.com/f3rmion/minpair/internal/viet"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>...",
	Short: "Show the syllable breakdown of words",
	Long: `Split each word into syllables and show, per syllable:
  - Initial consonant (Ø when absent)
  - Vowel as written and its tone-free identity
  - Tone
  - Final consonant

When a dictionary is configured, its glosses for the word are shown too.

Example:
  minpair lookup "phức tạp"
  minpair lookup người --format markdown`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

var lookupFormat string

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVar(&lookupFormat, "format", string(report.Text), "output format: text or markdown")
}

func runLookup(cmd *cobra.Command, args []string) error {
	gen, err := report.NewGenerator(report.Format(lookupFormat))
	if err != nil {
		return err
	}

	table := viet.NewTable()

	var dict *corpus.Dictionary
	if viper.GetString("dict") != "" {
		dict, err = loadDictionary(table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not load dictionary: %v\n", err)
		}
	}

	for _, arg := range args {
		word := corpus.Normalize(arg)
		entry, err := table.NewEntry(word)
		if errors.Is(err, viet.ErrNoSyllables) {
			fmt.Fprintf(os.Stderr, "Skipping %q: no Vietnamese syllables\n", arg)
			continue
		}
		if err != nil {
			return err
		}

		var glosses []string
		if dict != nil {
			for _, rec := range dict.Lookup(word) {
				glosses = append(glosses, rec.Gloss)
			}
		}

		if err := gen.Lookup(cmd.OutOrStdout(), report.NewLookup(entry, glosses)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}
