package cmd

import (
	"github.com/spf13/cobra"

	"github.com/f3rmion/minpair/internal/corpus"
	"github.com/f3rmion/minpair/internal/report"
	"github.com/f3rmion/minpair/internal/viet"
)

var compareCmd = &cobra.Command{
	Use:   "compare <left> <right>",
	Short: "List every feature difference between two words",
	Long: `Compare two words syllable by syllable and list each difference in
initial consonant, tone, vowel and final consonant. Words with different
syllable counts cannot be aligned.

Example:
  minpair compare "con mèo" "con mẹo"
  minpair compare an bán --format markdown`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

var compareFormat string

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareFormat, "format", string(report.Text), "output format: text or markdown")
}

func runCompare(cmd *cobra.Command, args []string) error {
	gen, err := report.NewGenerator(report.Format(compareFormat))
	if err != nil {
		return err
	}

	table := viet.NewTable()
	left, err := table.NewEntry(corpus.Normalize(args[0]))
	if err != nil {
		return err
	}
	right, err := table.NewEntry(corpus.Normalize(args[1]))
	if err != nil {
		return err
	}

	return gen.Compare(cmd.OutOrStdout(), report.NewCompare(left, right))
}
