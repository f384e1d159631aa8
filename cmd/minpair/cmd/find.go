package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/minpair/internal/anki"
	"github.com/f3rmion/minpair/internal/config"
	"github.com/f3rmion/minpair/internal/delta"
	"github.com/f3rmion/minpair/internal/export"
	"github.com/f3rmion/minpair/internal/pairs"
	"github.com/f3rmion/minpair/internal/viet"
)

// formatAPKG writes an Anki deck instead of a pair list.
const formatAPKG = "apkg"

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find minimal pairs in the dictionary",
	Long: `Find pairs of dictionary words that differ in exactly one feature.

Constraints select which words take part. Each may be repeated or given as a
comma-separated list; a word passes when the first syllable matching each
constraint is the same syllable for all constraints. The --mode flag names the
feature the two words must differ on, at that syllable.

Tones: ` + viet.ToneUsage() + `
Modes: ` + delta.KindUsage() + `

Examples:
  minpair find -d vnedict.txt -v a -m tone
  minpair find -d vnedict.txt -f n,ng -m final_consonant -o finals.tsv --format tsv
  minpair find -d vnedict.txt --preset tones-a --format apkg
  minpair find -d vnedict.txt -v a,ă -m vowel --save-preset short-a`,
	Args:   cobra.NoArgs,
	PreRun: bindFindFlags,
	RunE:   runFind,
}

var (
	findQuery      queryFlags
	findSavePreset string
)

func init() {
	rootCmd.AddCommand(findCmd)
	findQuery.register(findCmd)

	findCmd.Flags().StringP("output", "o", "", "output file, or - for stdout (default minimal_pairs.csv)")
	findCmd.Flags().String("format", "", "output format: csv, tsv, json, apkg (default csv)")
	findCmd.Flags().String("audio-dir", "", "directory with pre-rendered word audio for apkg output")
	findCmd.Flags().StringVar(&findSavePreset, "save-preset", "", "save this query to presets.yaml under the given name")
}

// bindFindFlags binds find's output flags. Keys shared with other commands
// are bound only for the command that runs.
func bindFindFlags(cmd *cobra.Command, args []string) {
	viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("audio_dir", cmd.Flags().Lookup("audio-dir"))
}

// queryFlags are the pair query flags shared by find and browse.
type queryFlags struct {
	vowels   []string
	initials []string
	finals   []string
	tones    []string
	mode     string
	preset   string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&q.vowels, "vowel", "v", nil, "vowel cluster(s), tone marks optional")
	cmd.Flags().StringSliceVarP(&q.initials, "initial", "i", nil, "initial consonant(s)")
	cmd.Flags().StringSliceVarP(&q.finals, "final", "f", nil, "final consonant(s)")
	cmd.Flags().StringSliceVarP(&q.tones, "tone", "t", nil, "tone name(s)")
	cmd.Flags().StringVarP(&q.mode, "mode", "m", "", "feature the pair must differ on")
	cmd.Flags().StringVar(&q.preset, "preset", "", "named preset from presets.yaml")
}

// query merges the flags with the chosen preset.
func (q *queryFlags) query() (pairs.Query, error) {
	query := pairs.Query{
		Vowels:   q.vowels,
		Initials: q.initials,
		Finals:   q.finals,
		Tones:    q.tones,
		Mode:     q.mode,
	}

	if q.preset != "" {
		presets, err := config.LoadPresets(filepath.Join(getConfigDir(), config.PresetsFile))
		if err != nil {
			return pairs.Query{}, err
		}
		preset, err := config.FindPreset(presets, q.preset)
		if err != nil {
			return pairs.Query{}, err
		}
		query = preset.Merge(query)
		slog.Debug("using preset", "name", preset.Name)
	}

	return query, nil
}

// criteria validates the merged query.
func (q *queryFlags) criteria(table *viet.Table) (pairs.Criteria, error) {
	query, err := q.query()
	if err != nil {
		return pairs.Criteria{}, err
	}
	return query.Compile(table)
}

// savePreset validates the query and stores it under name.
func savePreset(q *queryFlags, name string) error {
	query, err := q.query()
	if err != nil {
		return err
	}
	if _, err := query.Compile(viet.NewTable()); err != nil {
		return err
	}

	path := filepath.Join(getConfigDir(), config.PresetsFile)
	if err := config.SavePreset(path, config.Preset{Name: name, Query: query}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved preset %q to %s\n", name, path)
	return nil
}

// search validates the query, loads the dictionary and finds pairs.
func search(ctx context.Context, q *queryFlags) ([]pairs.Pair, error) {
	table := viet.NewTable()

	// Reject bad input before reading the corpus
	criteria, err := q.criteria(table)
	if err != nil {
		return nil, err
	}

	dict, err := loadDictionary(table)
	if err != nil {
		return nil, err
	}

	return pairs.Find(ctx, dict.Entries(), criteria, pairs.Options{
		Workers: viper.GetInt("workers"),
		Logger:  slog.Default(),
	})
}

func runFind(cmd *cobra.Command, args []string) error {
	format := viper.GetString("format")
	output := viper.GetString("output")

	if format != formatAPKG {
		if _, err := export.ParseFormat(format); err != nil {
			return fmt.Errorf("%w (or %s)", err, formatAPKG)
		}
	}

	if findSavePreset != "" {
		if err := savePreset(&findQuery, findSavePreset); err != nil {
			return err
		}
	}

	found, err := search(cmd.Context(), &findQuery)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		fmt.Fprintln(os.Stderr, "No minimal pairs found")
	}

	if format == formatAPKG {
		return writeDeck(apkgPath(output), found)
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, export.Format(format), found); err != nil {
		return err
	}

	if output != "-" {
		fmt.Fprintf(os.Stderr, "Wrote %d minimal pairs to %s\n", len(found), output)
	}
	return nil
}

// apkgPath swaps a pair-list extension for .apkg.
func apkgPath(output string) string {
	if output == "" || output == "-" {
		output = config.DefaultSettings().Output
	}
	ext := filepath.Ext(output)
	if strings.EqualFold(ext, ".apkg") {
		return output
	}
	return strings.TrimSuffix(output, ext) + ".apkg"
}

// writeDeck writes found pairs as an Anki deck named after its file.
func writeDeck(path string, found []pairs.Pair) error {
	rows := make([][2]string, len(found))
	for i, p := range found {
		rows[i] = [2]string{p.LeftWord, p.RightWord}
	}
	return buildDeck(path, path, rows)
}

// buildDeck writes rows as an Anki deck and reports the result.
func buildDeck(path, source string, rows [][2]string) error {
	opts := anki.DeckOptions{
		Name:     anki.DeckName(source),
		AudioDir: viper.GetString("audio_dir"),
	}
	if err := anki.WriteDeck(path, opts, rows); err != nil {
		return fmt.Errorf("writing deck: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d notes (%d pairs) to %s\n", len(rows)*2, len(rows), path)
	return nil
}
