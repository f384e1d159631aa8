package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/minpair/internal/anki"
	"github.com/f3rmion/minpair/internal/export"
)

var ankiCmd = &cobra.Command{
	Use:   "anki",
	Short: "Work with Anki decks",
	Long:  `Commands for building minimal-pair Anki decks and reading .apkg files.`,
}

var ankiInspectCmd = &cobra.Command{
	Use:   "inspect <file.apkg>",
	Short: "Inspect an Anki deck",
	Long: `Inspect an Anki .apkg file to see its structure:
  - Decks
  - Note types (models) and their fields
  - Sample notes

Example:
  minpair anki inspect minimal_pairs.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiInspect,
}

var ankiBuildCmd = &cobra.Command{
	Use:   "build <pairs.csv>",
	Short: "Build a listening deck from a pair list",
	Long: `Build an Anki deck from a two-column CSV of minimal pairs, as written by
'minpair find'. Rows that do not have exactly two columns are skipped.

Every pair becomes two notes, one for each word as the correct answer. The
card plays the word's audio and asks which of the two words was heard. Audio
is attached when --audio-dir holds a file named audio_<sha256 of word>.mp3.

Example:
  minpair anki build minimal_pairs.csv
  minpair anki build minimal_pairs.csv -o tones.apkg --audio-dir audio`,
	Args:   cobra.ExactArgs(1),
	PreRun: bindAnkiBuildFlags,
	RunE:   runAnkiBuild,
}

var (
	ankiInspectLimit int
	ankiBuildOutput  string
)

func init() {
	rootCmd.AddCommand(ankiCmd)
	ankiCmd.AddCommand(ankiInspectCmd)
	ankiCmd.AddCommand(ankiBuildCmd)

	ankiInspectCmd.Flags().IntVarP(&ankiInspectLimit, "limit", "n", 5, "Number of sample notes to show")

	ankiBuildCmd.Flags().StringVarP(&ankiBuildOutput, "output", "o", "", "output .apkg file (default <pairs>.apkg)")
	ankiBuildCmd.Flags().String("audio-dir", "", "directory with pre-rendered word audio")
}

func bindAnkiBuildFlags(cmd *cobra.Command, args []string) {
	viper.BindPFlag("audio_dir", cmd.Flags().Lookup("audio-dir"))
}

func runAnkiInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Opening: %s\n\n", path)

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	fmt.Fprint(out, pkg.Summary())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Field Details:")
	for _, model := range pkg.Models {
		fmt.Fprintf(out, "  %s:\n", model.Name)
		for _, field := range model.Fields {
			fmt.Fprintf(out, "    [%d] %s\n", field.Ord, field.Name)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Sample Notes (first %d):\n", ankiInspectLimit)
	for i, note := range pkg.Notes {
		if i >= ankiInspectLimit {
			break
		}

		modelName := "unknown"
		if model := pkg.GetModel(note); model != nil {
			modelName = model.Name
		}

		fmt.Fprintf(out, "\n  Note %d (Model: %s):\n", note.ID, modelName)
		fieldNames := pkg.GetFieldNames(note)
		for j, value := range note.Fields {
			fieldName := fmt.Sprintf("Field %d", j)
			if j < len(fieldNames) {
				fieldName = fieldNames[j]
			}
			display := stripHTML(value)
			if r := []rune(display); len(r) > 100 {
				display = string(r[:100]) + "..."
			}
			fmt.Fprintf(out, "    %s: %s\n", fieldName, display)
		}
	}

	return nil
}

func runAnkiBuild(cmd *cobra.Command, args []string) error {
	source := args[0]

	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening pair list: %w", err)
	}
	defer f.Close()

	rows, err := export.ReadRows(f)
	if err != nil {
		return err
	}

	output := ankiBuildOutput
	if output == "" {
		output = apkgPath(source)
	}

	return buildDeck(output, filepath.Base(source), rows)
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// stripHTML removes HTML tags from a string.
func stripHTML(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, ""))
}
