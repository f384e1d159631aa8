package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/minpair/internal/tui"
	"github.com/f3rmion/minpair/internal/tui/bigword"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse found minimal pairs in the TUI",
	Long: `Find minimal pairs with the same flags as 'minpair find' and browse them in
an interactive terminal UI.

Controls:
  ↑/↓ or j/k    Navigate pairs
  /             Search (plain ASCII ignores diacritics: "duong" finds "đường")
  c             Clear search
  y             Copy the pair to the clipboard
  q/Esc         Quit

Example:
  minpair browse -d vnedict.txt -v a -m tone`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

var (
	browseQuery queryFlags
	browseNoBig bool
)

func init() {
	rootCmd.AddCommand(browseCmd)
	browseQuery.register(browseCmd)
	browseCmd.Flags().BoolVar(&browseNoBig, "no-big", false, "don't render the selected words as block art")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	found, err := search(cmd.Context(), &browseQuery)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(os.Stderr, "No minimal pairs found")
		return nil
	}

	opts := tui.Options{Title: filepath.Base(viper.GetString("dict"))}
	if !browseNoBig {
		r, err := bigword.NewRenderer(bigword.FontPaths...)
		if err != nil {
			slog.Warn("big-word rendering disabled", "error", err)
		} else {
			opts.Renderer = r
		}
	}

	p := tea.NewProgram(
		tui.NewBrowser(found, opts),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
