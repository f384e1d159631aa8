// Package cmd contains all CLI commands for the minpair tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/minpair/internal/config"
	"github.com/f3rmion/minpair/internal/corpus"
	"github.com/f3rmion/minpair/internal/logging"
	"github.com/f3rmion/minpair/internal/viet"
)

// ErrNoDictionary is returned by commands that need a dictionary when none
// was configured.
var ErrNoDictionary = errors.New("no dictionary file given; use --dict or set dict in config.yaml")

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minpair",
	Short: "Find Vietnamese minimal pairs in a dictionary",
	Long: `minpair reads a Vietnamese dictionary ("word : gloss" per line), splits
every syllable into initial consonant, vowel, tone and final consonant, and
finds pairs of words that differ in exactly one of those features.

Minimal pairs are the classic drill for hearing tone and vowel contrasts:
  ma / má      (tone)
  con mèo / con mẹo   (tone, second syllable)
  an / ban     (initial consonant)

Results can be written as CSV, TSV or JSON, or directly as an Anki deck.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.DefaultSettings()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/minpair)")
	flags.Bool("verbose", false, "verbose output (debug logging)")
	flags.StringP("dict", "d", "", "dictionary file with one \"word : gloss\" entry per line")
	flags.Int("skip-lines", defaults.SkipLines, "header lines to skip at the top of the dictionary")
	flags.Int("workers", 0, "parallel workers (0 = one per CPU)")
	flags.String("log-level", defaults.Log.Level, "log level: debug, info, warn, error")
	flags.String("log-format", defaults.Log.Format, "log format: text or json")

	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("dict", flags.Lookup("dict"))
	viper.BindPFlag("skip_lines", flags.Lookup("skip-lines"))
	viper.BindPFlag("workers", flags.Lookup("workers"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("MINPAIR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	settings, err := config.LoadSettings(filepath.Join(getConfigDir(), config.SettingsFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read config file: %v\n", err)
	}
	applySettings(settings)
}

// applySettings makes the settings file the fallback for every key. Flags
// and environment variables still take precedence.
func applySettings(s config.Settings) {
	viper.SetDefault("dict", s.Dict)
	viper.SetDefault("skip_lines", s.SkipLines)
	viper.SetDefault("workers", s.Workers)
	viper.SetDefault("output", s.Output)
	viper.SetDefault("format", s.Format)
	viper.SetDefault("audio_dir", s.AudioDir)
	viper.SetDefault("log.level", s.Log.Level)
	viper.SetDefault("log.format", s.Log.Format)
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// setupLogging installs the default logger from flags and config.
func setupLogging(cmd *cobra.Command, args []string) error {
	logging.New(os.Stderr, config.Log{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	}, viper.GetBool("verbose"))
	return nil
}

// loadDictionary loads the configured dictionary file.
func loadDictionary(table *viet.Table) (*corpus.Dictionary, error) {
	path := viper.GetString("dict")
	if path == "" {
		return nil, ErrNoDictionary
	}

	dict := corpus.NewDictionary(table)
	if err := dict.LoadFromFile(path, corpus.Options{SkipLines: viper.GetInt("skip_lines")}); err != nil {
		return nil, err
	}

	slog.Debug("loaded dictionary", "path", path, "entries", dict.Size())
	return dict, nil
}
