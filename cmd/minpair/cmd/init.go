package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/minpair/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize minpair configuration",
	Long: `Initialize minpair configuration files in your config directory.

This creates template YAML files for:
  - config.yaml   (default dictionary, output, workers, logging)
  - presets.yaml  (named filter presets for 'find --preset')

Existing files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Initializing minpair configuration in %s\n\n", configDir)

	written, err := config.WriteTemplates(configDir, force)
	if err != nil {
		return err
	}
	if len(written) == 0 {
		fmt.Fprintln(out, "  Nothing to do; configuration already exists (use --force to overwrite)")
		return nil
	}
	for _, file := range written {
		fmt.Fprintf(out, "  Created %s\n", file)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Set dict in config.yaml to your dictionary file")
	fmt.Fprintln(out, "  2. Run 'minpair lookup <word>' to check how a word is split")
	fmt.Fprintln(out, "  3. Run 'minpair find --preset tones-a' to find your first pairs")

	return nil
}
