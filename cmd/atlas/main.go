// Command atlas serves and inspects the Atlas mythology guide.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"atlas/internal/config"
	"atlas/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	// Loaded in PersistentPreRunE
	cfg *config.Config
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "atlas",
		Short: "Atlas - mythology guide and context-assembly engine",
		Long: `Atlas assembles system prompts from an embedded mythological corpus
(planets and metals, the monomyth, Fallen Starlight, the Story Forge, episodes,
games, sacred sites, the library and the store) and answers chat turns
through an LLM.

Run "atlas serve" to start the HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			cfg = loaded

			if err := logging.Initialize(cfg.Logging.LoggingOptions(verbose)); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logging.Get(logging.CategoryBoot).Debug("config loaded from %s: provider=%s model=%s", configPath, cfg.LLM.Provider, cfg.LLM.Model)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "atlas.yaml", "Config file (defaults apply when missing)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout for one-shot commands")

	rootCmd.AddCommand(
		newServeCmd(),
		newAskCmd(),
		newPromptCmd(),
		newPersonaCmd(),
		newClassifyCmd(),
		newStatsCmd(),
		newUsageCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
