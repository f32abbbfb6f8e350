// Package cli wires the extraction pipeline behind a cobra command
// tree. Commands stay thin: load configuration, build the pipeline,
// print what happened.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/docmineai/docmine/internal/config"
)

var (
	configPath  string
	promptsPath string
	verbose     bool

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docmine",
	Short: "Extract structured data from document collections with an LLM",
	Long: `docmine converts PDF, DOCX, image and text documents to plain text,
splits them into overlapping chunks, prompts a configured model once per
chunk and category, and merges the replies into an ordered YAML report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional, a missing file is not an error
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the extraction configuration")
	rootCmd.PersistentFlags().StringVar(&promptsPath, "prompts", "prompts.yaml", "path to the prompt templates")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the command tree and reports failure via exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("docmine failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *config.Prompts, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	prompts, err := config.LoadPrompts(promptsPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, prompts, nil
}
