package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/docmineai/docmine/internal/llm/factory"
)

var checkModelsCmd = &cobra.Command{
	Use:   "check-models",
	Short: "Probe the configured model backends",
	RunE:  runCheckModels,
}

func init() {
	rootCmd.AddCommand(checkModelsCmd)
}

func runCheckModels(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	availability := factory.Availability(ctx, cfg, logger)
	if len(availability) == 0 {
		cmd.Println("No model backends configured.")
		return nil
	}

	for _, backend := range []string{"ollama", "openai"} {
		available, configured := availability[backend]
		if !configured {
			continue
		}
		state := "unavailable"
		if available {
			state = "available"
		}
		marker := " "
		if backend == cfg.Models.Default {
			marker = "*"
		}
		cmd.Printf("%s %-8s %s\n", marker, backend, state)
	}
	cmd.Println("(* = configured default)")
	return nil
}
