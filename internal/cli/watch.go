package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docmineai/docmine/internal/ingest"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run extraction whenever the documents directory changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&docsDir, "docs-dir", "docs", "directory holding the input documents")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "settle time after a change before re-running")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, prompts, err := loadConfig()
	if err != nil {
		return err
	}

	events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Root:     docsDir,
		Debounce: watchDebounce,
	}, logger)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s, press Ctrl-C to stop.\n", docsDir)

	// One run up front so the output reflects the current directory.
	if err := runPipeline(ctx, cmd, cfg, prompts); err != nil {
		logger.Error("initial run failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil
		case path, ok := <-events:
			if !ok {
				return nil
			}
			cmd.Printf("Change detected (%s), re-running...\n", path)
			if err := runPipeline(ctx, cmd, cfg, prompts); err != nil {
				logger.Error("run failed", "error", err)
			}
		case err, ok := <-watchErrs:
			if ok && err != nil {
				logger.Warn("watcher error", "error", err)
			}
		}
	}
}
