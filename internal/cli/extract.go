package cli

import (
	"context"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docmineai/docmine/internal/config"
	"github.com/docmineai/docmine/internal/extract"
	"github.com/docmineai/docmine/internal/ingest"
	"github.com/docmineai/docmine/internal/llm/factory"
	"github.com/docmineai/docmine/internal/ocr"
	"github.com/docmineai/docmine/internal/store"
)

var (
	docsDir    string
	modelType  string
	outputPath string
	xlsxPath   string
	journalOff bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run the extraction pipeline over a documents directory",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&docsDir, "docs-dir", "docs", "directory holding the input documents")
	extractCmd.Flags().StringVar(&modelType, "model", "", "model backend to use (default: configured default)")
	extractCmd.Flags().StringVar(&outputPath, "output", "", "output YAML path (default: configured output_file)")
	extractCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write an XLSX workbook to this path")
	extractCmd.Flags().BoolVar(&journalOff, "no-journal", false, "skip recording this run in the local journal")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, prompts, err := loadConfig()
	if err != nil {
		return err
	}
	return runPipeline(ctx, cmd, cfg, prompts)
}

// runPipeline performs one full run with already-loaded configuration.
// It is shared with watch mode.
func runPipeline(ctx context.Context, cmd *cobra.Command, cfg *config.Config, prompts *config.Prompts) error {
	generator, err := factory.New(cfg, modelType, logger)
	if err != nil {
		return err
	}
	if !generator.IsAvailable(ctx) {
		logger.Warn("model backend did not answer the availability probe", "model", generator.Name())
	}

	registry := ingest.NewRegistry(ocr.NewExtractor(ocr.Config{}, logger), logger)
	orchestrator := extract.NewOrchestrator(cfg, prompts, generator, registry, logger)

	results, report, err := orchestrator.Run(ctx, docsDir)
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = cfg.General.OutputFile
	}
	if err := results.WriteFile(out, logger); err != nil {
		return err
	}
	if xlsxPath != "" {
		if err := extract.WriteXLSX(results, xlsxPath, logger); err != nil {
			return err
		}
	}

	if !journalOff {
		journalRun(ctx, cfg, out, generator.Name(), report, results)
	}

	cmd.Printf("Processed %d/%d documents, %d chunks (%d skipped, %d failed) in %s\n",
		report.DocumentsProcessed, report.DocumentsFound,
		report.ChunksTotal, report.ChunksSkipped, report.ChunksFailed,
		report.Duration.Round(time.Millisecond),
	)
	for _, category := range results.Categories {
		cmd.Printf("  %-24s %d items\n", category, len(results.Items[category]))
	}
	cmd.Printf("Results written to %s\n", out)
	return nil
}

// journalRun records the run locally. Journal trouble never fails the
// run itself.
func journalRun(ctx context.Context, cfg *config.Config, out, model string, report *extract.RunReport, results *extract.Results) {
	db, err := store.Open(journalPath(cfg))
	if err != nil {
		logger.Warn("run journal unavailable", "error", err)
		return
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Insert(ctx, store.RunRecord{
		StartedAt:  time.Now().Add(-report.Duration),
		Duration:   report.Duration,
		Model:      model,
		DocsDir:    docsDir,
		Documents:  report.DocumentsProcessed,
		Chunks:     report.ChunksTotal,
		ItemCounts: results.ItemCounts(),
		OutputPath: out,
	}); err != nil {
		logger.Warn("run journal write failed", "error", err)
	}
}

// journalPath puts the journal next to the configured output file.
func journalPath(cfg *config.Config) string {
	dir := filepath.Dir(cfg.General.OutputFile)
	if dir == "." || strings.TrimSpace(dir) == "" {
		dir = "output"
	}
	return filepath.Join(dir, "runs.db")
}
