package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/docmineai/docmine/constants"
	"github.com/docmineai/docmine/internal/chunk"
	"github.com/docmineai/docmine/internal/config"
	"github.com/docmineai/docmine/internal/ingest"
	"github.com/docmineai/docmine/internal/llm"
)

// FormatStats counts ingest outcomes for one document format.
type FormatStats struct {
	Found     int
	Processed int
	Failed    int
}

// RunReport summarizes what happened during a run, independent of the
// extracted data itself.
type RunReport struct {
	Status             constants.RunStatus
	DocumentsFound     int
	DocumentsProcessed int
	PerFormat          map[constants.Format]*FormatStats
	FailedFiles        []string
	TotalChars         int
	ChunksTotal        int
	ChunksSkipped      int
	ChunksFailed       int
	Duration           time.Duration
}

func (r *RunReport) formatStats(f constants.Format) *FormatStats {
	if r.PerFormat == nil {
		r.PerFormat = map[constants.Format]*FormatStats{}
	}
	if r.PerFormat[f] == nil {
		r.PerFormat[f] = &FormatStats{}
	}
	return r.PerFormat[f]
}

// Orchestrator drives one extraction run: ingest the documents, prompt
// the model once per chunk and category, merge per-chunk replies into
// ordered aggregates. Document failures and chunk failures are
// contained; only configuration-level errors abort the run.
type Orchestrator struct {
	cfg       *config.Config
	prompts   *config.Prompts
	generator llm.Generator
	registry  *ingest.Registry
	chunker   *chunk.Chunker
	logger    *slog.Logger
}

func NewOrchestrator(
	cfg *config.Config,
	prompts *config.Prompts,
	generator llm.Generator,
	registry *ingest.Registry,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cfg:       cfg,
		prompts:   prompts,
		generator: generator,
		registry:  registry,
		chunker:   chunk.New(cfg.General.ChunkSize, cfg.General.Overlap, logger),
		logger:    logger,
	}
}

// Run executes the full pipeline over docsDir. The returned Results
// are valid whenever err is nil, even if individual documents or
// chunks failed along the way.
func (o *Orchestrator) Run(ctx context.Context, docsDir string) (*Results, *RunReport, error) {
	started := time.Now()
	report := &RunReport{Status: constants.RunStatusInit}
	categories := o.cfg.Categories()

	o.logger.Info("orchestrator.run.start",
		"docs_dir", docsDir,
		"model", o.generator.Name(),
		"categories", len(categories),
	)

	report.Status = constants.RunStatusIngesting
	docs, err := o.ingest(ctx, docsDir, report)
	if err != nil {
		report.Status = constants.RunStatusFailed
		report.Duration = time.Since(started)
		return nil, report, err
	}

	results := NewResults(o.generator.Name(), categories, len(docs))

	report.Status = constants.RunStatusExtracting
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			report.Status = constants.RunStatusFailed
			report.Duration = time.Since(started)
			return nil, report, err
		}
		o.extractDocument(ctx, doc, categories, results, report)
	}

	report.Status = constants.RunStatusMerging
	for _, format := range constants.Formats {
		if stats, ok := report.PerFormat[format]; ok {
			o.logger.Info("orchestrator.ingest.summary",
				"format", format,
				"found", stats.Found,
				"processed", stats.Processed,
				"failed", stats.Failed,
			)
		}
	}
	o.logger.Info("orchestrator.merge.done",
		"categories", len(categories),
		"total_chars", report.TotalChars,
		"failed_files", len(report.FailedFiles),
	)

	report.Status = constants.RunStatusDone
	report.Duration = time.Since(started)
	o.logger.Info("orchestrator.run.done",
		"documents", report.DocumentsProcessed,
		"chunks", report.ChunksTotal,
		"chunks_skipped", report.ChunksSkipped,
		"chunks_failed", report.ChunksFailed,
		"duration", report.Duration,
	)
	return results, report, nil
}

// ingest scans docsDir and converts every readable document to text.
// A document that cannot be converted is logged and dropped.
func (o *Orchestrator) ingest(ctx context.Context, docsDir string, report *RunReport) ([]ingest.Document, error) {
	byFormat, _, err := ingest.Scan(docsDir, o.cfg.Processing.MaxFileSizeMB, o.logger)
	if err != nil {
		return nil, err
	}

	var docs []ingest.Document
	for _, format := range constants.Formats {
		paths := byFormat[format]
		if len(paths) == 0 {
			continue
		}
		processor, ok := o.registry.For(format)
		if !ok {
			o.logger.Warn("orchestrator.format_skipped", "format", format, "files", len(paths))
			continue
		}
		stats := report.formatStats(format)
		for _, path := range paths {
			report.DocumentsFound++
			stats.Found++
			res := processor.Process(ctx, path)
			if !res.Success {
				stats.Failed++
				report.FailedFiles = append(report.FailedFiles, path)
				o.logger.Warn("orchestrator.document_failed", "path", path, "error", res.Err)
				continue
			}
			if strings.TrimSpace(res.TextContent) == "" {
				stats.Failed++
				report.FailedFiles = append(report.FailedFiles, path)
				o.logger.Warn("orchestrator.document_empty", "path", path)
				continue
			}
			docs = append(docs, ingest.Document{
				FileName: path,
				FileType: format,
				Text:     res.TextContent,
			})
			report.DocumentsProcessed++
			stats.Processed++
			report.TotalChars += len(res.TextContent)
		}
	}
	return docs, nil
}

// extractDocument runs every category over one document's chunks and
// appends the merged values to the aggregates in chunk order.
func (o *Orchestrator) extractDocument(
	ctx context.Context,
	doc ingest.Document,
	categories []string,
	results *Results,
	report *RunReport,
) {
	chunks := o.chunker.Split(doc.Text)
	o.logger.Info("orchestrator.document.start",
		"file", doc.FileName,
		"format", doc.FileType,
		"chunks", len(chunks),
	)

	for _, category := range categories {
		if ctx.Err() != nil {
			return
		}
		outcomes := runOrdered(ctx, len(chunks), o.cfg.Processing.Concurrency, func(ctx context.Context, i int) chunkOutcome {
			return o.extractChunk(ctx, category, chunks[i])
		})

		var values []any
		for i, outcome := range outcomes {
			report.ChunksTotal++
			switch {
			case outcome.Skipped:
				report.ChunksSkipped++
			case outcome.Err != nil:
				report.ChunksFailed++
				o.logger.Warn("orchestrator.chunk_failed",
					"file", doc.FileName,
					"category", category,
					"chunk", i,
					"error", outcome.Err,
				)
			default:
				if value, ok := outcome.Parsed[category]; ok {
					values = append(values, value)
				}
			}
		}
		results.Items[category] = append(results.Items[category], MergeCategory(values)...)
	}
}

// extractChunk prompts the model for one category over one chunk and
// parses whatever came back. Chunks below the configured minimum are
// skipped without a model call.
func (o *Orchestrator) extractChunk(ctx context.Context, category, text string) chunkOutcome {
	if len(strings.TrimSpace(text)) < o.cfg.Processing.MinChunkLength {
		return chunkOutcome{Skipped: true}
	}

	prompt := o.prompts.Format(category, text)
	genCtx, cancel := context.WithTimeout(ctx, o.cfg.ModelTimeout(o.generator.Name()))
	defer cancel()

	raw, err := o.generator.Generate(genCtx, prompt)
	if err != nil {
		return chunkOutcome{Err: err}
	}
	return chunkOutcome{Parsed: llm.ParseResponse(raw)}
}
