package ingest

import (
	"context"
	"log/slog"
	"os"

	"github.com/docmineai/docmine/internal/chunk"
)

// TextProcessor reads plain-text files directly.
type TextProcessor struct {
	logger *slog.Logger
}

func NewTextProcessor(logger *slog.Logger) *TextProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextProcessor{logger: logger}
}

func (p *TextProcessor) Process(_ context.Context, path string) ProcessResult {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ProcessResult{Err: err.Error()}
	}
	return ProcessResult{
		Success:     true,
		TextContent: chunk.Clean(string(raw)),
		Metadata:    map[string]any{"bytes": len(raw)},
	}
}
