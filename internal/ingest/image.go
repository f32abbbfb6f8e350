package ingest

import (
	"context"
	"log/slog"

	"github.com/docmineai/docmine/internal/chunk"
	"github.com/docmineai/docmine/internal/ocr"
)

// ImageProcessor OCRs image files through the ocr package.
type ImageProcessor struct {
	extractor *ocr.Extractor
	logger    *slog.Logger
}

func NewImageProcessor(extractor *ocr.Extractor, logger *slog.Logger) *ImageProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageProcessor{extractor: extractor, logger: logger}
}

func (p *ImageProcessor) Process(ctx context.Context, path string) ProcessResult {
	res, err := p.extractor.ExtractImage(ctx, path)
	if err != nil {
		return ProcessResult{Err: err.Error()}
	}
	meta := map[string]any{"method": res.Method}
	if len(res.Warnings) > 0 {
		meta["warnings"] = res.Warnings
	}
	return ProcessResult{
		Success:     true,
		TextContent: chunk.Clean(res.Text),
		Metadata:    meta,
	}
}
