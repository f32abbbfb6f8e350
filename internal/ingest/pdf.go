package ingest

import (
	"context"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/docmineai/docmine/internal/chunk"
	"github.com/docmineai/docmine/internal/ocr"
)

// PDFProcessor extracts PDF text through the ocr package, with pdfcpu
// supplying structural metadata up front.
type PDFProcessor struct {
	extractor *ocr.Extractor
	logger    *slog.Logger
}

func NewPDFProcessor(extractor *ocr.Extractor, logger *slog.Logger) *PDFProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFProcessor{extractor: extractor, logger: logger}
}

func (p *PDFProcessor) Process(ctx context.Context, path string) ProcessResult {
	meta := map[string]any{}
	if pages, err := api.PageCountFile(path); err == nil {
		meta["page_count"] = pages
	} else {
		// a broken xref is not always fatal for pdftotext, record and go on
		p.logger.Warn("ingest.pdf.page_count_failed", "path", path, "error", err)
		meta["page_count_error"] = err.Error()
	}

	res, err := p.extractor.ExtractPDF(ctx, path)
	if err != nil {
		return ProcessResult{Metadata: meta, Err: err.Error()}
	}

	meta["method"] = res.Method
	meta["pages"] = res.Pages
	if len(res.Warnings) > 0 {
		meta["warnings"] = res.Warnings
	}
	return ProcessResult{
		Success:     true,
		TextContent: chunk.Clean(res.Text),
		Metadata:    meta,
	}
}
