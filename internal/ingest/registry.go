package ingest

import (
	"log/slog"

	"github.com/docmineai/docmine/constants"
	"github.com/docmineai/docmine/internal/ocr"
)

// Registry holds the processors whose external dependencies were found
// at startup. Formats without a registered processor are skipped with a
// "processor unavailable" log line instead of failing later.
type Registry struct {
	processors map[constants.Format]Processor
	logger     *slog.Logger
}

// NewRegistry probes each processor's external tooling and registers
// the available ones. Text and DOCX need nothing beyond the standard
// library; PDF needs poppler, images need tesseract.
func NewRegistry(extractor *ocr.Extractor, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{processors: map[constants.Format]Processor{}, logger: logger}

	r.register(constants.TEXT, NewTextProcessor(logger))
	r.register(constants.DOCX, NewDocxProcessor(logger))

	if extractor.HasPDFTools() {
		r.register(constants.PDF, NewPDFProcessor(extractor, logger))
	} else {
		logger.Warn("ingest.processor_unavailable", "format", constants.PDF, "missing", "pdftotext")
	}
	if extractor.HasTesseract() {
		r.register(constants.IMAGE, NewImageProcessor(extractor, logger))
	} else {
		logger.Warn("ingest.processor_unavailable", "format", constants.IMAGE, "missing", "tesseract")
	}
	return r
}

func (r *Registry) register(f constants.Format, p Processor) {
	r.processors[f] = p
	r.logger.Info("ingest.processor_registered", "format", f)
}

// For returns the processor for a format, if one was registered.
func (r *Registry) For(f constants.Format) (Processor, bool) {
	p, ok := r.processors[f]
	return p, ok
}
