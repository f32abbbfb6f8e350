// Package ocr extracts text from PDFs and images by driving the
// poppler and tesseract command line tools. PDFs with a real text
// layer go through pdftotext; scanned PDFs are rasterized with
// pdftoppm and each page is OCRed.
package ocr

import (
	"log/slog"
	"os/exec"
	"time"

	"github.com/docmineai/docmine/internal/common"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit
}

type ExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = common.GetEnvAsInt("DOCMINE_OCR_DPI", 300)
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// HasPDFTools reports whether the poppler binaries are on PATH.
func (e *Extractor) HasPDFTools() bool {
	_, err := exec.LookPath(e.cfg.Pdftotext)
	return err == nil
}

// HasTesseract reports whether the tesseract binary is on PATH.
func (e *Extractor) HasTesseract() bool {
	_, err := exec.LookPath(e.cfg.Tesseract)
	return err == nil
}
