package ocr

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// reBoxNoise strips isolated punctuation lines tesseract tends to emit
// around figures and rulings.
var reBoxNoise = regexp.MustCompile(`(?m)^[\s|_\-.~]{1,4}$\n?`)

// ExtractImage OCRs a single image file.
func (e *Extractor) ExtractImage(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	txt, warns, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return ExtractionResult{Method: "image-ocr", Warnings: warns, Duration: time.Since(start)}, err
	}
	return ExtractionResult{
		Text:     txt,
		Pages:    1,
		Method:   "image-ocr",
		Duration: time.Since(start),
		Warnings: warns,
	}, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	// tesseract <file> stdout -l <lang>
	args := []string{path, "stdout", "-l", e.cfg.TesseractLang}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}

	// minor cleanup of obvious line noise
	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}
