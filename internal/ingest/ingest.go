package ingest

import (
	"context"

	"github.com/docmineai/docmine/constants"
)

// Document is one ingested file: its name, detected format and the
// plain text recovered from it. Documents are immutable after
// ingestion and discarded once chunked.
type Document struct {
	FileName string
	FileType constants.Format
	Text     string
}

// ProcessResult is the outcome of converting one file to text. The
// pipeline consumes only Success and TextContent; Metadata and Err
// exist for logs and the run report.
type ProcessResult struct {
	Success     bool
	TextContent string
	Metadata    map[string]any
	Err         string
}

// Processor converts one file of a specific format to plain text.
type Processor interface {
	Process(ctx context.Context, path string) ProcessResult
}
