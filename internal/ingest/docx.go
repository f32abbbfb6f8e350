package ingest

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/docmineai/docmine/internal/chunk"
)

// DocxProcessor extracts text from DOCX archives by walking the runs
// of word/document.xml. Legacy .doc files share the extension mapping
// but only the OOXML container is actually readable.
type DocxProcessor struct {
	logger *slog.Logger
}

func NewDocxProcessor(logger *slog.Logger) *DocxProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocxProcessor{logger: logger}
}

func (p *DocxProcessor) Process(_ context.Context, path string) ProcessResult {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return ProcessResult{Err: fmt.Sprintf("open docx archive: %v", err)}
	}
	defer func() { _ = reader.Close() }()

	content, err := documentXMLBytes(&reader.Reader)
	if err != nil {
		return ProcessResult{Err: err.Error()}
	}
	if content == nil {
		return ProcessResult{Err: "word/document.xml not found"}
	}

	text := parseDocumentXML(content)
	return ProcessResult{
		Success:     true,
		TextContent: chunk.Clean(text),
		Metadata:    map[string]any{"paragraphs": strings.Count(text, "\n") + 1},
	}
}

func documentXMLBytes(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}
		return content, nil
	}
	return nil, nil
}

// documentXML mirrors the parts of word/document.xml we care about.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, text := range r.Text {
				result.WriteString(text.Content)
			}
		}
	}
	return strings.TrimSpace(result.String())
}
