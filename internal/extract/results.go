package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

// RunMetadata describes one completed extraction run. It is written as
// the first section of the output document.
type RunMetadata struct {
	Timestamp       string   `yaml:"timestamp"`
	ModelUsed       string   `yaml:"model_used"`
	TotalDocuments  int      `yaml:"total_documents"`
	ExtractionTypes []string `yaml:"extraction_types"`
}

// Results holds the merged per-category aggregates of a run, with the
// category order carried separately so the output preserves it.
type Results struct {
	Metadata   RunMetadata
	Categories []string
	Items      map[string][]any
}

func NewResults(model string, categories []string, totalDocuments int) *Results {
	return &Results{
		Metadata: RunMetadata{
			Timestamp:       time.Now().Format(time.RFC3339),
			ModelUsed:       model,
			TotalDocuments:  totalDocuments,
			ExtractionTypes: categories,
		},
		Categories: categories,
		Items:      map[string][]any{},
	}
}

// document builds the ordered output tree: metadata first, then every
// category in schema order, each as a list (possibly empty).
func (r *Results) document() yaml.MapSlice {
	doc := yaml.MapSlice{
		{Key: "extraction_metadata", Value: r.Metadata},
	}
	for _, category := range r.Categories {
		items := r.Items[category]
		if items == nil {
			items = []any{}
		}
		doc = append(doc, yaml.MapItem{Key: category, Value: items})
	}
	return doc
}

// Marshal renders the results document as YAML.
func (r *Results) Marshal() ([]byte, error) {
	return yaml.Marshal(r.document())
}

// WriteFile writes the results document to path, creating the parent
// directory if needed.
func (r *Results) WriteFile(path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	out, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	logger.Info("extract.results.written", "path", path, "bytes", len(out))
	return nil
}

// ItemCounts returns per-category item totals, for reporting and the
// run journal.
func (r *Results) ItemCounts() map[string]int {
	counts := make(map[string]int, len(r.Categories))
	for _, category := range r.Categories {
		counts[category] = len(r.Items[category])
	}
	return counts
}
