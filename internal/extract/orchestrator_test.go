package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmineai/docmine/constants"
	"github.com/docmineai/docmine/internal/common"
	"github.com/docmineai/docmine/internal/config"
	"github.com/docmineai/docmine/internal/ingest"
	"github.com/docmineai/docmine/internal/ocr"
)

// stubGenerator returns canned replies in call order, cycling through
// the list. Calls listed in failOn return an error instead.
type stubGenerator struct {
	mu      sync.Mutex
	replies []string
	failOn  map[int]bool
	calls   int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	call := s.calls
	s.calls++
	if s.failOn[call] {
		return "", errors.New("backend unavailable")
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	return s.replies[call%len(s.replies)], nil
}

func (s *stubGenerator) IsAvailable(ctx context.Context) bool { return true }
func (s *stubGenerator) Name() string                         { return "stub" }

func (s *stubGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testConfig(categories ...string) *config.Config {
	schema := yaml.MapSlice{}
	for _, c := range categories {
		schema = append(schema, yaml.MapItem{Key: c, Value: map[string]any{"description": c}})
	}
	return &config.Config{
		General: config.GeneralConfig{
			ChunkSize:  200,
			Overlap:    20,
			OutputFile: "output/extracted_data.yaml",
		},
		Models:           config.ModelsConfig{Default: "ollama"},
		ExtractionSchema: schema,
		Processing: config.ProcessingConfig{
			MaxFileSizeMB:  100,
			MinChunkLength: 10,
			Concurrency:    1,
		},
	}
}

func testPrompts() *config.Prompts {
	return &config.Prompts{
		Persona: "You extract data.",
		Prompts: map[string]config.PromptSpec{
			"custom": {PromptTemplate: "{persona}\n{text_chunk}"},
		},
	}
}

func testRegistry(t *testing.T) *ingest.Registry {
	t.Helper()
	return ingest.NewRegistry(ocr.NewExtractor(ocr.Config{}, nil), nil)
}

func writeDoc(t *testing.T, dir, name, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
}

func TestRunExtractsFromTextDocument(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "The catalogue lists the Widget as our flagship product this quarter.")

	gen := &stubGenerator{replies: []string{"```yaml\nproducts:\n  - Widget\n```"}}
	o := NewOrchestrator(testConfig("products"), testPrompts(), gen, testRegistry(t), nil)

	results, report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, constants.RunStatusDone, report.Status)
	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Equal(t, []any{"Widget"}, results.Items["products"])
	assert.Equal(t, 1, gen.callCount())
}

func TestRunConcatenatesAcrossDocumentsInOrder(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "First document mentions the Widget product in passing somewhere.")
	writeDoc(t, dir, "b.txt", "Second document mentions the Gadget product in passing somewhere.")

	gen := &stubGenerator{replies: []string{
		"```yaml\nproducts:\n  - Widget\n```",
		"```yaml\nproducts:\n  - Gadget\n```",
	}}
	o := NewOrchestrator(testConfig("products"), testPrompts(), gen, testRegistry(t), nil)

	results, _, err := o.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []any{"Widget", "Gadget"}, results.Items["products"])
}

func TestRunMissingDocsDirIsFatal(t *testing.T) {
	gen := &stubGenerator{}
	o := NewOrchestrator(testConfig("products"), testPrompts(), gen, testRegistry(t), nil)

	_, report, err := o.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDocsDirNotFound)
	assert.Equal(t, constants.RunStatusFailed, report.Status)
}

func TestRunContainsChunkFailures(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "First document mentions the Widget product in passing somewhere.")
	writeDoc(t, dir, "b.txt", "Second document mentions the Gadget product in passing somewhere.")
	writeDoc(t, dir, "c.txt", "Third document mentions the Sprocket product in passing somewhere.")

	gen := &stubGenerator{
		replies: []string{"```yaml\nproducts:\n  - Found\n```"},
		failOn:  map[int]bool{1: true},
	}
	o := NewOrchestrator(testConfig("products"), testPrompts(), gen, testRegistry(t), nil)

	results, report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, constants.RunStatusDone, report.Status)
	assert.Equal(t, 1, report.ChunksFailed)
	assert.Equal(t, []any{"Found", "Found"}, results.Items["products"])
}

func TestRunSkipsShortChunks(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "tiny.txt", "too short")

	cfg := testConfig("products")
	cfg.Processing.MinChunkLength = 50

	gen := &stubGenerator{replies: []string{"```yaml\nproducts:\n  - Widget\n```"}}
	o := NewOrchestrator(cfg, testPrompts(), gen, testRegistry(t), nil)

	results, report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.ChunksSkipped)
	assert.Equal(t, 0, gen.callCount())
	assert.Empty(t, results.Items["products"])
}

func TestRunIgnoresRepliesWithoutCategoryKey(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "The catalogue lists the Widget as our flagship product this quarter.")

	gen := &stubGenerator{replies: []string{"```yaml\nunrelated:\n  - noise\n```"}}
	o := NewOrchestrator(testConfig("products"), testPrompts(), gen, testRegistry(t), nil)

	results, _, err := o.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, results.Items["products"])
}

func TestRunPromptsOncePerCategoryAndChunk(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "The catalogue lists the Widget as our flagship product this quarter.")

	gen := &stubGenerator{replies: []string{"```yaml\nproducts:\n  - Widget\n```"}}
	o := NewOrchestrator(testConfig("products", "issues", "contacts"), testPrompts(), gen, testRegistry(t), nil)

	_, report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 3, gen.callCount())
	assert.Equal(t, 3, report.ChunksTotal)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "The catalogue lists the Widget as our flagship product this quarter.")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &stubGenerator{replies: []string{"```yaml\nproducts:\n  - Widget\n```"}}
	o := NewOrchestrator(testConfig("products"), testPrompts(), gen, testRegistry(t), nil)

	_, report, err := o.Run(ctx, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, constants.RunStatusFailed, report.Status)
}

func TestRunWithConcurrencyPreservesChunkOrder(t *testing.T) {
	dir := t.TempDir()
	var text string
	for i := 0; i < 40; i++ {
		text += "Sentence number with some padding to reach the split size. "
	}
	writeDoc(t, dir, "long.txt", text)

	gen := &stubGenerator{replies: []string{"```yaml\nproducts:\n  - Widget\n```"}}
	cfg := testConfig("products")
	cfg.Processing.Concurrency = 4

	o := NewOrchestrator(cfg, testPrompts(), gen, testRegistry(t), nil)
	results, report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Greater(t, report.ChunksTotal, 1)
	assert.Len(t, results.Items["products"], gen.callCount())
	for _, item := range results.Items["products"] {
		assert.Equal(t, "Widget", item)
	}
}

func TestRunContainsDocumentFailures(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "good.txt", "The catalogue lists the Widget as our flagship product this quarter.")
	writeDoc(t, dir, "broken.docx", "not actually a zip archive")

	gen := &stubGenerator{replies: []string{"```yaml\nproducts:\n  - Widget\n```"}}
	o := NewOrchestrator(testConfig("products"), testPrompts(), gen, testRegistry(t), nil)

	results, report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, constants.RunStatusDone, report.Status)
	assert.Equal(t, 2, report.DocumentsFound)
	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Len(t, report.FailedFiles, 1)
	assert.Contains(t, report.FailedFiles[0], "broken.docx")
	assert.Equal(t, 1, report.PerFormat[constants.DOCX].Failed)
	assert.Equal(t, 1, report.PerFormat[constants.TEXT].Processed)
	assert.Equal(t, []any{"Widget"}, results.Items["products"])
}

func TestRunCollectsOneItemPerChunk(t *testing.T) {
	dir := t.TempDir()
	text := "The first sentence describes the Widget product in some detail." +
		" The second sentence describes the Widget product once more."
	writeDoc(t, dir, "two-sentences.txt", text)

	cfg := testConfig("products")
	cfg.General.ChunkSize = 80
	cfg.General.Overlap = 10

	gen := &stubGenerator{replies: []string{"```yaml\nproducts:\n  - Widget\n```"}}
	o := NewOrchestrator(cfg, testPrompts(), gen, testRegistry(t), nil)

	results, report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, report.ChunksTotal)
	assert.Equal(t, []any{"Widget", "Widget"}, results.Items["products"])
}
