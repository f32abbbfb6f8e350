package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmineai/docmine/internal/common"
)

const validConfig = `
general:
  chunk_size: 1500
  overlap: 150
  output_file: out/data.yaml
models:
  default: ollama
  ollama:
    model_name: llama3.2
    base_url: http://localhost:11434
    timeout: 90
    temperature: 0.1
extraction_schema:
  products:
    description: product names
  issues:
    description: reported issues
  contacts:
    description: contact details
processing:
  max_file_size_mb: 50
  min_chunk_length: 40
  concurrency: 2
`

func TestParseValidConfig(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, 1500, cfg.General.ChunkSize)
	assert.Equal(t, 150, cfg.General.Overlap)
	assert.Equal(t, "out/data.yaml", cfg.General.OutputFile)
	assert.Equal(t, "ollama", cfg.Models.Default)
	require.NotNil(t, cfg.Models.Ollama)
	assert.Equal(t, "llama3.2", cfg.Models.Ollama.ModelName)
	assert.Equal(t, 50, cfg.Processing.MaxFileSizeMB)
	assert.Equal(t, 2, cfg.Processing.Concurrency)
}

func TestParseMissingSectionIsFatal(t *testing.T) {
	missingModels := `
general:
  chunk_size: 1000
extraction_schema:
  products:
    description: x
processing:
  concurrency: 1
`
	_, err := Parse([]byte(missingModels))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingSection)
	assert.True(t, common.IsFatal(err))
}

func TestParseRejectsEmptySchema(t *testing.T) {
	emptySchema := `
general:
  chunk_size: 1000
models:
  default: ollama
  ollama:
    model_name: llama3.2
extraction_schema: {}
processing:
  concurrency: 1
`
	_, err := Parse([]byte(emptySchema))
	require.Error(t, err)
}

func TestParseRejectsMissingDefaultModel(t *testing.T) {
	noDefault := `
general:
  chunk_size: 1000
models:
  ollama:
    model_name: llama3.2
extraction_schema:
  products:
    description: x
processing:
  concurrency: 1
`
	_, err := Parse([]byte(noDefault))
	require.Error(t, err)
}

func TestCategoriesPreserveDeclarationOrder(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)
	assert.Equal(t, []string{"products", "issues", "contacts"}, cfg.Categories())
}

func TestDefaultsApplied(t *testing.T) {
	minimal := `
general: {}
models:
  default: ollama
  ollama:
    model_name: llama3.2
extraction_schema:
  products:
    description: x
processing: {}
`
	cfg, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, 2000, cfg.General.ChunkSize)
	assert.Equal(t, "output/extracted_data.yaml", cfg.General.OutputFile)
	assert.Equal(t, 100, cfg.Processing.MaxFileSizeMB)
	assert.Equal(t, 50, cfg.Processing.MinChunkLength)
	assert.Equal(t, 1, cfg.Processing.Concurrency)
}

func TestModelTimeout(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.ModelTimeout("ollama"))
	assert.Equal(t, 45*time.Second, cfg.ModelTimeout("openai"))
	assert.Equal(t, 45*time.Second, cfg.ModelTimeout("unknown"))
}

func TestPromptsFormatAndCustomFallback(t *testing.T) {
	raw := `
persona: You are a careful analyst.
prompts:
  products:
    description: product extraction
    prompt_template: "{persona}\nFind products in:\n{text_chunk}"
  custom:
    description: generic extraction
    prompt_template: "{persona}\nExtract anything notable from:\n{text_chunk}"
`
	p, err := ParsePrompts([]byte(raw))
	require.NoError(t, err)

	got := p.Format("products", "chunk body")
	assert.Contains(t, got, "You are a careful analyst.")
	assert.Contains(t, got, "Find products in:")
	assert.Contains(t, got, "chunk body")
	assert.NotContains(t, got, "{persona}")
	assert.NotContains(t, got, "{text_chunk}")

	fallback := p.Format("unlisted_category", "chunk body")
	assert.Contains(t, fallback, "Extract anything notable from:")
}
