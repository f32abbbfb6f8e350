package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/docmineai/docmine/internal/common"
)

// Config is the read-only run configuration, loaded once per run.
type Config struct {
	General          GeneralConfig    `yaml:"general"`
	Models           ModelsConfig     `yaml:"models"`
	ExtractionSchema yaml.MapSlice    `yaml:"extraction_schema"`
	Processing       ProcessingConfig `yaml:"processing"`
}

type GeneralConfig struct {
	ChunkSize  int    `yaml:"chunk_size"`
	Overlap    int    `yaml:"overlap"`
	OutputFile string `yaml:"output_file"`
}

type ModelsConfig struct {
	Default string       `yaml:"default"`
	Ollama  *OllamaModel `yaml:"ollama"`
	OpenAI  *OpenAIModel `yaml:"openai"`
}

type OllamaModel struct {
	ModelName      string  `yaml:"model_name"`
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout"`
	Temperature    float32 `yaml:"temperature"`
}

type OpenAIModel struct {
	ModelName      string  `yaml:"model_name"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float32 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout"`
}

type ProcessingConfig struct {
	MaxFileSizeMB  int `yaml:"max_file_size_mb"`
	MinChunkLength int `yaml:"min_chunk_length"`
	Concurrency    int `yaml:"concurrency"`
}

// requiredSections must all be present at the top level of the file.
var requiredSections = []string{"general", "models", "extraction_schema", "processing"}

// Load reads, validates and decodes the extraction configuration.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewAppError("CONFIG_READ", fmt.Sprintf("configuration file not found: %s", path), err)
	}
	return Parse(raw)
}

// Parse decodes and validates an in-memory configuration document.
func Parse(raw []byte) (*Config, error) {
	var sections map[string]any
	if err := yaml.Unmarshal(raw, &sections); err != nil {
		return nil, common.NewAppError("CONFIG_PARSE", "invalid configuration YAML", err)
	}
	for _, s := range requiredSections {
		if _, ok := sections[s]; !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingSection, s)
		}
	}

	if err := validateSchema(raw); err != nil {
		return nil, common.NewAppError("CONFIG_SCHEMA", "configuration does not match schema", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, common.NewAppError("CONFIG_DECODE", "cannot decode configuration", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.General.ChunkSize <= 0 {
		c.General.ChunkSize = 2000
	}
	if c.General.Overlap < 0 {
		c.General.Overlap = 0
	}
	if c.General.OutputFile == "" {
		c.General.OutputFile = "output/extracted_data.yaml"
	}
	if c.Processing.MaxFileSizeMB <= 0 {
		c.Processing.MaxFileSizeMB = 100
	}
	if c.Processing.MinChunkLength <= 0 {
		c.Processing.MinChunkLength = 50
	}
	if c.Processing.Concurrency <= 0 {
		c.Processing.Concurrency = 1
	}
}

// Categories returns the extraction category names in their declared
// order. The schema's key order is the pipeline's iteration order.
func (c *Config) Categories() []string {
	names := make([]string, 0, len(c.ExtractionSchema))
	for _, item := range c.ExtractionSchema {
		names = append(names, fmt.Sprint(item.Key))
	}
	return names
}

// ModelTimeout returns the per-generate timeout for the given backend.
func (c *Config) ModelTimeout(modelType string) time.Duration {
	switch modelType {
	case "ollama":
		if c.Models.Ollama != nil && c.Models.Ollama.TimeoutSeconds > 0 {
			return time.Duration(c.Models.Ollama.TimeoutSeconds) * time.Second
		}
		return 120 * time.Second
	case "openai":
		if c.Models.OpenAI != nil && c.Models.OpenAI.TimeoutSeconds > 0 {
			return time.Duration(c.Models.OpenAI.TimeoutSeconds) * time.Second
		}
		return 45 * time.Second
	default:
		return 45 * time.Second
	}
}
