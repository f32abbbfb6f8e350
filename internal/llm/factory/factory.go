// Package factory resolves configured model backends into llm.Generator
// values at startup. Selection happens once, from configuration; the
// pipeline itself never inspects backend types.
package factory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/docmineai/docmine/internal/common"
	"github.com/docmineai/docmine/internal/config"
	"github.com/docmineai/docmine/internal/llm"
	"github.com/docmineai/docmine/internal/llm/ollama"
	"github.com/docmineai/docmine/internal/llm/openai"
)

// New builds the Generator for modelType. An empty modelType selects
// the configured default. Unknown or unconfigured types and a missing
// OpenAI credential are fatal configuration errors.
func New(cfg *config.Config, modelType string, logger *slog.Logger) (llm.Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if modelType == "" {
		modelType = cfg.Models.Default
	}

	switch modelType {
	case "ollama":
		mc := cfg.Models.Ollama
		if mc == nil {
			return nil, fmt.Errorf("%w: ollama", common.ErrModelUnconfigured)
		}
		return ollama.NewClient(ollama.Config{
			BaseURL:     mc.BaseURL,
			Model:       mc.ModelName,
			Temperature: mc.Temperature,
			Timeout:     time.Duration(mc.TimeoutSeconds) * time.Second,
		}, logger), nil

	case "openai":
		mc := cfg.Models.OpenAI
		if mc == nil {
			return nil, fmt.Errorf("%w: openai", common.ErrModelUnconfigured)
		}
		if os.Getenv("OPENAI_API_KEY") == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", common.ErrMissingCredential)
		}
		return openai.NewClient(openai.Config{
			Model:       mc.ModelName,
			MaxTokens:   mc.MaxTokens,
			Temperature: mc.Temperature,
			Timeout:     time.Duration(mc.TimeoutSeconds) * time.Second,
		}, logger), nil

	default:
		return nil, fmt.Errorf("%w: %s", common.ErrModelUnconfigured, modelType)
	}
}

// Availability probes every backend named in the configuration and
// reports which ones answer. Backends that cannot even be constructed
// (missing credential) count as unavailable rather than failing.
func Availability(ctx context.Context, cfg *config.Config, logger *slog.Logger) map[string]bool {
	result := map[string]bool{}
	for _, modelType := range []string{"ollama", "openai"} {
		switch modelType {
		case "ollama":
			if cfg.Models.Ollama == nil {
				continue
			}
		case "openai":
			if cfg.Models.OpenAI == nil {
				continue
			}
		}
		gen, err := New(cfg, modelType, logger)
		if err != nil {
			result[modelType] = false
			continue
		}
		result[modelType] = gen.IsAvailable(ctx)
	}
	return result
}
