package llm

import "context"

// Generator is the model interface the pipeline depends on. A backend
// turns a fully formatted prompt into free-form text; it has no say in
// chunking or parsing.
type Generator interface {
	// Generate sends one prompt and returns the model's raw reply.
	Generate(ctx context.Context, prompt string) (string, error)
	// IsAvailable probes the backend without sending a real prompt.
	IsAvailable(ctx context.Context) bool
	// Name identifies the backend ("ollama", "openai") for logs and
	// run metadata.
	Name() string
}
