package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/docmineai/docmine/internal/common"
)

// Prompts holds the persona preamble and per-category prompt templates.
// Templates use {persona} and {text_chunk} placeholders; formatting is
// plain string substitution.
type Prompts struct {
	Persona string                `yaml:"persona"`
	Prompts map[string]PromptSpec `yaml:"prompts"`
}

type PromptSpec struct {
	Description    string `yaml:"description"`
	PromptTemplate string `yaml:"prompt_template"`
}

// LoadPrompts reads the prompts file.
func LoadPrompts(path string) (*Prompts, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewAppError("PROMPTS_READ", fmt.Sprintf("prompts file not found: %s", path), err)
	}
	return ParsePrompts(raw)
}

// ParsePrompts decodes an in-memory prompts document.
func ParsePrompts(raw []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, common.NewAppError("PROMPTS_PARSE", "invalid prompts YAML", err)
	}
	if p.Prompts == nil {
		p.Prompts = map[string]PromptSpec{}
	}
	return &p, nil
}

// Template returns the prompt template for a category, falling back to
// the "custom" template when the category has none of its own.
func (p *Prompts) Template(category string) string {
	if spec, ok := p.Prompts[category]; ok && spec.PromptTemplate != "" {
		return spec.PromptTemplate
	}
	return p.Prompts["custom"].PromptTemplate
}

// Format substitutes the persona and chunk text into the category's
// template.
func (p *Prompts) Format(category, textChunk string) string {
	return strings.NewReplacer(
		"{persona}", p.Persona,
		"{text_chunk}", textChunk,
	).Replace(p.Template(category))
}
