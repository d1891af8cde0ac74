// Package llm abstracts the hosted generative-AI backends the assistant
// can run on. Providers are stateless; credentials come from env vars.
package llm

import (
	"context"
)

// Provider is the interface every LLM backend implements.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions reshapes raw instructions into the model's preferred format.
	AdaptInstructions(rawInstructions string) string
}

// OpenAIProvider is the configured fallback slot. Not wired to an API yet;
// the firm's subscription only covers Gemini and DeepSeek.
type OpenAIProvider struct{}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	return "Not implemented: OpenAI Response", nil
}

func (p *OpenAIProvider) AdaptInstructions(raw string) string {
	return "OpenAI Style: " + raw
}
