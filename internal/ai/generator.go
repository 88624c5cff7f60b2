package ai

import "context"

// Generator produces free-form text completions for a prompt. Implementations
// wrap a specific LLM vendor and are expected to perform a single blocking
// round trip with no internal retries.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
