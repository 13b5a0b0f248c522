package ai

import "context"

// Generator is the generative extraction capability. GenerateJSON
// constrains the response to a JSON document; GenerateText returns prose.
// Both may fail or return malformed output and callers must treat them as
// unreliable.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt, system string) (string, error)
	GenerateText(ctx context.Context, prompt, system string) (string, error)
}

// Embedder is the text-to-vector capability. It may fail independently of
// the Generator.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}
