package llm

import (
	"context"

	"nutriplan/internal/shared"
)

// Sampling behavior is fixed at the client level, not per request. Every
// completion uses the same temperature and output cap, so callers must
// tolerate non-determinism across calls.
const (
	Temperature       = 0.7
	MaxOutputTokens   = 2000
	SystemInstruction = "You are a helpful assistant."
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
