package llm

import (
	"context"
	"time"
)

// Completer issues one synchronous completion request. No streaming, no
// retries: failed calls surface to the caller.
type Completer interface {
	Model() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config configures a completion provider. The API key is supplied by the
// session layer and scoped to the constructed client; nothing is persisted.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}
