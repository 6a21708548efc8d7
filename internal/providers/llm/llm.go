package llm

import "context"

type Provider interface {
	// Complete returns the full model response for a system+user prompt pair.
	Complete(ctx context.Context, system, prompt string) (string, error)
	Close() error
}
