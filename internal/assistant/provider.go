package assistant

import "context"

// Provider is a generative model backend.
type Provider interface {
	// Name identifies the backend in logs.
	Name() string

	// Classify sends a photo with an instruction and returns the model's
	// JSON answer, constrained to the item analysis record.
	Classify(ctx context.Context, data []byte, mime, instruction string) (string, error)

	// Complete returns the model's text answer to a prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}
