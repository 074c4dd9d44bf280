package port

import "context"

// CompletionRequest is a single system/user prompt pair sent to the
// generation service. A nil Seed yields sampled output; a set Seed must
// reproduce the same completion for identical inputs and model.
type CompletionRequest struct {
	System string
	User   string
	Model  string // optional override of the client's configured model
	Seed   *int64
}

// Completer is the text-generation capability every higher component
// depends on.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// ModelName returns the default model identifier.
	ModelName() string
}
