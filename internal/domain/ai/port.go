package ai

import "context"

// Completer sends a single prompt to a text-completion model and returns the
// raw free-text answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
