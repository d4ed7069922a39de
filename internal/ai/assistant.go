package ai

import "context"

// Generator is the language-generation capability. Implementations return the
// generated text or an error; an empty result is always reported as an error.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
