package search

import (
	"context"
	"fmt"
)

// Result is one raw listing as returned by the provider, in ranking order.
// Raw keeps every field the provider sent so downstream consumers can persist
// them untouched.
type Result struct {
	Title   string         `mapstructure:"title"`
	URL     string         `mapstructure:"url"`
	Content string         `mapstructure:"content"`
	Raw     map[string]any `mapstructure:"-"`
}

// Searcher is the capability boundary for the external job-search provider.
// Implementations must preserve the provider's ranking order and collapse
// every provider failure into an *UnavailableError.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int, topic string) ([]Result, error)
}

// UnavailableError is the single failure signal a Searcher may return. The
// provider-specific cause is carried for logging but never leaks as a distinct
// error type across the boundary.
type UnavailableError struct {
	cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("search unavailable: %v", e.cause)
}

func (e *UnavailableError) Unwrap() error { return e.cause }

// Unavailable wraps a provider failure into the boundary error.
func Unavailable(cause error) error {
	return &UnavailableError{cause: cause}
}
