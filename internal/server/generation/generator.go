// Package generation talks to the hosted LLM backends and turns their text
// output into the values the study endpoints return.
package generation

import (
	"context"
	"fmt"
)

// Format selects the response shape requested from the backend.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Generator sends one prompt as a single user message and returns the text
// of the reply. Implementations do not retry.
type Generator interface {
	Name() string
	Model() string
	Generate(ctx context.Context, prompt string, format Format) (string, error)
}

// Error is a failed provider call. Message is already human-readable.
type Error struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Provider, e.Message, e.StatusCode)
}
