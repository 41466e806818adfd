// Package llm contains the language model providers used by the oracle.
package llm

import (
	"context"
	"io"
)

// Request is a single-turn completion request.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	// JSON asks the provider to return a JSON object.
	JSON bool
}

// LLM completes prompts.
type LLM interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Transcriber turns recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// Provider is a model backend able to do both.
type Provider interface {
	LLM
	Transcriber
	Close() error
}
