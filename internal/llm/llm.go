package llm

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrModel wraps every connectivity or model-runtime failure.
	ErrModel = errors.New("llm request failed")
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("llm returned empty content")
)

// Client sends a filled prompt to a language model and returns the complete generated text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options configure a client at construction time.
type Options struct {
	Model       string
	Temperature float64
	// Sinks observe streamed chunks; they never change the returned text.
	Sinks []TokenSink
}

// Sink merges the configured sinks into one; it is never nil.
func (o Options) Sink() TokenSink {
	return MultiSink(o.Sinks...)
}

// Factory builds a client for one run.
type Factory func(opts Options) (Client, error)

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f ClientFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ValidateOptions checks the construction parameters shared by every provider.
func ValidateOptions(opts Options) error {
	if strings.TrimSpace(opts.Model) == "" {
		return errors.New("llm model is required")
	}
	if opts.Temperature < 0 || opts.Temperature > 1 {
		return errors.New("llm temperature must be within [0,1]")
	}
	return nil
}
