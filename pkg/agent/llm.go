package agent

import "context"

// Request is one model invocation.
type Request struct {
	Model             string
	SystemInstruction string
	Prompt            string
	UseSearch         bool
}

// LLM generates a text response for a request. Implementations return
// errors classifiable by pkg/errors (typed where possible); the runner
// decides what to retry.
type LLM interface {
	Generate(ctx context.Context, req Request) (string, error)
}
