// Package llm provides internal representations of LLM completion requests
// and responses, and a client that drains the provider's token stream into a
// single reply.
package llm

import (
	"errors"
	"fmt"
)

// ErrorResponse represents an error body returned to HTTP callers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrNoMessages is returned when a completion is requested with an empty
// message list.
var ErrNoMessages = errors.New("completion requires at least one message")

// CompletionError wraps any transport or provider failure. Callers decide
// retry policy; the client never retries on its own.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
