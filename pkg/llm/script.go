package llm

import (
	"context"
	"sync"
)

// ScriptClient is a Client that replays scripted replies in order and records
// every request it receives. It is used by tests and by local runs without an
// API key.
type ScriptClient struct {
	mu      sync.Mutex
	replies []string
	calls   [][]Message
	err     error
}

// NewScriptClient returns a client that answers with the given replies, one
// per call. When the script runs out the last reply repeats.
func NewScriptClient(replies ...string) *ScriptClient {
	return &ScriptClient{replies: replies}
}

// Fail makes every subsequent Complete call return err.
func (c *ScriptClient) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *ScriptClient) Complete(_ context.Context, messages []Message, _ *Options) (string, error) {
	if err := validateMessages(messages); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	copied := make([]Message, len(messages))
	copy(copied, messages)
	c.calls = append(c.calls, copied)

	if c.err != nil {
		return "", &CompletionError{Err: c.err}
	}

	if len(c.replies) == 0 {
		return "", nil
	}
	idx := len(c.calls) - 1
	if idx >= len(c.replies) {
		idx = len(c.replies) - 1
	}
	return c.replies[idx], nil
}

// Calls returns the message lists passed to Complete so far.
func (c *ScriptClient) Calls() [][]Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([][]Message, len(c.calls))
	copy(out, c.calls)
	return out
}
