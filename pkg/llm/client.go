package llm

import (
	"context"
	"fmt"
)

// Client abstracts a chat completion provider. Complete submits the ordered
// message sequence and returns the fully assembled reply text.
type Client interface {
	Complete(ctx context.Context, messages []Message, opts *Options) (string, error)
}

// validateMessages rejects requests the provider would refuse anyway, before
// any network traffic happens.
func validateMessages(messages []Message) error {
	if len(messages) == 0 {
		return ErrNoMessages
	}
	for i, m := range messages {
		if !ValidRole(m.Role) {
			return fmt.Errorf("message %d has invalid role %q", i, m.Role)
		}
	}
	return nil
}
