// Package chat orchestrates one conversational exchange: rehydrate the
// user's history, call the completion client, persist both new turns.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/faramade/ecotrack/pkg/llm"
	"github.com/faramade/ecotrack/store"
)

// ErrEmptyMessage is returned when the user input is blank.
var ErrEmptyMessage = errors.New("message must not be empty")

// Config toggles orchestrator behavior. Persona injection and persistence
// are independent switches, not forked code paths.
type Config struct {
	// Persona prepends the EcoTrack system prompt to every exchange.
	Persona bool

	// Persist records both turns of each exchange in the store and replays
	// prior history into the prompt. When false the orchestrator is a raw
	// pass-through and needs no store at all.
	Persist bool

	// HistoryLimit bounds how many stored turns are replayed into the
	// prompt. 0 replays the full history.
	HistoryLimit int

	// Options are passed through to the completion client.
	Options *llm.Options
}

// Orchestrator runs exchanges against a completion client, optionally backed
// by a session store. The in-memory turn buffer is rebuilt from the store at
// the start of every exchange, so stale state never survives across requests.
type Orchestrator struct {
	client llm.Client
	store  store.Store
	cfg    Config
	logger *zap.Logger
	locks  *userLocks
}

// New builds an orchestrator. st may be nil when cfg.Persist is false.
func New(client llm.Client, st store.Store, cfg Config, logger *zap.Logger) (*Orchestrator, error) {
	if cfg.Persist && st == nil {
		return nil, errors.New("persistence enabled but no store provided")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		client: client,
		store:  st,
		cfg:    cfg,
		logger: logger,
		locks:  newUserLocks(),
	}, nil
}

// Send runs one exchange for the user and returns the assistant's reply.
// On completion failure nothing is persisted: a question with no answer must
// not appear in future replays.
func (o *Orchestrator) Send(ctx context.Context, userID, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyMessage
	}

	if o.cfg.Persist {
		// Hold the per-user lock across load, completion, and persistence
		// so overlapping exchanges for the same user cannot reorder turns.
		lock := o.locks.forUser(userID)
		lock.Lock()
		defer lock.Unlock()
	}

	messages := make([]llm.Message, 0, 2)
	if o.cfg.Persona {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: PersonaPrompt})
	}

	if o.cfg.Persist {
		history, err := o.store.Turns(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("load history: %w", err)
		}
		for _, turn := range boundHistory(history, o.cfg.HistoryLimit) {
			messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
		}
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input})

	reply, err := o.client.Complete(ctx, messages, o.cfg.Options)
	if err != nil {
		o.logger.Error("completion failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", err
	}

	if o.cfg.Persist {
		if _, err := o.store.AppendTurn(ctx, userID, llm.RoleUser, input); err != nil {
			return "", fmt.Errorf("persist user turn: %w", err)
		}
		if _, err := o.store.AppendTurn(ctx, userID, llm.RoleAssistant, reply); err != nil {
			return "", fmt.Errorf("persist assistant turn: %w", err)
		}
	}

	o.logger.Debug("exchange complete",
		zap.String("user_id", userID),
		zap.Int("prompt_messages", len(messages)),
		zap.Int("reply_length", len(reply)),
	)

	return reply, nil
}

// boundHistory keeps the most recent turns up to limit, without splitting a
// user/assistant pair: the kept window always starts on a user turn.
func boundHistory(history []store.Turn, limit int) []store.Turn {
	if limit <= 0 || len(history) <= limit {
		return history
	}

	window := history[len(history)-limit:]
	for len(window) > 0 && window[0].Role != llm.RoleUser {
		window = window[1:]
	}
	return window
}
