package llm

import (
	"context"
	"errors"
	"time"

	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role
	Content string
}

// Sampling holds the decoding parameters sent with every generation call.
type Sampling struct {
	Temperature float64
	TopK        int
	TopP        float64
	Seed        int
}

// Provider sends a chat to a model and returns the raw text of its reply.
// Implementations wrap backend failures in quizErrors.GenerationError and do not retry.
type Provider interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

type timeoutProvider struct {
	next    Provider
	timeout time.Duration
}

// WithTimeout bounds every Generate call. A call that runs past the deadline
// returns a quizErrors.TimeoutError even if the backend ignores its context.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	return &timeoutProvider{next: p, timeout: timeout}
}

func (t *timeoutProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	resChan := make(chan result, 1)
	go func() {
		text, err := t.next.Generate(callCtx, messages)
		resChan <- result{text, err}
	}()

	select {
	case r := <-resChan:
		if r.err != nil && callCtx.Err() != nil {
			return "", t.expired(ctx, r.err)
		}
		return r.text, r.err
	case <-callCtx.Done():
		return "", t.expired(ctx, callCtx.Err())
	}
}

func (t *timeoutProvider) expired(parent context.Context, cause error) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return &quizErrors.GenerationError{Err: parent.Err()}
	}
	return &quizErrors.TimeoutError{After: t.timeout, Err: cause}
}
