package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	OnGenerate func(ctx context.Context, messages []Message) (string, error)
}

func (s *stubProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	return s.OnGenerate(ctx, messages)
}

func TestWithTimeout_PassesThrough(t *testing.T) {
	p := WithTimeout(&stubProvider{OnGenerate: func(ctx context.Context, m []Message) (string, error) {
		return "[]", nil
	}}, time.Second)

	text, err := p.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "[]", text)
}

func TestWithTimeout_BackendErrorIsKept(t *testing.T) {
	backendErr := &quizErrors.GenerationError{Provider: "stub", Err: errors.New("connection refused")}
	p := WithTimeout(&stubProvider{OnGenerate: func(ctx context.Context, m []Message) (string, error) {
		return "", backendErr
	}}, time.Second)

	_, err := p.Generate(context.Background(), nil)
	assert.Same(t, backendErr, err)
}

func TestWithTimeout_ContextAwareBackend(t *testing.T) {
	p := WithTimeout(&stubProvider{OnGenerate: func(ctx context.Context, m []Message) (string, error) {
		<-ctx.Done()
		return "", &quizErrors.GenerationError{Err: ctx.Err()}
	}}, 20*time.Millisecond)

	_, err := p.Generate(context.Background(), nil)
	var timeoutErr *quizErrors.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 20*time.Millisecond, timeoutErr.After)
}

func TestWithTimeout_BackendIgnoringContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	p := WithTimeout(&stubProvider{OnGenerate: func(ctx context.Context, m []Message) (string, error) {
		<-release
		return "late", nil
	}}, 20*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), nil)
	var timeoutErr *quizErrors.TimeoutError
	assert.ErrorAs(t, err, &timeoutErr)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWithTimeout_CallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := WithTimeout(&stubProvider{OnGenerate: func(ctx context.Context, m []Message) (string, error) {
		cancel()
		<-ctx.Done()
		return "", ctx.Err()
	}}, time.Second)

	_, err := p.Generate(ctx, nil)
	var genErr *quizErrors.GenerationError
	assert.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, context.Canceled)
}
