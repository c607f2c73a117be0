package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/data/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Snapshot.Path = filepath.Join(t.TempDir(), "questions.json")
	return cfg
}

func TestNewQuizService_Defaults(t *testing.T) {
	// constructing the ollama clients does not contact the server
	s, err := NewQuizService(context.Background(), testConfig(t))
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNewProvider_OpenAI(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backend.Provider = config.ProviderOpenAI
	cfg.Backend.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewProvider_Unknown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backend.Provider = "bard"
	_, err := NewProvider(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewSnapshotStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	assert.IsType(t, &store.FileSnapshotStore{}, NewSnapshotStore(ctx, cfg))

	cfg.Snapshot.Backend = config.SnapshotBackendNone
	assert.IsType(t, store.NoopSnapshotStore{}, NewSnapshotStore(ctx, cfg))

	mr := miniredis.RunT(t)
	cfg.Snapshot.Backend = config.SnapshotBackendRedis
	cfg.Redis.Addr = mr.Addr()
	assert.IsType(t, &store.RedisSnapshotStore{}, NewSnapshotStore(ctx, cfg))
}

func TestNewJobStore_FallsBackToMemory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(t)
	cfg.Redis.Addr = "127.0.0.1:1"

	s, err := NewJobStore(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.InMemoryJobStore{}, s)
}
