package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/data/redisStore"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

var ErrNoSnapshot = errors.New("no snapshot saved")

// FileSnapshotStore overwrites one JSON file with the last question set.
type FileSnapshotStore struct {
	path   string
	logger *logger_i.Logger
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path, logger: logger_i.NewLogger("snapshot_file")}
}

func (s *FileSnapshotStore) SaveSnapshot(ctx context.Context, questions []commonModels.Question) error {
	data, err := json.MarshalIndent(questions, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	s.logger.FromContext(ctx).Debug("Snapshot written", "path", s.path, "questions", len(questions))
	return nil
}

func (s *FileSnapshotStore) LoadSnapshot(ctx context.Context) ([]commonModels.Question, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	var questions []commonModels.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return questions, nil
}

// RedisSnapshotStore overwrites one key with the last question set.
type RedisSnapshotStore struct {
	store  *redisStore.Store
	key    string
	logger *logger_i.Logger
}

// GetRedisSnapshotStore returns nil when Redis is offline.
func GetRedisSnapshotStore(ctx context.Context, opts redisStore.Options) *RedisSnapshotStore {
	s := redisStore.GetRedisStore(ctx, opts, config.RedisSnapshotStore)
	if s == nil {
		return nil
	}
	return NewRedisSnapshotStore(s, config.SnapshotRedisKey)
}

func NewRedisSnapshotStore(s *redisStore.Store, key string) *RedisSnapshotStore {
	return &RedisSnapshotStore{store: s, key: key, logger: logger_i.NewLogger("snapshot_redis")}
}

func (s *RedisSnapshotStore) SaveSnapshot(ctx context.Context, questions []commonModels.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.key, data, 0); err != nil {
		return err
	}
	s.logger.FromContext(ctx).Debug("Snapshot written", "key", s.key, "questions", len(questions))
	return nil
}

func (s *RedisSnapshotStore) LoadSnapshot(ctx context.Context) ([]commonModels.Question, error) {
	val, err := s.store.Get(ctx, s.key)
	if s.store.IsNil(err) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	var questions []commonModels.Question
	if err := json.Unmarshal([]byte(val), &questions); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return questions, nil
}

// NoopSnapshotStore discards snapshots.
type NoopSnapshotStore struct{}

func (NoopSnapshotStore) SaveSnapshot(ctx context.Context, questions []commonModels.Question) error {
	return nil
}

func (NoopSnapshotStore) LoadSnapshot(ctx context.Context) ([]commonModels.Question, error) {
	return nil, ErrNoSnapshot
}

// SaveSnapshotQuietly logs a failed write instead of returning it. A snapshot
// never fails the request that produced it.
func SaveSnapshotQuietly(ctx context.Context, s jobModel.SnapshotStore, questions []commonModels.Question) {
	if s == nil {
		return
	}
	if err := s.SaveSnapshot(ctx, questions); err != nil {
		logger_i.NewLogger("snapshot").FromContext(ctx).Warn("Failed to save snapshot", "error", err)
	}
}
