package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/quizcrafter/internal/data/redisStore"
	"github.com/akolanti/quizcrafter/internal/data/store"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var snapshot = []commonModels.Question{
	{Question: "Q1", Options: []string{"A) a", "B) b", "C) c", "D) d"}, CorrectAnswer: "A"},
	{Question: "Q2", Options: []string{"A) a", "B) b", "C) c", "D) d"}, CorrectAnswer: "B, D"},
}

func TestSnapshotStores(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	stores := map[string]jobModel.SnapshotStore{
		"file":  store.NewFileSnapshotStore(filepath.Join(t.TempDir(), "questions.json")),
		"redis": store.NewRedisSnapshotStore(redisStore.NewTestStore(client), "quiz:last-snapshot"),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := s.LoadSnapshot(ctx); !errors.Is(err, store.ErrNoSnapshot) {
				t.Fatalf("expected ErrNoSnapshot before the first save, got %v", err)
			}

			if err := s.SaveSnapshot(ctx, snapshot); err != nil {
				t.Fatalf("SaveSnapshot failed: %v", err)
			}
			if err := s.SaveSnapshot(ctx, snapshot[:1]); err != nil {
				t.Fatalf("SaveSnapshot failed: %v", err)
			}

			got, err := s.LoadSnapshot(ctx)
			if err != nil {
				t.Fatalf("LoadSnapshot failed: %v", err)
			}
			if len(got) != 1 || got[0].Question != "Q1" {
				t.Errorf("second save should overwrite the first, got %+v", got)
			}
		})
	}
}

func TestFileSnapshotStore_IndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	s := store.NewFileSnapshotStore(path)
	if err := s.SaveSnapshot(context.Background(), snapshot); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n    {\n        \"question\": \"Q1\"") {
		t.Errorf("expected indented JSON, got %s", data)
	}
	if !strings.Contains(string(data), `"correct_answer": "B, D"`) {
		t.Errorf("field names changed: %s", data)
	}
}

func TestSaveSnapshotQuietly(t *testing.T) {
	s := store.NewFileSnapshotStore(filepath.Join(t.TempDir(), "missing-dir", "questions.json"))
	// must not panic or surface the error
	store.SaveSnapshotQuietly(context.Background(), s, snapshot)
	store.SaveSnapshotQuietly(context.Background(), nil, snapshot)
}
