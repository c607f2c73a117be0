// Package bootstrap builds the long lived backends from configuration. The
// HTTP server, the CLI and the MCP server all start here.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/customHttpClient"
	"github.com/akolanti/quizcrafter/internal/data/redisStore"
	"github.com/akolanti/quizcrafter/internal/data/store"
	"github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/akolanti/quizcrafter/internal/rag"
	"github.com/akolanti/quizcrafter/internal/rag/embedding"
	"github.com/akolanti/quizcrafter/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/quizcrafter/internal/rag/embedding/ollamaEmbedding"
	"github.com/akolanti/quizcrafter/internal/rag/ingest"
	"github.com/akolanti/quizcrafter/internal/rag/llm"
	"github.com/akolanti/quizcrafter/internal/rag/llm/gemini"
	"github.com/akolanti/quizcrafter/internal/rag/llm/ollama"
	"github.com/akolanti/quizcrafter/internal/rag/llm/openaiLLM"
	"github.com/akolanti/quizcrafter/internal/rag/vectorDB"
	"github.com/akolanti/quizcrafter/internal/rag/vectorDB/chromemDB"
	"github.com/akolanti/quizcrafter/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

var logger = logger_i.NewLogger("bootstrap")

func NewEmbedder(ctx context.Context, cfg *config.Config) (embedding.Embedder, error) {
	b := cfg.Backend
	switch b.EmbeddingProvider {
	case config.ProviderOllama:
		return ollamaEmbedding.NewOllamaEmbedder(b.EmbeddingBaseURL, b.EmbeddingModel, customHttpClient.Client())
	case config.ProviderGemini:
		return googleEmbedding.NewGoogleEmbedder(ctx, b.EmbeddingModel, b.APIKey, b.EmbeddingDim)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", b.EmbeddingProvider)
	}
}

// NewProvider returns the configured generation backend behind the timeout guard.
func NewProvider(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	b := cfg.Backend
	sampling := llm.Sampling{
		Temperature: cfg.Sampling.Temperature,
		TopK:        cfg.Sampling.TopK,
		TopP:        cfg.Sampling.TopP,
		Seed:        cfg.Sampling.Seed,
	}

	var (
		provider llm.Provider
		err      error
	)
	switch b.Provider {
	case config.ProviderOllama:
		provider, err = ollama.NewOllamaProvider(b.BaseURL, b.ChatModel, sampling, customHttpClient.Client())
	case config.ProviderGemini:
		provider, err = gemini.NewGeminiProvider(ctx, b.APIKey, b.ChatModel, sampling)
	case config.ProviderOpenAI:
		provider = openaiLLM.NewOpenAIProvider(b.BaseURL, b.APIKey, b.ChatModel, sampling, customHttpClient.Client())
	default:
		err = fmt.Errorf("unknown provider %q", b.Provider)
	}
	if err != nil {
		return nil, err
	}
	return llm.WithTimeout(provider, cfg.Pipeline.GenerationTimeout), nil
}

func NewIndexer(ctx context.Context, cfg *config.Config, e embedding.Embedder) (vectorDB.Indexer, error) {
	switch cfg.Index.Backend {
	case config.IndexBackendMemory:
		return chromemDB.NewIndexer(e), nil
	case config.IndexBackendQdrant:
		client, err := qdrantDB.NewClient(ctx, cfg.Index.QdrantHost, cfg.Index.QdrantPort)
		if err != nil {
			return nil, err
		}
		return qdrantDB.NewIndexer(client, e), nil
	default:
		return nil, fmt.Errorf("unknown index backend %q", cfg.Index.Backend)
	}
}

// NewQuizService wires chunker, index and provider into the pipeline.
func NewQuizService(ctx context.Context, cfg *config.Config) (rag.Service, error) {
	chunker, err := ingest.NewChunker(cfg.Pipeline.ChunkSize, cfg.Pipeline.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	embedder, err := NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	indexer, err := NewIndexer(ctx, cfg, embedder)
	if err != nil {
		return nil, fmt.Errorf("indexer: %w", err)
	}
	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("provider: %w", err)
	}

	logger.Info("Quiz pipeline ready",
		"provider", cfg.Backend.Provider, "model", cfg.Backend.ChatModel,
		"embedding", cfg.Backend.EmbeddingProvider, "index", cfg.Index.Backend)
	return rag.NewService(chunker, indexer, provider, cfg.Pipeline.RetrievalK)
}

func redisOptions(cfg *config.Config) redisStore.Options {
	return redisStore.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password}
}

// NewJobStore prefers Redis and falls back to memory when it is offline.
func NewJobStore(ctx context.Context, cfg *config.Config) (jobModel.JobStore, error) {
	if s := store.GetRedisJobStore(ctx, redisOptions(cfg)); s != nil {
		return s, nil
	}
	if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
		return nil, fmt.Errorf("redis job store offline at %s", cfg.Redis.Addr)
	}
	logger.Warn("Redis job store offline, using in-memory store")
	return store.InitInMemoryJobStore(), nil
}

// NewSnapshotStore returns the configured sink. A redis sink that cannot
// connect degrades to the file sink.
func NewSnapshotStore(ctx context.Context, cfg *config.Config) jobModel.SnapshotStore {
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendNone:
		return store.NoopSnapshotStore{}
	case config.SnapshotBackendRedis:
		if s := store.GetRedisSnapshotStore(ctx, redisOptions(cfg)); s != nil {
			return s
		}
		logger.Warn("Redis snapshot store offline, writing snapshots to file", "path", cfg.Snapshot.Path)
	}
	return store.NewFileSnapshotStore(cfg.Snapshot.Path)
}
