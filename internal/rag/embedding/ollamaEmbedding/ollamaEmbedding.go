package ollamaEmbedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/akolanti/quizcrafter/internal/rag/embedding"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

type client struct {
	embedder *embeddings.EmbedderImpl
	model    string
	logger   *logger_i.Logger
}

// NewOllamaEmbedder talks to an Ollama server through langchaingo.
func NewOllamaEmbedder(baseURL string, model string, httpClient *http.Client) (embedding.Embedder, error) {
	opts := []ollama.Option{
		ollama.WithServerURL(baseURL),
		ollama.WithModel(model),
	}
	if httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(httpClient))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}
	e, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("ollama embedder: %w", err)
	}

	logger := logger_i.NewLogger("ollama_embedding")
	logger.Info("Ollama embedding client created", "model", model, "url", baseURL)
	return &client{embedder: e, model: model, logger: logger}, nil
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := c.logger.FromContext(ctx)
	log.Debug("embedding query", "characters", len(query))

	vector, err := c.embedder.EmbedQuery(ctx, query)
	if err != nil {
		log.Error("Error getting query embedding from Ollama", "error", err)
		return nil, err
	}
	return vector, nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := c.logger.FromContext(ctx)
	log.Debug("embedding batch", "chunks", len(chunks))

	vectors, err := c.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		log.Error("Error getting batch embeddings from Ollama", "error", err)
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("ollama returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	return vectors, nil
}
