package googleEmbedding

import (
	"context"
	"fmt"

	"github.com/akolanti/quizcrafter/internal/rag/embedding"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"google.golang.org/genai"
)

const (
	taskDocument = "RETRIEVAL_DOCUMENT"
	taskQuery    = "RETRIEVAL_QUERY"

	//the embed endpoint accepts at most 100 contents per call
	maxBatch = 100
)

type client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	logger    *logger_i.Logger
}

func NewGoogleEmbedder(ctx context.Context, modelName string, apikey string, dimension int32) (embedding.Embedder, error) {
	logger := logger_i.NewLogger("google_embedding")
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
		return nil, err
	}
	logger.Info("Google Embedding client created", "model", modelName)
	return &client{genAi: c, model: modelName, dimension: dimension, logger: logger}, nil
}

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, genai.NewContentFromText(chunk, genai.RoleUser))
	}
	return contentsToSend
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := c.logger.FromContext(ctx)
	result, err := c.doCall(ctx, getContent([]string{query}), taskQuery)
	if err != nil {
		log.Error("Error getting query embedding from Google", "error", err)
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("google returned no embedding")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := c.logger.FromContext(ctx)

	vectors := make([][]float32, 0, len(chunks))
	for i := 0; i < len(chunks); i += maxBatch {
		end := min(i+maxBatch, len(chunks))
		log.Debug("embedding batch", "from", i, "to", end)

		res, err := c.doCall(ctx, getContent(chunks[i:end]), taskDocument)
		if err != nil {
			log.Error("Error getting Embeddings from Google", "error", err)
			return nil, err
		}
		for _, r := range res.Embeddings {
			vectors = append(vectors, r.Values)
		}
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("google returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	return vectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content, task string) (*genai.EmbedContentResponse, error) {
	conf := &genai.EmbedContentConfig{TaskType: task}
	if c.dimension > 0 {
		conf.OutputDimensionality = &c.dimension
	}
	return c.genAi.Models.EmbedContent(ctx, c.model, content, conf)
}
