package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag/llm"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

type llmClient struct {
	model    llms.Model
	name     string
	sampling llm.Sampling
	logger   *logger_i.Logger
}

func NewOllamaProvider(baseURL string, modelName string, sampling llm.Sampling, httpClient *http.Client) (llm.Provider, error) {
	opts := []ollama.Option{
		ollama.WithServerURL(baseURL),
		ollama.WithModel(modelName),
	}
	if httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(httpClient))
	}
	c, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}
	logger := logger_i.NewLogger("llm_ollama")
	logger.Info("Ollama client created", "model", modelName, "url", baseURL)
	return newWithModel(c, modelName, sampling), nil
}

func newWithModel(model llms.Model, modelName string, sampling llm.Sampling) *llmClient {
	return &llmClient{
		model:    model,
		name:     modelName,
		sampling: sampling,
		logger:   logger_i.NewLogger("llm_ollama"),
	}
}

func (c *llmClient) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	log := c.logger.FromContext(ctx)

	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == llm.RoleSystem {
			role = llms.ChatMessageTypeSystem
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	resp, err := c.model.GenerateContent(ctx, content,
		llms.WithTemperature(c.sampling.Temperature),
		llms.WithTopK(c.sampling.TopK),
		llms.WithTopP(c.sampling.TopP),
		llms.WithSeed(c.sampling.Seed),
	)
	if err != nil {
		log.Error("Ollama generation failed", "model", c.name, "error", err)
		return "", &quizErrors.GenerationError{Provider: config.ProviderOllama, Err: err}
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", &quizErrors.GenerationError{Provider: config.ProviderOllama, Err: errors.New("empty response")}
	}
	log.Debug("Ollama generation finished", "characters", len(resp.Choices[0].Content))
	return resp.Choices[0].Content, nil
}
