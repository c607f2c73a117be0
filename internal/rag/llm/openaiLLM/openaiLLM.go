package openaiLLM

import (
	"context"
	"errors"
	"net/http"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag/llm"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// llmClient works against any OpenAI compatible chat completions endpoint,
// including the one Ollama serves under /v1.
type llmClient struct {
	client   openai.Client
	model    string
	sampling llm.Sampling
	logger   *logger_i.Logger
}

func NewOpenAIProvider(baseURL string, apiKey string, model string, sampling llm.Sampling, httpClient *http.Client) llm.Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	logger := logger_i.NewLogger("llm_openai")
	logger.Info("OpenAI client created", "model", model, "url", baseURL)
	return &llmClient{
		client:   openai.NewClient(opts...),
		model:    model,
		sampling: sampling,
		logger:   logger,
	}
}

func (c *llmClient) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	log := c.logger.FromContext(ctx)

	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(c.sampling.Temperature),
		TopP:        openai.Float(c.sampling.TopP),
		Seed:        openai.Int(int64(c.sampling.Seed)),
	}
	for _, m := range messages {
		if m.Role == llm.RoleSystem {
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		} else {
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Error("OpenAI generation failed", "error", err)
		return "", &quizErrors.GenerationError{Provider: config.ProviderOpenAI, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &quizErrors.GenerationError{Provider: config.ProviderOpenAI, Err: errors.New("empty response")}
	}
	return resp.Choices[0].Message.Content, nil
}
