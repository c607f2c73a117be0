package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag/llm"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	sampling  llm.Sampling
	logger    *logger_i.Logger
}

func NewGeminiProvider(ctx context.Context, apikey string, modelName string, sampling llm.Sampling) (llm.Provider, error) {
	logger := logger_i.NewLogger("llm_gemini")
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return nil, err
	}
	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName, sampling: sampling, logger: logger}, nil
}

// buildRequest splits system messages into the system instruction, Gemini has
// no system role inside the content list.
func buildRequest(messages []llm.Message, sampling llm.Sampling) ([]*genai.Content, *genai.GenerateContentConfig) {
	var system []string
	var contents []*genai.Content
	for _, m := range messages {
		if m.Role == llm.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}

	contentConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(sampling.Temperature)),
		TopP:        genai.Ptr(float32(sampling.TopP)),
		TopK:        genai.Ptr(float32(sampling.TopK)),
		Seed:        genai.Ptr(int32(sampling.Seed)),
	}
	if len(system) > 0 {
		contentConfig.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n"), genai.RoleUser)
	}
	return contents, contentConfig
}

func (c *llmClient) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	log := c.logger.FromContext(ctx)
	contents, contentConfig := buildRequest(messages, c.sampling)

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, contentConfig)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", &quizErrors.GenerationError{Provider: config.ProviderGemini, Err: err}
	}
	text := result.Text()
	if text == "" {
		return "", &quizErrors.GenerationError{Provider: config.ProviderGemini, Err: errors.New("empty response")}
	}
	return text, nil
}
