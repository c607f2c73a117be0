package rag

import (
	"context"
	"errors"
	"strings"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag/ingest"
	"github.com/akolanti/quizcrafter/internal/rag/llm"
	"github.com/akolanti/quizcrafter/internal/rag/vectorDB"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - This is the PUBLIC contract used by handlers, the worker, the CLI and the
    MCP tool.
  - It hides which index backend and which model provider are in use.

2. service (Private Struct):
  - Holds the chunker, the indexer and the provider.
  - Lowercase so callers cannot reach into the backends directly.

3. Dependency Injection (NewService):
  - Backends are built once at startup (see internal/bootstrap) and passed in.
  - Tests pass mocks instead.

The service does no disk I/O: the caller hands in an extracted Document.
*/

// Service turns one document and a topic into a parsed question set.
type Service interface {
	GenerateQuiz(ctx context.Context, req commonModels.QuizRequest) (*commonModels.QuizResult, error)
}

type service struct {
	chunker     *ingest.Chunker
	indexer     vectorDB.Indexer
	llmProvider llm.Provider
	retrievalK  int
	logger      *logger_i.Logger
}

// NewService constructor. The provider is expected to be wrapped with
// llm.WithTimeout already.
func NewService(chunker *ingest.Chunker, indexer vectorDB.Indexer, provider llm.Provider, retrievalK int) (Service, error) {
	if chunker == nil || indexer == nil || provider == nil {
		return nil, errors.New("rag service needs a chunker, an indexer and a provider")
	}
	if err := vectorDB.ValidateK(retrievalK); err != nil {
		return nil, err
	}
	return &service{
		chunker:     chunker,
		indexer:     indexer,
		llmProvider: provider,
		retrievalK:  retrievalK,
		logger:      logger_i.NewLogger("rag_service"),
	}, nil
}

func (s *service) GenerateQuiz(ctx context.Context, req commonModels.QuizRequest) (*commonModels.QuizResult, error) {
	log := s.logger.FromContext(ctx).With("document", req.Document.Name, "topic", req.Topic)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Chunking
	chunks := s.executeChunkStep(log, req.Document)
	if len(chunks) == 0 {
		return nil, &quizErrors.DocumentError{Path: req.Document.Path, Err: errors.New("document has no text")}
	}

	// Indexing
	index, err := s.executeIndexStep(ctx, log, chunks)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := index.Close(context.WithoutCancel(ctx)); err != nil {
			log.Warn("Failed to release index", "error", err)
		}
	}()

	// Retrieval
	matches, err := s.executeRetrievalStep(ctx, log, index, req.Topic)
	if err != nil {
		return nil, err
	}

	// LLM Generation
	raw, err := s.executeGenerationStep(ctx, log, joinContext(matches), req.NumQuestions)
	if err != nil {
		return nil, err
	}

	// Parsing
	questions, diagnostics, err := s.executeParseStep(ctx, log, raw, req.NumQuestions)
	if err != nil {
		return nil, err
	}

	result := &commonModels.QuizResult{
		Questions:   questions,
		Sources:     sources(matches),
		Diagnostics: diagnostics,
	}
	log.Info("Quiz generated", "questions", len(questions), "diagnostics", len(diagnostics))
	return result, nil
}

func validateRequest(req commonModels.QuizRequest) error {
	if strings.TrimSpace(req.Topic) == "" {
		return quizErrors.NewInputError("topic", "must not be empty")
	}
	if req.NumQuestions <= 0 {
		return quizErrors.NewInputError("numQuestions", "must be positive, got %d", req.NumQuestions)
	}
	return nil
}
