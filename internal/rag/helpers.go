package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/metrics"
	"github.com/akolanti/quizcrafter/internal/rag/parser"
	"github.com/akolanti/quizcrafter/internal/rag/prompt"
	"github.com/akolanti/quizcrafter/internal/rag/vectorDB"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

// retrieved chunks are joined with a single newline
// chunks are concatenated as retrieved, overlap included
const contextSeparator = ""

func logStep(step string, log *logger_i.Logger) {
	log.Debug("GenerateQuiz", "Current Step", step)
}

func joinContext(chunks []commonModels.DocChunk) string {
	return strings.Join(sources(chunks), contextSeparator)
}

func sources(chunks []commonModels.DocChunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Content
	}
	return out
}

func (s *service) executeChunkStep(log *logger_i.Logger, doc commonModels.Document) []commonModels.DocChunk {
	logStep("chunking", log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunking", time.Since(start)) }()

	return s.chunker.Split(doc.Text)
}

func (s *service) executeIndexStep(ctx context.Context, log *logger_i.Logger, chunks []commonModels.DocChunk) (vectorDB.Index, error) {
	logStep("indexing", log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("indexing", time.Since(start)) }()

	index, err := s.indexer.BuildIndex(ctx, chunks)
	if err != nil {
		log.Error("Index build failed", "error", err, "chunks", len(chunks))
		return nil, err
	}
	return index, nil
}

func (s *service) executeRetrievalStep(ctx context.Context, log *logger_i.Logger, index vectorDB.Index, topic string) ([]commonModels.DocChunk, error) {
	logStep("retrieval", log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieval", time.Since(start)) }()

	matches, err := index.Search(ctx, topic, s.retrievalK)
	if err != nil {
		log.Error("Retrieval failed", "error", err)
		return nil, err
	}
	log.Debug("Retrieved context", "matches", len(matches), "indexed", index.Len())
	return matches, nil
}

func (s *service) executeGenerationStep(ctx context.Context, log *logger_i.Logger, retrieved string, n int) (string, error) {
	logStep("generation", log)

	messages, err := prompt.BuildMessages(retrieved, n)
	if err != nil {
		return "", err
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	raw, err := s.llmProvider.Generate(ctx, messages)
	if err != nil {
		log.Error("Generation failed", "error", err)
		return "", err
	}
	return raw, nil
}

// executeParseStep parses every question the model returned, then keeps n.
// Dropped extras are reported as a diagnostic rather than silently lost.
func (s *service) executeParseStep(ctx context.Context, log *logger_i.Logger, raw string, n int) ([]commonModels.Question, []commonModels.Diagnostic, error) {
	logStep("parsing", log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("parsing", time.Since(start)) }()

	questions, err := parser.Parse(ctx, raw, 0)
	if err != nil {
		metrics.IncrementParseFailures()
		return nil, nil, err
	}

	var diagnostics []commonModels.Diagnostic
	if len(questions) > n {
		diagnostics = append(diagnostics, commonModels.Diagnostic{
			QuestionIndex: n,
			Code:          commonModels.DiagTruncatedResponse,
			Message:       fmt.Sprintf("model returned %d questions, kept %d", len(questions), n),
		})
		questions = questions[:n]
	}
	if len(questions) < n {
		log.Warn("Model returned fewer questions than requested", "requested", n, "received", len(questions))
	}

	diagnostics = append(diagnostics, parser.CheckInvariants(ctx, questions)...)
	for _, d := range diagnostics {
		metrics.IncrementDiagnostic(d.Code)
	}
	return questions, diagnostics, nil
}
