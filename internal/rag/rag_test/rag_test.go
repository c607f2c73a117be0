package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag"
	"github.com/akolanti/quizcrafter/internal/rag/ingest"
	"github.com/akolanti/quizcrafter/internal/rag/llm"
	"github.com/akolanti/quizcrafter/internal/rag/vectorDB"
)

const biology = "Mitochondria produce ATP for the cell. Chloroplasts hold chlorophyll. " +
	"The Golgi body packages proteins while lysosomes break down waste."

func newService(t *testing.T, ix vectorDB.Indexer, provider llm.Provider) rag.Service {
	t.Helper()
	chunker, err := ingest.NewChunker(40, 5)
	if err != nil {
		t.Fatalf("chunker: %v", err)
	}
	s, err := rag.NewService(chunker, ix, provider, 2)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return s
}

func request(text string, n int) commonModels.QuizRequest {
	return commonModels.QuizRequest{
		Document:     commonModels.Document{Name: "book.pdf", Path: "uploads/book.pdf", Text: text},
		Topic:        "organelles",
		NumQuestions: n,
	}
}

func TestGenerateQuiz_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		req           commonModels.QuizRequest
		setupMocks    func(ix *MockIndexer, l *MockLLM)
		expectedCount int
		expectedDiag  string
		expectedErr   func(err error) bool
	}{
		{
			name:          "Success_Full_Flow",
			req:           request(biology, 3),
			expectedCount: 3,
		},
		{
			name:          "Success_Extra_Questions_Dropped",
			req:           request(biology, 2),
			expectedCount: 2,
			expectedDiag:  commonModels.DiagTruncatedResponse,
		},
		{
			name:        "Failure_Empty_Topic",
			req:         commonModels.QuizRequest{Document: commonModels.Document{Text: biology}, Topic: " ", NumQuestions: 3},
			expectedErr: isInputError("topic"),
		},
		{
			name:        "Failure_Zero_Questions",
			req:         request(biology, 0),
			expectedErr: isInputError("numQuestions"),
		},
		{
			name: "Failure_Empty_Document",
			req:  request("", 3),
			expectedErr: func(err error) bool {
				var docErr *quizErrors.DocumentError
				return errors.As(err, &docErr)
			},
		},
		{
			name: "Failure_Embedding",
			req:  request(biology, 3),
			setupMocks: func(ix *MockIndexer, l *MockLLM) {
				ix.OnBuildIndex = func(ctx context.Context, chunks []commonModels.DocChunk) (vectorDB.Index, error) {
					return nil, &quizErrors.EmbeddingServiceError{Err: errors.New("connection refused")}
				}
			},
			expectedErr: func(err error) bool {
				var embErr *quizErrors.EmbeddingServiceError
				return errors.As(err, &embErr)
			},
		},
		{
			name: "Failure_LLM_Generation",
			req:  request(biology, 3),
			setupMocks: func(ix *MockIndexer, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, messages []llm.Message) (string, error) {
					return "", &quizErrors.GenerationError{Err: errors.New("provider down")}
				}
			},
			expectedErr: func(err error) bool {
				var genErr *quizErrors.GenerationError
				return errors.As(err, &genErr)
			},
		},
		{
			name: "Failure_Malformed_Output",
			req:  request(biology, 3),
			setupMocks: func(ix *MockIndexer, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, messages []llm.Message) (string, error) {
					return `[{"question":"cut off`, nil
				}
			},
			expectedErr: func(err error) bool {
				return errors.Is(err, quizErrors.ErrNoResult)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mIndex := &MockIndexer{}
			mLLM := &MockLLM{}
			if tt.setupMocks != nil {
				tt.setupMocks(mIndex, mLLM)
			}

			s := newService(t, mIndex, mLLM)
			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

			result, err := s.GenerateQuiz(ctx, tt.req)

			if tt.expectedErr != nil {
				if err == nil || !tt.expectedErr(err) {
					t.Fatalf("unexpected error: %v", err)
				}
				if result != nil {
					t.Errorf("expected no result on error, got %+v", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Questions) != tt.expectedCount {
				t.Errorf("Questions got %d, want %d", len(result.Questions), tt.expectedCount)
			}
			if tt.expectedDiag != "" && !hasDiagnostic(result.Diagnostics, tt.expectedDiag) {
				t.Errorf("expected diagnostic %s, got %+v", tt.expectedDiag, result.Diagnostics)
			}
			if mIndex.Built == nil || !mIndex.Built.Closed {
				t.Error("index should be closed after the request")
			}
		})
	}
}

func TestGenerateQuiz_PromptCarriesRetrievedContext(t *testing.T) {
	mIndex := &MockIndexer{}
	mLLM := &MockLLM{}
	s := newService(t, mIndex, mLLM)

	result, err := s.GenerateQuiz(context.Background(), request(biology, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mLLM.Received) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(mLLM.Received))
	}
	if !strings.Contains(mLLM.Received[0].Content, "Generate **exactly 3 questions**") {
		t.Errorf("system message does not ask for 3 questions")
	}

	// k is 2, so only the first two chunks reach the prompt
	chunks := mIndex.Built.Chunks
	user := mLLM.Received[1].Content
	expected := chunks[0].Content + chunks[1].Content
	if !strings.Contains(user, strings.TrimSpace(expected)) {
		t.Errorf("user message %q does not carry the retrieved context", user)
	}
	if len(chunks) > 2 && strings.Contains(user, chunks[len(chunks)-1].Content) {
		t.Errorf("user message carries a chunk that was not retrieved")
	}
	if len(result.Sources) != 2 {
		t.Errorf("Sources got %d, want 2", len(result.Sources))
	}
}

func TestGenerateQuiz_ClosesIndexOnFailure(t *testing.T) {
	mIndex := &MockIndexer{}
	mLLM := &MockLLM{OnGenerate: func(ctx context.Context, messages []llm.Message) (string, error) {
		return "", &quizErrors.TimeoutError{}
	}}
	s := newService(t, mIndex, mLLM)

	_, err := s.GenerateQuiz(context.Background(), request(biology, 3))
	var timeoutErr *quizErrors.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if !mIndex.Built.Closed {
		t.Error("index should be closed after a failed request")
	}
}

func TestNewService_RejectsBadK(t *testing.T) {
	chunker, _ := ingest.NewChunker(700, 20)
	if _, err := rag.NewService(chunker, &MockIndexer{}, &MockLLM{}, 0); err == nil {
		t.Error("expected an error for k = 0")
	}
	if _, err := rag.NewService(chunker, nil, &MockLLM{}, 4); err == nil {
		t.Error("expected an error for a missing indexer")
	}
}

func isInputError(field string) func(error) bool {
	return func(err error) bool {
		var cfgErr *quizErrors.ConfigError
		return errors.As(err, &cfgErr) && cfgErr.UserInput && cfgErr.Field == field
	}
}

func hasDiagnostic(diags []commonModels.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}
