package rag_test

import (
	"context"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/rag/llm"
	"github.com/akolanti/quizcrafter/internal/rag/vectorDB"
)

// MockIndexer implements vectorDB.Indexer
type MockIndexer struct {
	OnBuildIndex func(ctx context.Context, chunks []commonModels.DocChunk) (vectorDB.Index, error)
	Built        *MockIndex
}

func (m *MockIndexer) BuildIndex(ctx context.Context, chunks []commonModels.DocChunk) (vectorDB.Index, error) {
	if m.OnBuildIndex != nil {
		return m.OnBuildIndex(ctx, chunks)
	}
	m.Built = &MockIndex{Chunks: chunks}
	return m.Built, nil
}

// MockIndex implements vectorDB.Index. By default Search returns the first k chunks.
type MockIndex struct {
	Chunks   []commonModels.DocChunk
	OnSearch func(ctx context.Context, query string, k int) ([]commonModels.DocChunk, error)
	Closed   bool
}

func (m *MockIndex) Search(ctx context.Context, query string, k int) ([]commonModels.DocChunk, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, query, k)
	}
	if k > len(m.Chunks) {
		k = len(m.Chunks)
	}
	return m.Chunks[:k], nil
}

func (m *MockIndex) Len() int {
	return len(m.Chunks)
}

func (m *MockIndex) Close(ctx context.Context) error {
	m.Closed = true
	return nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, messages []llm.Message) (string, error)
	Received   []llm.Message
}

func (m *MockLLM) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	m.Received = messages
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, messages)
	}
	return threeQuestions, nil
}

const threeQuestions = "```json\n[" +
	`{"question":"What do mitochondria produce?","options":["A) ATP","B) DNA","C) Starch","D) Light"],"correct_answer":"A"},` +
	`{"question":"Where is chlorophyll found?","options":["A) Nucleus","B) Chloroplast","C) Ribosome","D) Vacuole"],"correct_answer":"B"},` +
	`{"question":"Which are organelles?","options":["A) Golgi body","B) Glucose","C) Lysosome","D) Water"],"correct_answer":"A, C"}` +
	"]\n```"
