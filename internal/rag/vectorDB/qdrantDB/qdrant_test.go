package qdrantDB

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder never reaches a network. The tests below also pass a nil
// qdrant client, so any path that would touch the server panics.
type stubEmbedder struct {
	OnBatch func(ctx context.Context, chunks []string) ([][]float32, error)
	calls   int
}

func (s *stubEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	s.calls++
	return []float32{1, 0}, nil
}

func (s *stubEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	s.calls++
	return s.OnBatch(ctx, chunks)
}

func TestChunkFromPayload(t *testing.T) {
	chunk := commonModels.DocChunk{ChunkId: "5f1d7c2e-0000-4000-8000-000000000001", Order: 3, Start: 2100, Content: "Chlorophyll absorbs light."}

	tests := []struct {
		name    string
		payload map[string]*qdrant.Value
		want    commonModels.DocChunk
	}{
		{"stored chunk", chunkPayload(chunk), chunk},
		{"missing keys", map[string]*qdrant.Value{"content": qdrant.NewValueString("only text")}, commonModels.DocChunk{Content: "only text"}},
		{"nil payload", nil, commonModels.DocChunk{}},
		{"wrong value kinds", map[string]*qdrant.Value{
			"chunk_order": qdrant.NewValueString("3"),
			"content":     qdrant.NewValueInt(7),
		}, commonModels.DocChunk{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunkFromPayload(tt.payload))
		})
	}
}

func TestToMatches_KeepsScoresAndChunks(t *testing.T) {
	first := commonModels.DocChunk{ChunkId: "a", Order: 0, Content: "first"}
	second := commonModels.DocChunk{ChunkId: "b", Order: 1, Content: "second"}

	matches := toMatches([]*qdrant.ScoredPoint{
		{Score: 0.4, Payload: chunkPayload(second)},
		{Score: 0.9, Payload: chunkPayload(first)},
	})

	require.Len(t, matches, 2)
	assert.Equal(t, float32(0.4), matches[0].Score)
	assert.Equal(t, second, matches[0].Chunk)
	assert.Equal(t, first, matches[1].Chunk)
}

func TestEmptyIndex_NeverTouchesServer(t *testing.T) {
	emb := &stubEmbedder{}
	idx, err := NewIndexer(nil, emb).BuildIndex(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, idx.Len())
	got, err := idx.Search(context.Background(), "light", 2)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, idx.Close(context.Background()))
	assert.Zero(t, emb.calls, "an empty index embeds nothing")
}

func TestSearch_RejectsBadK(t *testing.T) {
	idx, err := NewIndexer(nil, &stubEmbedder{}).BuildIndex(context.Background(), nil)
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), "light", 0)
	assert.Error(t, err)
}

func TestBuildIndex_EmbeddingFailures(t *testing.T) {
	chunks := []commonModels.DocChunk{{ChunkId: "a", Content: "one"}, {ChunkId: "b", Order: 1, Content: "two"}}

	tests := []struct {
		name    string
		onBatch func(ctx context.Context, chunks []string) ([][]float32, error)
	}{
		{"backend error", func(ctx context.Context, chunks []string) ([][]float32, error) {
			return nil, errors.New("connection refused")
		}},
		{"vector count mismatch", func(ctx context.Context, chunks []string) ([][]float32, error) {
			return [][]float32{{1, 0}}, nil
		}},
		{"empty vectors", func(ctx context.Context, chunks []string) ([][]float32, error) {
			return [][]float32{{}, {}}, nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the nil client proves no collection is created before embedding succeeds
			_, err := NewIndexer(nil, &stubEmbedder{OnBatch: tt.onBatch}).BuildIndex(context.Background(), chunks)

			var embErr *quizErrors.EmbeddingServiceError
			assert.ErrorAs(t, err, &embErr)
		})
	}
}

func TestBuildIndex_UniqueCollections(t *testing.T) {
	holder := NewIndexer(nil, &stubEmbedder{})
	a, err := holder.BuildIndex(context.Background(), nil)
	require.NoError(t, err)
	b, err := holder.BuildIndex(context.Background(), nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.(*index).collection, b.(*index).collection)
	assert.Contains(t, a.(*index).collection, "quiz-")
}
