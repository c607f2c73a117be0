package chromemDB

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/akolanti/quizcrafter/internal/adapter/utils"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag/embedding"
	"github.com/akolanti/quizcrafter/internal/rag/vectorDB"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"github.com/philippgille/chromem-go"
)

// indexer keeps every index in process memory. Each build gets its own
// chromem DB so two requests can never see each other's chunks.
type indexer struct {
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

type index struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	chunks     map[string]commonModels.DocChunk
	embedder   embedding.Embedder
	logger     *logger_i.Logger
}

func NewIndexer(e embedding.Embedder) vectorDB.Indexer {
	return &indexer{embedder: e, logger: logger_i.NewLogger("chromem_index")}
}

func (ix *indexer) BuildIndex(ctx context.Context, chunks []commonModels.DocChunk) (vectorDB.Index, error) {
	log := ix.logger.FromContext(ctx)

	idx := &index{
		db:       chromem.NewDB(),
		name:     "quiz-" + utils.GetNewUUID(),
		chunks:   make(map[string]commonModels.DocChunk, len(chunks)),
		embedder: ix.embedder,
		logger:   log,
	}
	col, err := idx.db.CreateCollection(idx.name, nil, idx.embedQuery)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	idx.collection = col
	if len(chunks) == 0 {
		return idx, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := ix.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return nil, &quizErrors.EmbeddingServiceError{Err: err}
	}
	if len(vectors) != len(chunks) {
		return nil, &quizErrors.EmbeddingServiceError{Err: fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks))}
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = chromem.Document{
			ID:        c.ChunkId,
			Metadata:  map[string]string{"chunk_order": strconv.Itoa(c.Order)},
			Embedding: vectors[i],
			Content:   c.Content,
		}
		idx.chunks[c.ChunkId] = c
	}
	if err := col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("add documents: %w", err)
	}

	log.Debug("index built", "collection", idx.name, "chunks", len(chunks))
	return idx, nil
}

func (idx *index) embedQuery(ctx context.Context, text string) ([]float32, error) {
	return idx.embedder.GetEmbedding(ctx, text)
}

func (idx *index) Len() int {
	return len(idx.chunks)
}

func (idx *index) Search(ctx context.Context, query string, k int) ([]commonModels.DocChunk, error) {
	if err := vectorDB.ValidateK(k); err != nil {
		return nil, err
	}
	if len(idx.chunks) == 0 {
		return nil, nil
	}

	queryVector, err := idx.embedQuery(ctx, query)
	if err != nil {
		return nil, &quizErrors.EmbeddingServiceError{Err: err}
	}

	// every document is scored so that ties can be broken by chunk order
	results, err := idx.collection.QueryEmbedding(ctx, queryVector, idx.collection.Count(), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	matches := make([]vectorDB.Match, 0, len(results))
	for _, r := range results {
		chunk, ok := idx.chunks[r.ID]
		if !ok {
			continue
		}
		matches = append(matches, vectorDB.Match{Chunk: chunk, Score: r.Similarity})
	}
	return vectorDB.RankMatches(matches, k), nil
}

func (idx *index) Close(ctx context.Context) error {
	idx.chunks = nil
	return idx.db.DeleteCollection(idx.name)
}
