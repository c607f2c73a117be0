package qdrantDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/quizcrafter/internal/adapter/utils"
	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/internal/rag/embedding"
	"github.com/akolanti/quizcrafter/internal/rag/vectorDB"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

// ClientHolder builds one throwaway Qdrant collection per request.
type ClientHolder struct {
	QObj     *qdrant.Client
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

type index struct {
	client     *qdrant.Client
	collection string
	count      int
	embedder   embedding.Embedder
	logger     *logger_i.Logger
}

func NewClient(ctx context.Context, host string, port int) (*qdrant.Client, error) {
	logger := logger_i.NewLogger("Qdrant")
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil, err
	}
	go closeQdrant(ctx, client, logger)
	return client, nil
}

func closeQdrant(ctx context.Context, qi *qdrant.Client, logger *logger_i.Logger) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
}

func NewIndexer(client *qdrant.Client, e embedding.Embedder) *ClientHolder {
	return &ClientHolder{QObj: client, embedder: e, logger: logger_i.NewLogger("Qdrant")}
}

func (db *ClientHolder) BuildIndex(ctx context.Context, chunks []commonModels.DocChunk) (vectorDB.Index, error) {
	log := db.logger.FromContext(ctx)
	idx := &index{
		client:     db.QObj,
		collection: config.QdrantCollectionPrefix + utils.GetNewUUID(),
		count:      len(chunks),
		embedder:   db.embedder,
		logger:     log,
	}
	if len(chunks) == 0 {
		return idx, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := db.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return nil, &quizErrors.EmbeddingServiceError{Err: err}
	}
	if len(vectors) != len(chunks) || len(vectors[0]) == 0 {
		return nil, &quizErrors.EmbeddingServiceError{Err: fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks))}
	}

	// the vector size comes from the model, not from configuration
	if err := createCollection(ctx, db.QObj, idx.collection, uint64(len(vectors[0]))); err != nil {
		log.Error("could not create collection: ", "collectionName", idx.collection, "error:", err)
		return nil, err
	}
	if err := idx.upsertBatch(ctx, chunks, vectors); err != nil {
		_ = idx.Close(ctx)
		return nil, err
	}
	log.Debug("index built", "collection", idx.collection, "chunks", len(chunks))
	return idx, nil
}

func (idx *index) Len() int {
	return idx.count
}

func (idx *index) Search(ctx context.Context, query string, k int) ([]commonModels.DocChunk, error) {
	if err := vectorDB.ValidateK(k); err != nil {
		return nil, err
	}
	if idx.count == 0 {
		return nil, nil
	}
	queryVector, err := idx.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, &quizErrors.EmbeddingServiceError{Err: err}
	}

	result, err := idx.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: idx.collection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(idx.count)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		idx.logger.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	return vectorDB.RankMatches(toMatches(result), k), nil
}

func toMatches(hits []*qdrant.ScoredPoint) []vectorDB.Match {
	matches := make([]vectorDB.Match, 0, len(hits))
	for _, hit := range hits {
		matches = append(matches, vectorDB.Match{
			Score: hit.GetScore(),
			Chunk: chunkFromPayload(hit.GetPayload()),
		})
	}
	return matches
}

func chunkPayload(chunk commonModels.DocChunk) map[string]*qdrant.Value {
	return qdrant.NewValueMap(map[string]any{
		"content":     chunk.Content,
		"chunk_order": int64(chunk.Order),
		"start":       int64(chunk.Start),
		"chunk_id":    chunk.ChunkId,
	})
}

// chunkFromPayload tolerates missing keys, they decode to zero values.
func chunkFromPayload(payload map[string]*qdrant.Value) commonModels.DocChunk {
	return commonModels.DocChunk{
		ChunkId: payload["chunk_id"].GetStringValue(),
		Order:   int(payload["chunk_order"].GetIntegerValue()),
		Start:   int(payload["start"].GetIntegerValue()),
		Content: payload["content"].GetStringValue(),
	}
}

func (idx *index) Close(ctx context.Context) error {
	if idx.count == 0 {
		return nil
	}
	return idx.client.DeleteCollection(ctx, idx.collection)
}

func (idx *index) upsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: chunkPayload(chunk),
		}
	}

	_, err := idx.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: idx.collection,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string, dimension uint64) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}
	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}
