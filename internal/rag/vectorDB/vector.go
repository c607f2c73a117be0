package vectorDB

import (
	"context"
	"sort"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
)

// Indexer embeds the chunks of one document and builds a searchable Index.
// Indexes are request scoped, nothing is shared between two builds.
type Indexer interface {
	BuildIndex(ctx context.Context, chunks []commonModels.DocChunk) (Index, error)
}

type Index interface {
	// Search returns up to k chunks ordered by descending similarity to query.
	Search(ctx context.Context, query string, k int) ([]commonModels.DocChunk, error)
	Len() int
	Close(ctx context.Context) error
}

type Match struct {
	Chunk commonModels.DocChunk
	Score float32
}

// RankMatches orders by score, ties broken by chunk order, and keeps k.
func RankMatches(matches []Match, k int) []commonModels.DocChunk {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Chunk.Order < matches[j].Chunk.Order
	})
	if k > len(matches) {
		k = len(matches)
	}
	out := make([]commonModels.DocChunk, 0, k)
	for _, m := range matches[:k] {
		out = append(out, m.Chunk)
	}
	return out
}

func ValidateK(k int) error {
	if k <= 0 {
		return quizErrors.NewConfigError("retrieval_k", "must be positive, got %d", k)
	}
	return nil
}
