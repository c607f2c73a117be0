package vectorDB

import (
	"testing"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/stretchr/testify/assert"
)

func TestRankMatches(t *testing.T) {
	chunk := func(order int) commonModels.DocChunk {
		return commonModels.DocChunk{Order: order}
	}
	matches := []Match{
		{Chunk: chunk(3), Score: 0.5},
		{Chunk: chunk(2), Score: 0.9},
		{Chunk: chunk(0), Score: 0.5},
		{Chunk: chunk(1), Score: 0.9},
		{Chunk: chunk(4), Score: 0.1},
	}

	got := RankMatches(matches, 4)
	orders := make([]int, len(got))
	for i, c := range got {
		orders[i] = c.Order
	}
	assert.Equal(t, []int{1, 2, 0, 3}, orders)

	assert.Len(t, RankMatches(matches, 10), 5)
	assert.Empty(t, RankMatches(nil, 4))
}

func TestValidateK(t *testing.T) {
	assert.Error(t, ValidateK(0))
	assert.Error(t, ValidateK(-1))
	assert.NoError(t, ValidateK(1))
}
