package core

import (
	"testing"

	"github.com/fairdev/fds/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEffortShareSumsToOnePerBatch(t *testing.T) {
	cfg := schema.DefaultConfig()
	batch := schema.Batch{
		BatchID: 0,
		Commits: []schema.Commit{
			{Hash: "a", AuthorEmail: "x@x.com", EffectiveChurn: 10, DirsTouched: []string{"core"}, DtPrevAuthorSec: -1},
			{Hash: "b", AuthorEmail: "y@x.com", EffectiveChurn: 30, DirsTouched: []string{"api"}, DtPrevAuthorSec: -1},
		},
	}
	vectors := ScoreEffort([]schema.Batch{batch}, cfg)
	require.Len(t, vectors, 2)
	var total float64
	for _, v := range vectors {
		total += v.Share
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestScoreEffortSkipsSmallBatches(t *testing.T) {
	cfg := schema.DefaultConfig()
	cfg.MinBatchSize = 2
	batch := schema.Batch{
		BatchID: 0,
		Commits: []schema.Commit{
			{Hash: "a", AuthorEmail: "x@x.com", EffectiveChurn: 10, DtPrevAuthorSec: -1},
		},
	}
	vectors := ScoreEffort([]schema.Batch{batch}, cfg)
	assert.Empty(t, vectors)
}

func TestScoreEffortEmptyInput(t *testing.T) {
	cfg := schema.DefaultConfig()
	vectors := ScoreEffort(nil, cfg)
	assert.Empty(t, vectors)
}

func TestScoreEffortZAxesClipRange(t *testing.T) {
	cfg := schema.DefaultConfig()
	var commits []schema.Commit
	for i := 0; i < 20; i++ {
		commits = append(commits, schema.Commit{
			Hash:            string(rune('a' + i)),
			AuthorEmail:     "x@x.com",
			EffectiveChurn:  float64(i * 100),
			DirsTouched:     []string{"core"},
			DtPrevAuthorSec: -1,
		})
	}
	batch := schema.Batch{BatchID: 0, Commits: commits}
	vectors := ScoreEffort([]schema.Batch{batch}, cfg)
	for _, v := range vectors {
		assert.GreaterOrEqual(t, v.ScaleZ, -3.0)
		assert.LessOrEqual(t, v.ScaleZ, 3.0)
	}
}

func TestScoreEffortDominanceFirstLast(t *testing.T) {
	cfg := schema.DefaultConfig()
	batch := schema.Batch{
		BatchID: 0,
		Commits: []schema.Commit{
			{Hash: "a", AuthorEmail: "x@x.com", EffectiveChurn: 10, DtPrevAuthorSec: -1},
			{Hash: "b", AuthorEmail: "y@x.com", EffectiveChurn: 10, DtPrevAuthorSec: -1},
			{Hash: "c", AuthorEmail: "x@x.com", EffectiveChurn: 10, DtPrevAuthorSec: -1},
		},
	}
	vectors := ScoreEffort([]schema.Batch{batch}, cfg)
	require.Len(t, vectors, 3)
	// x owns both the first and last commit and 2/3 of the batch.
	xDominance := 0.3*1 + 0.3*1 + 0.4*(2.0/3.0)
	assert.InDelta(t, xDominance, vectors[0].DominanceRaw, 1e-9)
	yDominance := 0.4 * (1.0 / 3.0)
	assert.InDelta(t, yDominance, vectors[1].DominanceRaw, 1e-9)
}
