package core

import (
	"testing"

	"github.com/fairdev/fds/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreImportanceSkipsLowChurnBatches(t *testing.T) {
	cfg := schema.DefaultConfig()
	cfg.MinBatchChurn = 100
	batch := schema.Batch{
		BatchID: 0,
		Commits: []schema.Commit{{Hash: "a", EffectiveChurn: 5}},
	}
	vectors := ScoreImportance([]schema.Batch{batch}, cfg)
	assert.Empty(t, vectors)
}

func TestScoreImportanceNoReleaseCalendarZeroesOut(t *testing.T) {
	cfg := schema.DefaultConfig()
	batches := []schema.Batch{
		{BatchID: 0, Commits: []schema.Commit{{Hash: "a", EffectiveChurn: 10, FilesChanged: 1}}},
		{BatchID: 1, Commits: []schema.Commit{{Hash: "b", EffectiveChurn: 50, FilesChanged: 3}}},
	}
	vectors := ScoreImportance(batches, cfg)
	require.Len(t, vectors, 2)
	for _, v := range vectors {
		assert.Equal(t, 0.5, v.ReleaseRaw)
		assert.Equal(t, 0.0, v.ReleaseZ)
	}
}

func TestScoreImportanceTypeRawUsesMaxPriority(t *testing.T) {
	cfg := schema.DefaultConfig()
	batch := schema.Batch{
		BatchID: 0,
		Commits: []schema.Commit{
			{Hash: "a", EffectiveChurn: 10, MsgSubject: "update docs"},
			{Hash: "b", EffectiveChurn: 10, MsgSubject: "fix security vulnerability"},
		},
	}
	vectors := ScoreImportance([]schema.Batch{batch}, cfg)
	require.Len(t, vectors, 1)
	assert.Equal(t, 1.20, vectors[0].TypeRaw)
}

func TestApplyImportanceBroadcastsToCommits(t *testing.T) {
	cfg := schema.DefaultConfig()
	batches := []schema.Batch{
		{BatchID: 0, Commits: []schema.Commit{{Hash: "a", BatchID: 0, EffectiveChurn: 10}}},
		{BatchID: 1, Commits: []schema.Commit{{Hash: "b", BatchID: 1, EffectiveChurn: 90}}},
	}
	vectors := ScoreImportance(batches, cfg)
	commits := []schema.Commit{
		{Hash: "a", BatchID: 0},
		{Hash: "b", BatchID: 1},
	}
	out := ApplyImportance(commits, vectors)
	require.Len(t, out, 2)
	assert.NotEqual(t, out[0].Importance, 0.0)
}

func TestScoreImportanceEmptyInput(t *testing.T) {
	cfg := schema.DefaultConfig()
	assert.Empty(t, ScoreImportance(nil, cfg))
}
