package core

import (
	"testing"

	"github.com/fairdev/fds/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributionsClampsNegativeToZero(t *testing.T) {
	commits := []schema.Commit{
		{Hash: "a", Effort: -1, Importance: 1},
		{Hash: "b", Effort: 2, Importance: 3},
	}
	contribs := Contributions(commits)
	assert.Equal(t, 0.0, contribs[0].Value)
	assert.Equal(t, 6.0, contribs[1].Value)
}

func TestWindowCommitsKeepsAllWhenSpanWithinWindow(t *testing.T) {
	commits := []schema.Commit{
		{Hash: "a", CommitTSUTC: 0},
		{Hash: "b", CommitTSUTC: 10 * 86400},
	}
	out := windowCommits(commits, 90)
	assert.Len(t, out, 2)
}

func TestWindowCommitsDisabledAtOrAbove365(t *testing.T) {
	commits := []schema.Commit{
		{Hash: "a", CommitTSUTC: 0},
		{Hash: "b", CommitTSUTC: 400 * 86400},
	}
	out := windowCommits(commits, 365)
	assert.Len(t, out, 2)
}

func TestWindowCommitsTrimsOlderCommits(t *testing.T) {
	commits := []schema.Commit{
		{Hash: "old", CommitTSUTC: 0},
		{Hash: "new", CommitTSUTC: 200 * 86400},
	}
	out := windowCommits(commits, 90)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].Hash)
}

func TestAggregateFDSEqualsSumOfContributions(t *testing.T) {
	cfg := schema.DefaultConfig()
	cfg.ContributionThreshold = 0
	commits := []schema.Commit{
		{Hash: "a", AuthorEmail: "x@x.com", CommitTSUTC: 0, Effort: 1, Importance: 2, BatchID: 0},
		{Hash: "b", AuthorEmail: "x@x.com", CommitTSUTC: 100, Effort: 0.5, Importance: 1, BatchID: 1},
	}
	contribs := Contributions(commits)
	results := Aggregate(commits, contribs, cfg)
	require.Len(t, results, 1)
	assert.InDelta(t, 2.5, results[0].FDS, 1e-9)
	assert.Equal(t, 2, results[0].UniqueBatches)
}

func TestAggregateDropsBelowThreshold(t *testing.T) {
	cfg := schema.DefaultConfig()
	cfg.ContributionThreshold = 10
	commits := []schema.Commit{
		{Hash: "a", AuthorEmail: "x@x.com", CommitTSUTC: 0, Effort: 1, Importance: 1},
	}
	contribs := Contributions(commits)
	results := Aggregate(commits, contribs, cfg)
	assert.Empty(t, results)
}

func TestAggregateEmptyInput(t *testing.T) {
	cfg := schema.DefaultConfig()
	assert.Empty(t, Aggregate(nil, nil, cfg))
}
