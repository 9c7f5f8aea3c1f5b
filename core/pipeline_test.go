package core

import (
	"testing"

	"github.com/fairdev/fds/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEmptyInputYieldsEmptyResult(t *testing.T) {
	cfg := schema.DefaultConfig()
	result, err := Run(nil, cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Developers)
	assert.Empty(t, result.Batches)
}

func TestRunEndToEndProducesRankedDevelopers(t *testing.T) {
	cfg := schema.DefaultConfig()
	cfg.ContributionThreshold = 0
	commits := []schema.Commit{
		{Hash: "a", AuthorEmail: "alice@x.com", CommitTSUTC: 0, Insertions: 50, Deletions: 10, DirsTouched: []string{"core", "api"}, MsgSubject: "add feature x", DtPrevCommitSec: -1, DtPrevAuthorSec: -1},
		{Hash: "b", AuthorEmail: "alice@x.com", CommitTSUTC: 300, Insertions: 20, Deletions: 5, DirsTouched: []string{"core"}, MsgSubject: "fix bug in parser", DtPrevCommitSec: 300, DtPrevAuthorSec: 300},
		{Hash: "c", AuthorEmail: "bob@x.com", CommitTSUTC: 5000, Insertions: 200, Deletions: 100, DirsTouched: []string{"api", "docs"}, MsgSubject: "refactor api layer", DtPrevCommitSec: 4700, DtPrevAuthorSec: -1},
	}
	result, err := Run(commits, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Developers)
	assert.NotEmpty(t, result.Batches)
	for i := 1; i < len(result.Developers); i++ {
		assert.GreaterOrEqual(t, result.Developers[i-1].FDS, result.Developers[i].FDS)
	}
}

func TestRunAllIsAnAliasOfRun(t *testing.T) {
	cfg := schema.DefaultConfig()
	commits := []schema.Commit{
		{Hash: "a", AuthorEmail: "x@x.com", CommitTSUTC: 0, DtPrevCommitSec: -1, DtPrevAuthorSec: -1},
	}
	a, errA := Run(commits, cfg)
	b, errB := RunAll(commits, cfg)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, len(a.Batches), len(b.Batches))
}

func TestRunRejectsUnknownClusterMode(t *testing.T) {
	cfg := schema.DefaultConfig()
	cfg.ClusterMode = "bogus"
	commits := []schema.Commit{
		{Hash: "a", AuthorEmail: "x@x.com", CommitTSUTC: 0, DtPrevCommitSec: -1, DtPrevAuthorSec: -1},
	}
	_, err := Run(commits, cfg)
	assert.Error(t, err)
}

func TestGroupIntoBatchesPreservesContiguity(t *testing.T) {
	commits := []schema.Commit{
		{Hash: "a", BatchID: 0},
		{Hash: "b", BatchID: 0},
		{Hash: "c", BatchID: 1},
	}
	batches := groupIntoBatches(commits)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0].Commits, 2)
	assert.Len(t, batches[1].Commits, 1)
}
