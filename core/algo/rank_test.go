package algo

import (
	"testing"

	"github.com/fairdev/fds/schema"
	"github.com/stretchr/testify/assert"
)

func TestRankDevelopersSortsByFDSDescending(t *testing.T) {
	in := []schema.DeveloperResult{
		{AuthorEmail: "b@x.com", FDS: 1.0},
		{AuthorEmail: "a@x.com", FDS: 5.0},
		{AuthorEmail: "c@x.com", FDS: 3.0},
	}
	out := RankDevelopers(in)
	assert.Equal(t, []string{"a@x.com", "c@x.com", "b@x.com"}, emails(out))
}

func TestRankDevelopersTieBreaksByCommitCountThenEmail(t *testing.T) {
	in := []schema.DeveloperResult{
		{AuthorEmail: "z@x.com", FDS: 2.0, CommitCount: 3},
		{AuthorEmail: "a@x.com", FDS: 2.0, CommitCount: 5},
		{AuthorEmail: "b@x.com", FDS: 2.0, CommitCount: 5},
	}
	out := RankDevelopers(in)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "z@x.com"}, emails(out))
}

func emails(results []schema.DeveloperResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.AuthorEmail
	}
	return out
}
