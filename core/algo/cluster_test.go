package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardScanClusterSingleSession(t *testing.T) {
	// Scenario 1: two commits, same author, 10 minutes apart, gap=1800.
	points := []ClusterPoint{
		{Index: 0, TSUTC: 1000, AuthorEmail: "a@x.com"},
		{Index: 1, TSUTC: 1000 + 600, AuthorEmail: "a@x.com"},
	}
	ids, err := ForwardScanCluster(points, ClusterParams{Alpha: 1, Beta: 0, Gap: 1800})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, ids)
}

func TestForwardScanClusterMergeBreak(t *testing.T) {
	// Scenario 2: three commits, second is a merge, break_on_merge=true.
	points := []ClusterPoint{
		{Index: 0, TSUTC: 0, AuthorEmail: "a@x.com"},
		{Index: 1, TSUTC: 10, AuthorEmail: "a@x.com", IsMerge: true},
		{Index: 2, TSUTC: 20, AuthorEmail: "a@x.com"},
	}
	ids, err := ForwardScanCluster(points, ClusterParams{Alpha: 1, Beta: 0, Gap: 1e9, BreakOnMerge: true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, ids)
}

func TestForwardScanClusterAuthorBreak(t *testing.T) {
	// Scenario 3: authors a,b,a with break_on_author=true.
	points := []ClusterPoint{
		{Index: 0, TSUTC: 0, AuthorEmail: "a@x.com"},
		{Index: 1, TSUTC: 10, AuthorEmail: "b@x.com"},
		{Index: 2, TSUTC: 20, AuthorEmail: "a@x.com"},
	}
	ids, err := ForwardScanCluster(points, ClusterParams{Alpha: 1, Beta: 0, Gap: 1e9, BreakOnAuthor: true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids)
}

func TestForwardScanClusterEmpty(t *testing.T) {
	ids, err := ForwardScanCluster(nil, ClusterParams{Alpha: 1, Gap: 10})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestForwardScanClusterInvalidConfig(t *testing.T) {
	_, err := ForwardScanCluster([]ClusterPoint{{}}, ClusterParams{Alpha: -1, Gap: 10})
	assert.Error(t, err)

	_, err = ForwardScanCluster([]ClusterPoint{{}}, ClusterParams{Alpha: 1, Gap: 0})
	assert.Error(t, err)
}

func TestForwardScanClusterIDsAreDenseAndContiguous(t *testing.T) {
	points := []ClusterPoint{
		{TSUTC: 0, AuthorEmail: "a"},
		{TSUTC: 5000, AuthorEmail: "a"},
		{TSUTC: 5010, AuthorEmail: "a"},
		{TSUTC: 20000, AuthorEmail: "a"},
	}
	ids, err := ForwardScanCluster(points, ClusterParams{Alpha: 1, Gap: 1800})
	require.NoError(t, err)
	seen := map[int]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	for i := 0; i < len(seen); i++ {
		assert.Contains(t, seen, i)
	}
}

func TestHierarchicalClusterCutDoesNotPanic(t *testing.T) {
	points := []ClusterPoint{
		{TSUTC: 0, Insertions: 10, AuthorEmail: "a"},
		{TSUTC: 100, Insertions: 12, AuthorEmail: "a"},
		{TSUTC: 50000, Insertions: 500, AuthorEmail: "b"},
		{TSUTC: 50010, Insertions: 480, AuthorEmail: "b"},
	}
	ids, err := HierarchicalClusterCut(points, ClusterParams{Alpha: 1, Beta: 1, Gap: 10})
	require.NoError(t, err)
	assert.Len(t, ids, 4)
}

func TestHierarchicalClusterCutSinglePoint(t *testing.T) {
	ids, err := HierarchicalClusterCut([]ClusterPoint{{TSUTC: 1}}, ClusterParams{Alpha: 1, Gap: 10})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, ids)
}
