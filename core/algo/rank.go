package algo

import (
	"sort"

	"github.com/fairdev/fds/schema"
)

// RankDevelopers sorts developer results descending by FDS score. Ties are
// broken by commit count descending, then by author email ascending
// (spec.md §4.5).
func RankDevelopers(results []schema.DeveloperResult) []schema.DeveloperResult {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.FDS != b.FDS {
			return a.FDS > b.FDS
		}
		if a.CommitCount != b.CommitCount {
			return a.CommitCount > b.CommitCount
		}
		return a.AuthorEmail < b.AuthorEmail
	})
	return results
}
