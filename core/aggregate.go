package core

import (
	"sort"

	"github.com/fairdev/fds/core/algo"
	"github.com/fairdev/fds/schema"
)

// Contributions computes the per-commit contribution values (§4.5):
// max(0, effort * importance).
func Contributions(commits []schema.Commit) []schema.Contribution {
	out := make([]schema.Contribution, len(commits))
	for i, c := range commits {
		value := c.Effort * c.Importance
		if value < 0 {
			value = 0
		}
		out[i] = schema.Contribution{
			Hash:        c.Hash,
			AuthorEmail: c.AuthorEmail,
			CommitTSUTC: c.CommitTSUTC,
			BatchID:     c.BatchID,
			Value:       value,
		}
	}
	return out
}

// windowCommits applies the §4.5 adaptive time window: the full span is
// kept if it is within W days or W itself disables windowing (>= 365).
func windowCommits(commits []schema.Commit, windowDays float64) []schema.Commit {
	if len(commits) == 0 {
		return commits
	}

	var minTS, maxTS int64
	minTS, maxTS = commits[0].CommitTSUTC, commits[0].CommitTSUTC
	for _, c := range commits[1:] {
		if c.CommitTSUTC < minTS {
			minTS = c.CommitTSUTC
		}
		if c.CommitTSUTC > maxTS {
			maxTS = c.CommitTSUTC
		}
	}

	spanDays := float64(maxTS-minTS) / 86400.0
	if spanDays <= windowDays || windowDays >= 365 {
		return commits
	}

	cutoff := maxTS - int64(windowDays*86400.0)
	out := make([]schema.Commit, 0, len(commits))
	for _, c := range commits {
		if c.CommitTSUTC >= cutoff {
			out = append(out, c)
		}
	}
	return out
}

type authorAccumulator struct {
	fds           float64
	effortSum     float64
	importanceSum float64
	totalChurn    float64
	totalFiles    int
	commitCount   int
	batches       map[int]struct{}
	firstCommit   int64
	lastCommit    int64
}

// Aggregate runs C5: windows the commit stream, groups surviving commits
// by author, aggregates per-author totals, drops authors below the
// contribution threshold, and returns the final ranked result set.
func Aggregate(commits []schema.Commit, contributions []schema.Contribution, cfg *schema.Config) []schema.DeveloperResult {
	windowed := windowCommits(commits, cfg.TimeWindowDays)
	if len(windowed) == 0 {
		return nil
	}

	contribByHash := make(map[string]float64, len(contributions))
	for _, c := range contributions {
		contribByHash[c.Hash] = c.Value
	}

	accumulators := make(map[string]*authorAccumulator)
	order := make([]string, 0)
	for _, c := range windowed {
		acc := accumulators[c.AuthorEmail]
		if acc == nil {
			acc = &authorAccumulator{batches: make(map[int]struct{}), firstCommit: c.CommitTSUTC, lastCommit: c.CommitTSUTC}
			accumulators[c.AuthorEmail] = acc
			order = append(order, c.AuthorEmail)
		}
		acc.fds += contribByHash[c.Hash]
		acc.effortSum += c.Effort
		acc.importanceSum += c.Importance
		acc.totalChurn += c.EffectiveChurn
		acc.totalFiles += c.FilesChanged
		acc.commitCount++
		acc.batches[c.BatchID] = struct{}{}
		if c.CommitTSUTC < acc.firstCommit {
			acc.firstCommit = c.CommitTSUTC
		}
		if c.CommitTSUTC > acc.lastCommit {
			acc.lastCommit = c.CommitTSUTC
		}
	}

	sort.Strings(order)

	results := make([]schema.DeveloperResult, 0, len(order))
	for _, email := range order {
		acc := accumulators[email]
		if acc.fds < cfg.ContributionThreshold {
			continue
		}
		results = append(results, schema.DeveloperResult{
			AuthorEmail:   email,
			FDS:           acc.fds,
			AvgEffort:     acc.effortSum / float64(acc.commitCount),
			AvgImportance: acc.importanceSum / float64(acc.commitCount),
			TotalChurn:    acc.totalChurn,
			TotalFiles:    acc.totalFiles,
			CommitCount:   acc.commitCount,
			UniqueBatches: len(acc.batches),
			FirstCommit:   acc.firstCommit,
			LastCommit:    acc.lastCommit,
		})
	}

	return algo.RankDevelopers(results)
}
