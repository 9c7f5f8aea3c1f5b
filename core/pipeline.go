package core

import (
	"fmt"
	"sort"

	"github.com/fairdev/fds/core/algo"
	"github.com/fairdev/fds/schema"
)

// Result is the output of a full pipeline run: the ranked developer
// results plus the intermediate artifacts a caller (report writer, MCP
// tool, cache) may want without re-running anything.
type Result struct {
	Commits       []schema.Commit
	Batches       []schema.Batch
	Centrality    schema.CentralityMap
	Contributions []schema.Contribution
	Developers    []schema.DeveloperResult
}

// Run executes C1 through C5 over an already-loaded, chronologically
// ordered commit stream. It never mutates the input slice. Empty input
// yields an empty Result and no error (§7 EmptyInput).
func Run(commits []schema.Commit, cfg *schema.Config) (*Result, error) {
	if len(commits) == 0 {
		return &Result{}, nil
	}

	ordered := make([]schema.Commit, len(commits))
	copy(ordered, commits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CommitTSUTC < ordered[j].CommitTSUTC
	})

	batchIDs, err := clusterInto(ordered, cfg)
	if err != nil {
		return nil, err
	}
	for i := range ordered {
		ordered[i].BatchID = batchIDs[i]
	}

	preprocessed, centrality := Preprocess(ordered, cfg)

	batches := groupIntoBatches(preprocessed)

	effortVectors := ScoreEffort(batches, cfg)
	withEffort := applyEffort(preprocessed, effortVectors)

	importanceVectors := ScoreImportance(batches, cfg)
	withImportance := ApplyImportance(withEffort, importanceVectors)

	contributions := Contributions(withImportance)
	developers := Aggregate(withImportance, contributions, cfg)

	return &Result{
		Commits:       withImportance,
		Batches:       regroupBatches(withImportance),
		Centrality:    centrality,
		Contributions: contributions,
		Developers:    developers,
	}, nil
}

// RunAll is a convenience alias for Run, named to match spec.md §6's "run
// all" function.
func RunAll(commits []schema.Commit, cfg *schema.Config) (*Result, error) {
	return Run(commits, cfg)
}

// clusterInto runs the configured Torque Clustering variant over the
// chronologically ordered stream and returns a batch id per commit.
func clusterInto(ordered []schema.Commit, cfg *schema.Config) ([]int, error) {
	points := make([]algo.ClusterPoint, len(ordered))
	for i, c := range ordered {
		points[i] = algo.ClusterPoint{
			Index:       i,
			TSUTC:       c.CommitTSUTC,
			Insertions:  c.Insertions,
			Deletions:   c.Deletions,
			IsMerge:     c.IsMerge,
			AuthorEmail: c.AuthorEmail,
		}
	}

	params := algo.ClusterParams{
		Alpha:         cfg.Alpha,
		Beta:          cfg.Beta,
		Gap:           cfg.Gap,
		BreakOnMerge:  cfg.BreakOnMerge,
		BreakOnAuthor: cfg.BreakOnAuthor,
	}

	switch cfg.ClusterMode {
	case schema.HierarchicalCluster:
		return algo.HierarchicalClusterCut(points, params)
	case schema.ForwardCluster, "":
		return algo.ForwardScanCluster(points, params)
	default:
		return nil, fmt.Errorf("unknown cluster mode %q: %w", cfg.ClusterMode, schema.ErrInvalidConfig)
	}
}

// groupIntoBatches partitions a chronologically ordered, batch-assigned
// commit stream into contiguous Batch records.
func groupIntoBatches(commits []schema.Commit) []schema.Batch {
	return regroupBatches(commits)
}

func regroupBatches(commits []schema.Commit) []schema.Batch {
	if len(commits) == 0 {
		return nil
	}
	var batches []schema.Batch
	cur := schema.Batch{BatchID: commits[0].BatchID}
	for _, c := range commits {
		if c.BatchID != cur.BatchID {
			batches = append(batches, cur)
			cur = schema.Batch{BatchID: c.BatchID}
		}
		cur.Commits = append(cur.Commits, c)
	}
	batches = append(batches, cur)
	return batches
}

// applyEffort attaches each commit's Effort scalar from the matching
// EffortVector (matched by commit hash, since effort vectors are per-commit
// already).
func applyEffort(commits []schema.Commit, vectors []schema.EffortVector) []schema.Commit {
	byHash := make(map[string]float64, len(vectors))
	for _, v := range vectors {
		byHash[v.Hash] = v.Effort
	}
	out := make([]schema.Commit, len(commits))
	copy(out, commits)
	for i := range out {
		out[i].Effort = byHash[out[i].Hash]
	}
	return out
}
