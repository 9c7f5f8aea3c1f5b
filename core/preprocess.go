package core

import (
	"strings"

	"github.com/fairdev/fds/core/algo"
	"github.com/fairdev/fds/schema"
)

// whitespaceVocabulary is the fixed word list for the whitespace/format
// noise indicator (§4.2.1). Spec.md enumerates exactly these eight words;
// the original Python source carries two extra ("prettier", "clang-format")
// that spec.md does not, and spec.md is authoritative here.
var whitespaceVocabulary = []string{
	"format", "style", "indent", "whitespace", "spacing", "trailing", "cleanup", "lint",
}

// Preprocess runs C2 over a batch-assigned commit stream: it computes each
// commit's noise factor and effective churn, builds the directory co-change
// graph, runs PageRank over it, then attaches directory centrality and the
// novelty flags to every commit. Commits are returned in the same order
// they were given (original chronological order); it does not reorder or
// drop any commit.
func Preprocess(commits []schema.Commit, cfg *schema.Config) ([]schema.Commit, schema.CentralityMap) {
	out := make([]schema.Commit, len(commits))
	copy(out, commits)

	for i := range out {
		out[i].NoiseFactor = noiseFactor(out[i], cfg)
		out[i].EffectiveChurn = float64(out[i].RawChurn()) * out[i].NoiseFactor
	}

	graph := buildCoChangeGraph(out, cfg.MinChurnForEdge)
	centrality := computeCentrality(graph, cfg)

	for i := range out {
		out[i].DirectoryCentrality = directoryCentrality(out[i].DirsTouched, centrality)
		out[i].KeyPathLines = keyPathLines(out[i], cfg)
		out[i].NewFileLines = newFileLines(out[i])
	}

	return out, centrality
}

// noiseFactor implements §4.2.1: start at 1.0, replace with the smallest
// matching down-weight.
func noiseFactor(c schema.Commit, cfg *schema.Config) float64 {
	factor := 1.0

	if isVendorNoise(c, cfg.VendorPatterns) {
		factor = minFloat(factor, cfg.VendorNoiseFactor)
	}

	if isWhitespaceNoise(c) {
		factor = minFloat(factor, cfg.WhitespaceNoiseFactor)
	}

	return factor
}

func isVendorNoise(c schema.Commit, patterns []string) bool {
	for _, d := range c.DirsTouched {
		if matchesAnyPattern(d, patterns) {
			return true
		}
	}
	for _, f := range c.FileTypes {
		if matchesAnyPattern(f, patterns) {
			return true
		}
	}
	return false
}

func matchesAnyPattern(s string, patterns []string) bool {
	lower := strings.ToLower(s)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func isWhitespaceNoise(c schema.Commit) bool {
	subject := strings.ToLower(c.MsgSubject)
	matched := false
	for _, word := range whitespaceVocabulary {
		if strings.Contains(subject, word) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	total := c.Insertions + c.Deletions
	if total <= 50 {
		return false
	}
	diff := c.Insertions - c.Deletions
	if diff < 0 {
		diff = -diff
	}
	return diff < 10
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// buildCoChangeGraph implements §4.2.2's graph construction: for every
// commit touching >= 2 directories with positive effective churn, every
// unordered directory pair accumulates that churn as edge weight. Every
// edge is stored; minChurnForEdge is applied when edges are read back via
// CoChangeGraph.Edges.
func buildCoChangeGraph(commits []schema.Commit, minChurnForEdge float64) *schema.CoChangeGraph {
	g := schema.NewCoChangeGraph()
	for _, c := range commits {
		if len(c.DirsTouched) < 2 || c.EffectiveChurn <= 0 {
			continue
		}
		for i := 0; i < len(c.DirsTouched); i++ {
			for j := i + 1; j < len(c.DirsTouched); j++ {
				g.AddEdgeWeight(c.DirsTouched[i], c.DirsTouched[j], c.EffectiveChurn)
			}
		}
	}
	_ = minChurnForEdge // threshold applied when reading edges back out
	return g
}

// computeCentrality runs weighted PageRank over the co-change graph,
// dropping edges below cfg.MinChurnForEdge before construction.
func computeCentrality(g *schema.CoChangeGraph, cfg *schema.Config) schema.CentralityMap {
	edges := g.Edges(cfg.MinChurnForEdge)
	if len(edges) == 0 {
		return schema.CentralityMap{}
	}

	nodeSet := make(map[string]struct{})
	adj := make(map[string][]algo.WeightedNeighbor)
	for _, e := range edges {
		nodeSet[e.A] = struct{}{}
		nodeSet[e.B] = struct{}{}
		adj[e.A] = append(adj[e.A], algo.WeightedNeighbor{Neighbor: e.B, Weight: e.Weight})
		adj[e.B] = append(adj[e.B], algo.WeightedNeighbor{Neighbor: e.A, Weight: e.Weight})
	}

	nodes := make([]string, 0, len(nodeSet))
	for n := range nodeSet {
		nodes = append(nodes, n)
	}

	ranks := algo.PageRank(nodes, func(n string) []algo.WeightedNeighbor {
		return adj[n]
	}, algo.PageRankConfig{
		Damping: cfg.PageRankDamping,
		MaxIter: cfg.PageRankMaxIter,
	})

	return schema.CentralityMap(ranks)
}

// directoryCentrality is the mean of centrality scores over dirs, 0 if dirs
// is empty or none are present in the map (§4.2.3).
func directoryCentrality(dirs []string, centrality schema.CentralityMap) float64 {
	if len(dirs) == 0 {
		return 0
	}
	var total float64
	var count int
	for _, d := range dirs {
		if v, ok := centrality[d]; ok {
			total += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// keyPathLines implements §4.2.3: effective_churn * (|dirs ∩ KEY_DIRS| /
// |dirs|), rounded to an integer.
func keyPathLines(c schema.Commit, cfg *schema.Config) int {
	if len(c.DirsTouched) == 0 {
		return 0
	}
	var keyCount int
	for _, d := range c.DirsTouched {
		if _, ok := cfg.KeyDirs[strings.ToLower(d)]; ok {
			keyCount++
		}
	}
	if keyCount == 0 {
		return 0
	}
	proportion := float64(keyCount) / float64(len(c.DirsTouched))
	return roundToInt(c.EffectiveChurn * proportion)
}

var newFileWords = []string{"add", "new", "create"}

// newFileLines implements §4.2.3's new-file heuristic.
func newFileLines(c schema.Commit) int {
	subject := strings.ToLower(c.MsgSubject)
	matched := false
	for _, w := range newFileWords {
		if strings.Contains(subject, w) {
			matched = true
			break
		}
	}
	if !matched {
		return 0
	}
	if c.Insertions <= 2*c.Deletions {
		return 0
	}
	return int(0.8 * float64(c.Insertions))
}

func roundToInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
