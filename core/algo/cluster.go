package algo

import (
	"fmt"
	"sort"

	"github.com/fairdev/fds/schema"
)

// ClusterPoint is the minimal per-commit shape the clusterer needs: a
// chronological timestamp and the two dimensions its dissimilarity measure
// is built from. Index is the position in the original (already
// chronologically sorted, ties broken by input order) stream.
type ClusterPoint struct {
	Index       int
	TSUTC       int64
	Insertions  int
	Deletions   int
	IsMerge     bool
	AuthorEmail string
}

// ClusterParams are the five configuration knobs named in spec.md §4.1.
type ClusterParams struct {
	Alpha         float64
	Beta          float64
	Gap           float64
	BreakOnMerge  bool
	BreakOnAuthor bool
}

// Validate checks the invariants spec.md §4.1 names for InvalidConfig:
// negative weights or a non-positive gap.
func (p ClusterParams) Validate() error {
	if p.Alpha < 0 || p.Beta < 0 {
		return fmt.Errorf("cluster weights must be non-negative: %w", schema.ErrInvalidConfig)
	}
	if p.Gap <= 0 {
		return fmt.Errorf("cluster gap must be positive: %w", schema.ErrInvalidConfig)
	}
	return nil
}

// ForwardScanCluster partitions points (already in chronological order,
// ties broken by input/index order) into batches via the single-pass
// algorithm in spec.md §4.1. It returns a dense batch id per point, aligned
// by position with the input slice.
func ForwardScanCluster(points []ClusterPoint, p ClusterParams) ([]int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	batchIDs := make([]int, len(points))
	if len(points) == 0 {
		return batchIDs, nil
	}

	current := 0
	batchIDs[0] = 0
	for i := 1; i < len(points); i++ {
		prev := points[i-1]
		cur := points[i]

		dt := float64(cur.TSUTC - prev.TSUTC)
		dloc := absInt(cur.Insertions-prev.Insertions) + absInt(cur.Deletions-prev.Deletions)
		d := p.Alpha*dt + p.Beta*float64(dloc)

		breakBatch := d >= p.Gap ||
			(p.BreakOnMerge && cur.IsMerge) ||
			(p.BreakOnAuthor && cur.AuthorEmail != prev.AuthorEmail)

		if breakBatch {
			current++
		}
		batchIDs[i] = current
	}
	return batchIDs, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// HierarchicalClusterCut partitions points via the alternative variant named
// in spec.md's closing note under §4.1: repeatedly merge each cluster with
// its nearest neighbor by mass-weighted squared distance over [dt, dloc]
// cluster centers (reciprocal-nearest-neighbor union-find merging, as in
// the original Torque Clustering reference), record each merge's torque,
// then cut the dendrogram at the largest relative gap in the sorted
// merge-torque sequence. It is never invoked by the default pipeline; it
// exists for parity with earlier artifacts per an explicit, non-default
// ClusterMode selection.
func HierarchicalClusterCut(points []ClusterPoint, p ClusterParams) ([]int, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := len(points)
	batchIDs := make([]int, n)
	if n == 0 {
		return batchIDs, nil
	}
	if n == 1 {
		return batchIDs, nil
	}

	// Cluster centers start as one point each; center is [raw timestamp,
	// insertions+deletions], and alpha/beta are applied when distances
	// between centers are computed.
	type center struct {
		t, loc float64
		mass   float64
	}
	centers := make([]center, n)
	for i, pt := range points {
		centers[i] = center{t: float64(pt.TSUTC), loc: float64(pt.Insertions + pt.Deletions), mass: 1}
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		// merge the smaller-mass root into the larger, matching the
		// reference implementation's union-by-mass rule.
		if centers[ra].mass < centers[rb].mass {
			ra, rb = rb, ra
		}
		total := centers[ra].mass + centers[rb].mass
		centers[ra].t = (centers[ra].t*centers[ra].mass + centers[rb].t*centers[rb].mass) / total
		centers[ra].loc = (centers[ra].loc*centers[ra].mass + centers[rb].loc*centers[rb].mass) / total
		centers[ra].mass = total
		parent[rb] = ra
	}

	activeRoots := func() []int {
		seen := make(map[int]bool)
		var roots []int
		for i := range points {
			r := find(i)
			if !seen[r] {
				seen[r] = true
				roots = append(roots, r)
			}
		}
		sort.Ints(roots)
		return roots
	}

	sqDist := func(a, b int) float64 {
		dt := p.Alpha * (centers[a].t - centers[b].t)
		dloc := p.Beta * (centers[a].loc - centers[b].loc)
		return dt*dt + dloc*dloc
	}

	type mergeEvent struct {
		a, b   int
		torque float64
	}
	var merges []mergeEvent

	for {
		roots := activeRoots()
		if len(roots) <= 1 {
			break
		}

		nearest := make(map[int]int, len(roots))
		for _, a := range roots {
			best := -1
			bestDist := 0.0
			for _, b := range roots {
				if a == b {
					continue
				}
				d := sqDist(a, b)
				if best == -1 || d < bestDist {
					best, bestDist = b, d
				}
			}
			nearest[a] = best
		}

		type edge struct {
			a, b   int
			torque float64
		}
		var edges []edge
		for _, a := range roots {
			b := nearest[a]
			if b < 0 {
				continue
			}
			// eligible only when a's mass <= its nearest neighbor's mass,
			// matching the mass-weighted nearest-neighbor merge rule.
			if centers[a].mass <= centers[b].mass {
				edges = append(edges, edge{a: a, b: b, torque: centers[a].mass * sqDist(a, b)})
			}
		}
		if len(edges) == 0 {
			break
		}

		for _, e := range edges {
			if find(e.a) == find(e.b) {
				continue
			}
			merges = append(merges, mergeEvent{a: e.a, b: e.b, torque: e.torque})
			union(e.a, e.b)
		}
	}

	// Cut the dendrogram at the largest relative gap in the sorted
	// merge-torque sequence; with fewer than two merges there is nothing to
	// cut, everything stays in one batch.
	sort.Slice(merges, func(i, j int) bool { return merges[i].torque < merges[j].torque })
	cutTorque := -1.0
	bestGap := -1.0
	for i := 1; i < len(merges); i++ {
		prev, cur := merges[i-1].torque, merges[i].torque
		if prev <= 0 {
			continue
		}
		relGap := (cur - prev) / prev
		if relGap > bestGap {
			bestGap = relGap
			cutTorque = prev
		}
	}

	// Replay the recorded merges, torque-ascending, stopping short of any
	// merge whose torque exceeds the cut (or replaying all of them when no
	// informative gap was found).
	parent2 := make([]int, n)
	for i := range parent2 {
		parent2[i] = i
	}
	var find2 func(int) int
	find2 = func(x int) int {
		for parent2[x] != x {
			parent2[x] = parent2[parent2[x]]
			x = parent2[x]
		}
		return x
	}
	for _, e := range merges {
		if cutTorque >= 0 && e.torque > cutTorque {
			break
		}
		ra, rb := find2(e.a), find2(e.b)
		if ra != rb {
			parent2[rb] = ra
		}
	}

	ids := make(map[int]int)
	nextID := 0
	for i := 0; i < n; i++ {
		r := find2(i)
		id, ok := ids[r]
		if !ok {
			id = nextID
			ids[r] = id
			nextID++
		}
		batchIDs[i] = id
	}
	return batchIDs, nil
}
