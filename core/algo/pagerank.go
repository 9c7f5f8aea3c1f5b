package algo

import "sort"

// PageRankConfig carries the power-iteration knobs named in spec.md §4.2.2.
type PageRankConfig struct {
	Damping    float64
	MaxIter    int
	Tolerance  float64 // L1 convergence tolerance; 0 defaults to 1e-6
}

// defaultTolerance is the convergence tolerance named in §4.2.2.
const defaultTolerance = 1e-6

// PageRank computes weighted PageRank over an undirected weighted graph
// given as a node list and a symmetric edge-weight lookup. It redistributes
// dangling (zero-degree) node mass uniformly across all nodes, matching the
// standard power-iteration formulation spec.md §9 calls for. Iteration
// order is fixed (nodes sorted ascending) so results are deterministic
// regardless of map iteration order upstream.
//
// neighbors(n) must return, for node n, its incident (neighbor, weight)
// pairs. It is called once per node, before iteration starts.
func PageRank(nodes []string, neighbors func(node string) []WeightedNeighbor, cfg PageRankConfig) map[string]float64 {
	result := make(map[string]float64)
	if len(nodes) == 0 {
		return result
	}

	ordered := append([]string(nil), nodes...)
	sort.Strings(ordered)

	n := len(ordered)
	index := make(map[string]int, n)
	for i, name := range ordered {
		index[name] = i
	}

	degree := make([]float64, n) // weighted out-degree
	adj := make([][]WeightedNeighbor, n)
	for i, name := range ordered {
		adj[i] = neighbors(name)
		var deg float64
		for _, nb := range adj[i] {
			deg += nb.Weight
		}
		degree[i] = deg
	}

	damping := cfg.Damping
	tol := cfg.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}
	maxIter := cfg.MaxIter
	if maxIter <= 0 {
		maxIter = 100
	}

	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}

	base := (1 - damping) / float64(n)
	for iter := 0; iter < maxIter; iter++ {
		next := make([]float64, n)

		var danglingMass float64
		for i, deg := range degree {
			if deg == 0 {
				danglingMass += rank[i]
			}
		}
		danglingShare := damping * danglingMass / float64(n)

		for i := range next {
			next[i] = base + danglingShare
		}

		for i := range ordered {
			if degree[i] == 0 {
				continue
			}
			contribution := damping * rank[i] / degree[i]
			for _, nb := range adj[i] {
				j := index[nb.Neighbor]
				next[j] += contribution * nb.Weight
			}
		}

		var delta float64
		for i := range rank {
			d := next[i] - rank[i]
			if d < 0 {
				d = -d
			}
			delta += d
		}
		rank = next
		if delta < tol {
			break
		}
	}

	for i, name := range ordered {
		result[name] = rank[i]
	}
	return result
}

// WeightedNeighbor is one endpoint of a weighted edge, from the perspective
// of the node whose neighbor list this appears in.
type WeightedNeighbor struct {
	Neighbor string
	Weight   float64
}
