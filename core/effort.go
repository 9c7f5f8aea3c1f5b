package core

import (
	"math"
	"sort"
	"sync"

	"github.com/fairdev/fds/core/algo"
	"github.com/fairdev/fds/schema"
)

// authorBatchAggregate holds the author-level sums needed to compute the
// per-author raw values shared by every commit that author made within a
// single batch (§4.3).
type authorBatchAggregate struct {
	churn         float64
	dirShares     map[string]float64
	commitCount   int
	noveltyLines  float64
	isFirstAuthor bool
	isLastAuthor  bool
}

// ScoreEffort runs C3 over a set of batches: per-commit raw effort values
// are computed per batch, then MAD-Z normalized globally over every commit
// in a batch that met min_batch_size, then combined into the final effort
// scalar. Commits belonging to skipped batches get no effort vector.
func ScoreEffort(batches []schema.Batch, cfg *schema.Config) []schema.EffortVector {
	eligible := make([]schema.Batch, 0, len(batches))
	for _, batch := range batches {
		if len(batch.Commits) >= cfg.MinBatchSize {
			eligible = append(eligible, batch)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	perBatch := parallelBatchEffortRaw(eligible, cfg)

	var vectors []schema.EffortVector
	for _, v := range perBatch {
		vectors = append(vectors, v...)
	}

	if len(vectors) == 0 {
		return vectors
	}

	scale := make([]float64, len(vectors))
	reach := make([]float64, len(vectors))
	centrality := make([]float64, len(vectors))
	dominance := make([]float64, len(vectors))
	novelty := make([]float64, len(vectors))
	speed := make([]float64, len(vectors))
	for i, v := range vectors {
		scale[i] = v.ScaleRaw
		reach[i] = v.ReachRaw
		centrality[i] = v.CentralityRaw
		dominance[i] = v.DominanceRaw
		novelty[i] = v.NoveltyRaw
		speed[i] = v.SpeedRaw
	}

	scaleZ := algo.MADZScore(scale)
	reachZ := algo.MADZScore(reach)
	centralityZ := algo.MADZScore(centrality)
	dominanceZ := algo.MADZScore(dominance)
	noveltyZ := algo.MADZScore(novelty)
	speedZ := algo.MADZScore(speed)

	for i := range vectors {
		vectors[i].ScaleZ = scaleZ[i]
		vectors[i].ReachZ = reachZ[i]
		vectors[i].CentralityZ = centralityZ[i]
		vectors[i].DominanceZ = dominanceZ[i]
		vectors[i].NoveltyZ = noveltyZ[i]
		vectors[i].SpeedZ = speedZ[i]
		vectors[i].Effort = 0.25*vectors[i].Share +
			0.15*vectors[i].ScaleZ +
			0.20*vectors[i].ReachZ +
			0.20*vectors[i].CentralityZ +
			0.15*vectors[i].DominanceZ +
			0.05*vectors[i].NoveltyZ +
			0.05*vectors[i].SpeedZ
	}

	return vectors
}

// batchEffortRaw computes the per-commit raw effort values for one batch.
func batchEffortRaw(batch schema.Batch, cfg *schema.Config) []schema.EffortVector {
	aggregates := make(map[string]*authorBatchAggregate)
	batchChurn := batch.EffectiveChurn()
	n := len(batch.Commits)

	for i, c := range batch.Commits {
		agg := aggregates[c.AuthorEmail]
		if agg == nil {
			agg = &authorBatchAggregate{dirShares: make(map[string]float64)}
			aggregates[c.AuthorEmail] = agg
		}
		agg.churn += c.EffectiveChurn
		agg.commitCount++
		agg.noveltyLines += float64(c.NewFileLines + c.KeyPathLines)
		if len(c.DirsTouched) > 0 {
			share := c.EffectiveChurn / float64(len(c.DirsTouched))
			for _, d := range c.DirsTouched {
				agg.dirShares[d] += share
			}
		}
		if i == 0 {
			agg.isFirstAuthor = true
		}
		if i == n-1 {
			agg.isLastAuthor = true
		}
	}

	out := make([]schema.EffortVector, 0, n)
	for _, c := range batch.Commits {
		agg := aggregates[c.AuthorEmail]

		var share float64
		if batchChurn > 0 {
			share = agg.churn / batchChurn
		}

		var dirWeights []float64
		for _, w := range agg.dirShares {
			dirWeights = append(dirWeights, w)
		}
		sort.Float64s(dirWeights)

		var first, last float64
		if agg.isFirstAuthor {
			first = 1
		}
		if agg.isLastAuthor {
			last = 1
		}
		countRatio := float64(agg.commitCount) / float64(n)
		dominance := 0.3*first + 0.3*last + 0.4*countRatio

		var novelty float64
		if agg.churn > 0 {
			novelty = math.Min(cfg.NoveltyCap, agg.noveltyLines/agg.churn)
		}

		var speed float64
		if c.HasPrevAuthorGap() {
			hours := c.DtPrevAuthorSec / 3600.0
			speed = math.Exp(-hours / cfg.SpeedHalfLifeHours)
		}

		out = append(out, schema.EffortVector{
			Hash:          c.Hash,
			AuthorEmail:   c.AuthorEmail,
			BatchID:       batch.BatchID,
			Share:         share,
			ScaleRaw:      algo.SafeLog1p(agg.churn),
			ReachRaw:      algo.Entropy(dirWeights),
			CentralityRaw: c.DirectoryCentrality,
			DominanceRaw:  dominance,
			NoveltyRaw:    novelty,
			SpeedRaw:      speed,
		})
	}

	return out
}

// parallelBatchEffortRaw computes batchEffortRaw for every batch, optionally
// spread across cfg.Workers goroutines feeding a shared job channel — the
// per-batch raw pass is one of the three points spec.md's concurrency model
// permits parallelizing. Results are written into a slice indexed by the
// batch's position so final ordering stays deterministic regardless of
// goroutine completion order.
func parallelBatchEffortRaw(batches []schema.Batch, cfg *schema.Config) [][]schema.EffortVector {
	results := make([][]schema.EffortVector, len(batches))

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(batches) {
		workers = len(batches)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = batchEffortRaw(batches[idx], cfg)
			}
		}()
	}
	for i := range batches {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
