package core

import (
	"math"
	"sort"
	"sync"

	"github.com/fairdev/fds/core/algo"
	"github.com/fairdev/fds/schema"
)

// ScoreImportance runs C4 over a set of batches: one raw importance vector
// is computed per batch, the six raw columns are MAD-Z normalized across
// the surviving batches, combined into a scalar, then broadcast back onto
// every commit of the batch. Batches whose total effective churn is below
// min_batch_churn are skipped entirely and receive no importance.
func ScoreImportance(batches []schema.Batch, cfg *schema.Config) []schema.ImportanceVector {
	eligible := make([]schema.Batch, 0, len(batches))
	for _, batch := range batches {
		if batch.EffectiveChurn() >= cfg.MinBatchChurn {
			eligible = append(eligible, batch)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	vectors := parallelBatchImportanceRaw(eligible, cfg)
	if len(vectors) == 0 {
		return vectors
	}

	scale := make([]float64, len(vectors))
	scope := make([]float64, len(vectors))
	centrality := make([]float64, len(vectors))
	complexity := make([]float64, len(vectors))
	typ := make([]float64, len(vectors))
	release := make([]float64, len(vectors))
	for i, v := range vectors {
		scale[i] = v.ScaleRaw
		scope[i] = v.ScopeRaw
		centrality[i] = v.CentralityRaw
		complexity[i] = v.ComplexityRaw
		typ[i] = v.TypeRaw
		release[i] = v.ReleaseRaw
	}

	scaleZ := algo.MADZScore(scale)
	scopeZ := algo.MADZScore(scope)
	centralityZ := algo.MADZScore(centrality)
	complexityZ := algo.MADZScore(complexity)
	typeZ := algo.MADZScore(typ)
	releaseZ := algo.MADZScore(release)

	for i := range vectors {
		vectors[i].ScaleZ = scaleZ[i]
		vectors[i].ScopeZ = scopeZ[i]
		vectors[i].CentralityZ = centralityZ[i]
		vectors[i].ComplexityZ = complexityZ[i]
		vectors[i].TypeZ = typeZ[i]
		vectors[i].ReleaseZ = releaseZ[i]
		vectors[i].Importance = 0.30*vectors[i].ScaleZ +
			0.20*vectors[i].ScopeZ +
			0.15*vectors[i].CentralityZ +
			0.15*vectors[i].ComplexityZ +
			0.10*vectors[i].TypeZ +
			0.10*vectors[i].ReleaseZ
	}

	return vectors
}

// ApplyImportance broadcasts each batch's importance scalar onto every
// commit sharing that batch id.
func ApplyImportance(commits []schema.Commit, vectors []schema.ImportanceVector) []schema.Commit {
	byBatch := make(map[int]float64, len(vectors))
	for _, v := range vectors {
		byBatch[v.BatchID] = v.Importance
	}
	out := make([]schema.Commit, len(commits))
	copy(out, commits)
	for i := range out {
		out[i].Importance = byBatch[out[i].BatchID]
	}
	return out
}

func batchImportanceRaw(batch schema.Batch, churn float64, cfg *schema.Config) schema.ImportanceVector {
	dirChurn := make(map[string]float64)
	var totalFiles int
	var centralitySum float64
	var maxPriority float64
	var lastTS int64

	for _, c := range batch.Commits {
		totalFiles += c.FilesChanged
		centralitySum += c.DirectoryCentrality
		for _, d := range c.DirsTouched {
			dirChurn[d] += c.EffectiveChurn
		}
		priority := ClassPriorityMultiplier(Classify(c.MsgSubject))
		if priority > maxPriority {
			maxPriority = priority
		}
		if c.CommitTSUTC > lastTS {
			lastTS = c.CommitTSUTC
		}
	}

	dirWeights := make([]float64, 0, len(dirChurn))
	for _, w := range dirChurn {
		dirWeights = append(dirWeights, w)
	}
	sort.Float64s(dirWeights)
	hDir := algo.Entropy(dirWeights)
	uniqueDirs := len(dirChurn)

	scaleRaw := algo.SafeLog1p(churn)
	scopeRaw := 0.5*float64(totalFiles) + 0.3*hDir + 0.2*float64(uniqueDirs)
	centralityRaw := centralitySum / float64(len(batch.Commits))
	complexityRaw := math.Sqrt(float64(uniqueDirs)*algo.SafeLog1p(churn)) * cfg.ComplexityScaleFactor
	releaseRaw := releaseProximity(lastTS, cfg)

	return schema.ImportanceVector{
		BatchID:       batch.BatchID,
		ScaleRaw:      scaleRaw,
		ScopeRaw:      scopeRaw,
		CentralityRaw: centralityRaw,
		ComplexityRaw: complexityRaw,
		TypeRaw:       maxPriority,
		ReleaseRaw:    releaseRaw,
	}
}

// parallelBatchImportanceRaw computes batchImportanceRaw for every batch,
// spread across cfg.Workers goroutines — the per-batch importance raw pass
// is one of the three points spec.md's concurrency model permits
// parallelizing. Results land in a slice indexed by batch position so the
// subsequent MAD-Z pass sees a deterministic ordering.
func parallelBatchImportanceRaw(batches []schema.Batch, cfg *schema.Config) []schema.ImportanceVector {
	results := make([]schema.ImportanceVector, len(batches))

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
				churn := batches[idx].EffectiveChurn()
				results[idx] = batchImportanceRaw(batches[idx], churn, cfg)
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

// releaseProximity implements the §4.4 release_raw rule: exp(-days to
// nearest release / release_proximity_days), or 0.5 when no calendar is
// configured.
func releaseProximity(tsUTC int64, cfg *schema.Config) float64 {
	if len(cfg.ReleaseCalendar) == 0 {
		return 0.5
	}
	var minDays float64 = -1
	for _, release := range cfg.ReleaseCalendar {
		diffSec := release - tsUTC
		if diffSec < 0 {
			diffSec = -diffSec
		}
		days := float64(diffSec) / 86400.0
		if minDays < 0 || days < minDays {
			minDays = days
		}
	}
	return math.Exp(-minDays / cfg.ReleaseProximityDays)
}
