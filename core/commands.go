package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fairdev/fds/internal/contract"
	"github.com/fairdev/fds/internal/outwriter"
	"github.com/fairdev/fds/schema"
)

// LoadCommitsFile loads a commit stream from path, sniffing JSONL vs CSV by
// file extension, the way loadCommitsFileWithHash sniffs input for the MCP
// surface.
func LoadCommitsFile(path string) ([]schema.Commit, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadCSV(file)
	}
	return LoadJSONL(file)
}

// runWithCache executes Run over commits, consulting mgr's result store
// first and populating it on a miss. cacheKey should fold in anything that
// affects output besides the commit content (e.g. cluster mode); a SHA-256
// hash of the JSON-encoded cfg is appended to it here as well.
func runWithCache(mgr contract.CacheManager, cacheKey string, commits []schema.Commit, cfg *schema.Config) (*Result, error) {
	if encoded, err := json.Marshal(cfg); err == nil {
		sum := sha256.Sum256(encoded)
		cacheKey += ":" + hex.EncodeToString(sum[:])
	}
	var store contract.ResultStore
	if mgr != nil {
		store = mgr.GetResultStore()
	}
	if store != nil {
		if cached, found, err := store.Get(cacheKey); err == nil && found {
			var result Result
			if err := json.Unmarshal(cached, &result); err == nil {
				return &result, nil
			}
		}
	}

	result, err := Run(commits, cfg)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if encoded, err := json.Marshal(result); err == nil {
			_ = store.Set(cacheKey, encoded)
		}
	}
	return result, nil
}

// cacheKeyForFile hashes a commit stream file's content for use as a result
// cache key.
func cacheKeyForFile(prefix, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %q: %w", path, err)
	}
	sum := sha256.Sum256(raw)
	return prefix + ":" + hex.EncodeToString(sum[:]), nil
}

// ExecuteScore runs the full C1-C5 pipeline over commitsPath and prints
// ranked developer results using the configured output format.
func ExecuteScore(_ context.Context, commitsPath string, cfg *schema.Config, mgr contract.CacheManager) error {
	start := time.Now()

	commits, err := LoadCommitsFile(commitsPath)
	if err != nil {
		return err
	}

	cacheKey, err := cacheKeyForFile("score:"+string(cfg.ClusterMode), commitsPath)
	if err != nil {
		return err
	}

	result, err := runWithCache(mgr, cacheKey, commits, cfg)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteDevelopers(result.Developers, cfg, time.Since(start))
}

// ExecuteBatches runs the full pipeline over commitsPath and prints each
// work-session batch's commit count, importance, and effort.
func ExecuteBatches(_ context.Context, commitsPath string, cfg *schema.Config, mgr contract.CacheManager) error {
	commits, err := LoadCommitsFile(commitsPath)
	if err != nil {
		return err
	}

	cacheKey, err := cacheKeyForFile("batches:"+string(cfg.ClusterMode), commitsPath)
	if err != nil {
		return err
	}

	result, err := runWithCache(mgr, cacheKey, commits, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%-8s %-12s %-12s %-12s\n", "Batch", "Commits", "Importance", "EffortSum")
	for _, b := range result.Batches {
		var importance, effortSum float64
		for _, c := range b.Commits {
			importance = c.Importance
			effortSum += c.Effort
		}
		fmt.Printf("%-8d %-12d %-12.*f %-12.*f\n", b.BatchID, len(b.Commits), cfg.Precision, importance, cfg.Precision, effortSum)
	}
	return nil
}

// ExecuteCentrality runs the full pipeline over commitsPath and prints each
// directory's PageRank co-change centrality score.
func ExecuteCentrality(_ context.Context, commitsPath string, cfg *schema.Config, mgr contract.CacheManager) error {
	commits, err := LoadCommitsFile(commitsPath)
	if err != nil {
		return err
	}

	cacheKey, err := cacheKeyForFile("centrality", commitsPath)
	if err != nil {
		return err
	}

	result, err := runWithCache(mgr, cacheKey, commits, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%-40s %s\n", "Directory", "Centrality")
	for dir, score := range result.Centrality {
		fmt.Printf("%-40s %.*f\n", dir, cfg.Precision, score)
	}
	return nil
}
