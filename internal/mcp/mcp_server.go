// Package mcp provides the Model Context Protocol (MCP) server implementation
// for the Fair Developer Score pipeline.
package mcp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fairdev/fds/core"
	"github.com/fairdev/fds/internal/contract"
	"github.com/fairdev/fds/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the FDS MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *schema.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Fair Developer Score Server",
		"1.0.0",
		server.WithLogging(),
	)

	// --- 1. Tool: score_developers ---
	s.AddTool(mcp.NewTool("score_developers",
		mcp.WithDescription("Run the Fair Developer Score pipeline over a commit stream file and return ranked per-developer results."),
		mcp.WithString("commits_path", mcp.Description("Path to a JSONL or CSV commit stream file."), mcp.Required()),
		mcp.WithString("cluster_mode", mcp.Description("Clustering variant: forward (default) or hierarchical."), mcp.Enum("forward", "hierarchical")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of developers returned.")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg := baseCfg.Clone()
		if m := request.GetString("cluster_mode", ""); m != "" {
			cfg.ClusterMode = schema.ClusterMode(m)
		}

		commits, hash, err := loadCommitsFileWithHash(request.GetString("commits_path", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load commits: %v", err)), nil
		}

		result, err := runCached(mgr, "score_developers:"+string(cfg.ClusterMode)+":"+hash, commits, cfg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
		}

		developers := result.Developers
		if limit := request.GetInt("limit", 0); limit > 0 && limit < len(developers) {
			developers = developers[:limit]
		}

		jsonData, err := json.MarshalIndent(developers, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	})

	// --- 2. Tool: get_batches ---
	s.AddTool(mcp.NewTool("get_batches",
		mcp.WithDescription("Cluster a commit stream into work-session batches and return each batch's commit count and importance."),
		mcp.WithString("commits_path", mcp.Description("Path to a JSONL or CSV commit stream file."), mcp.Required()),
		mcp.WithString("cluster_mode", mcp.Description("Clustering variant: forward (default) or hierarchical."), mcp.Enum("forward", "hierarchical")),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg := baseCfg.Clone()
		if m := request.GetString("cluster_mode", ""); m != "" {
			cfg.ClusterMode = schema.ClusterMode(m)
		}

		commits, hash, err := loadCommitsFileWithHash(request.GetString("commits_path", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load commits: %v", err)), nil
		}

		result, err := runCached(mgr, "get_batches:"+string(cfg.ClusterMode)+":"+hash, commits, cfg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("clustering failed: %v", err)), nil
		}

		jsonData, err := json.MarshalIndent(summarizeBatches(result.Batches), "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	})

	// --- 3. Tool: get_directory_centrality ---
	s.AddTool(mcp.NewTool("get_directory_centrality",
		mcp.WithDescription("Compute PageRank centrality over the directory co-change graph derived from a commit stream."),
		mcp.WithString("commits_path", mcp.Description("Path to a JSONL or CSV commit stream file."), mcp.Required()),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg := baseCfg.Clone()

		commits, hash, err := loadCommitsFileWithHash(request.GetString("commits_path", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load commits: %v", err)), nil
		}

		result, err := runCached(mgr, "get_directory_centrality:"+hash, commits, cfg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("centrality computation failed: %v", err)), nil
		}

		jsonData, err := json.MarshalIndent(result.Centrality, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	})

	return s
}

// StartMCPServer starts the FDS MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *schema.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

// batchSummary is a compact, JSON-friendly view of a schema.Batch.
type batchSummary struct {
	BatchID     int     `json:"batch_id"`
	CommitCount int     `json:"commit_count"`
	Importance  float64 `json:"importance"`
	EffortSum   float64 `json:"effort_sum"`
	FirstCommit int64   `json:"first_commit_ts_utc"`
	LastCommit  int64   `json:"last_commit_ts_utc"`
}

func summarizeBatches(batches []schema.Batch) []batchSummary {
	out := make([]batchSummary, len(batches))
	for i, b := range batches {
		s := batchSummary{BatchID: b.BatchID, CommitCount: len(b.Commits)}
		for j, c := range b.Commits {
			s.Importance = c.Importance
			s.EffortSum += c.Effort
			if j == 0 {
				s.FirstCommit = c.CommitTSUTC
			}
			s.LastCommit = c.CommitTSUTC
		}
		out[i] = s
	}
	return out
}

// loadCommitsFileWithHash loads commits from path and also returns a content
// hash suitable for keying the result cache.
func loadCommitsFileWithHash(path string) ([]schema.Commit, string, error) {
	if path == "" {
		return nil, "", fmt.Errorf("commits_path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %q: %w", path, err)
	}
	sum := sha256.Sum256(raw)
	hash := hex.EncodeToString(sum[:])

	reader := strings.NewReader(string(raw))
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		commits, err := core.LoadCSV(reader)
		return commits, hash, err
	}
	commits, err := core.LoadJSONL(reader)
	return commits, hash, err
}

// runCached executes the pipeline, consulting mgr's result store first and
// populating it on a miss. cacheKey should include anything that affects
// the output besides the commit content hash (e.g. the cluster mode); a
// SHA-256 hash of the JSON-encoded cfg is appended to it here as well.
func runCached(mgr contract.CacheManager, cacheKey string, commits []schema.Commit, cfg *schema.Config) (*core.Result, error) {
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
			var result core.Result
			if err := json.Unmarshal(cached, &result); err == nil {
				return &result, nil
			}
		}
	}

	result, err := core.Run(commits, cfg)
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
