package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fairdev/fds/internal/contract"
	mcp_internal "github.com/fairdev/fds/internal/mcp"
	"github.com/fairdev/fds/internal/resultcache"
	"github.com/fairdev/fds/schema"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleJSONL = `{"Hash":"a","AuthorEmail":"alice@x.com","CommitTSUTC":0,"DtPrevCommitSec":-1,"DtPrevAuthorSec":-1,"FilesChanged":2,"Insertions":50,"Deletions":10,"DirsTouched":["core","api"],"MsgSubject":"add feature x"}
{"Hash":"b","AuthorEmail":"alice@x.com","CommitTSUTC":300,"DtPrevCommitSec":300,"DtPrevAuthorSec":300,"FilesChanged":1,"Insertions":20,"Deletions":5,"DirsTouched":["core"],"MsgSubject":"fix bug in parser"}
`

func writeSampleCommits(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commits.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSONL), 0o644))
	return path
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := schema.DefaultConfig()

	// Validation errors are returned before the cache manager is ever
	// touched, so a nil manager is safe here.
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)
	ctx := context.Background()

	t.Run("score_developers missing commits_path", func(t *testing.T) {
		tool := s.GetTool("score_developers")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "score_developers",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "commits_path is required")
	})

	t.Run("get_batches missing file", func(t *testing.T) {
		tool := s.GetTool("get_batches")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_batches",
				Arguments: map[string]any{"commits_path": "/no/such/file.jsonl"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "failed to load commits")
	})

	t.Run("get_directory_centrality missing file", func(t *testing.T) {
		tool := s.GetTool("get_directory_centrality")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_directory_centrality",
				Arguments: map[string]any{"commits_path": "/no/such/file.jsonl"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestScoreDevelopersHandlerReturnsRankedResults(t *testing.T) {
	cfg := schema.DefaultConfig()
	// One batch gives every MAD-Z column 0, so FDS is 0; keep alice listed.
	cfg.ContributionThreshold = 0
	mgr := &resultcache.MockCacheManager{}
	mgr.On("GetResultStore").Return(contract.ResultStore(nil))
	s := mcp_internal.NewMCPServer(cfg, mgr)

	tool := s.GetTool("score_developers")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "score_developers",
			Arguments: map[string]any{
				"commits_path": writeSampleCommits(t),
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "alice@x.com")
}

func TestScoreDevelopersHandlerRespectsLimit(t *testing.T) {
	cfg := schema.DefaultConfig()
	mgr := &resultcache.MockCacheManager{}
	mgr.On("GetResultStore").Return(contract.ResultStore(nil))
	s := mcp_internal.NewMCPServer(cfg, mgr)

	tool := s.GetTool("score_developers")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "score_developers",
			Arguments: map[string]any{
				"commits_path": writeSampleCommits(t),
				"limit":        1.0,
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestGetBatchesHandlerReturnsJSON(t *testing.T) {
	cfg := schema.DefaultConfig()
	mgr := &resultcache.MockCacheManager{}
	mgr.On("GetResultStore").Return(contract.ResultStore(nil))
	s := mcp_internal.NewMCPServer(cfg, mgr)

	tool := s.GetTool("get_batches")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "get_batches",
			Arguments: map[string]any{"commits_path": writeSampleCommits(t)},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "batch_id")
}

func TestGetDirectoryCentralityHandlerReturnsJSON(t *testing.T) {
	cfg := schema.DefaultConfig()
	mgr := &resultcache.MockCacheManager{}
	mgr.On("GetResultStore").Return(contract.ResultStore(nil))
	s := mcp_internal.NewMCPServer(cfg, mgr)

	tool := s.GetTool("get_directory_centrality")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "get_directory_centrality",
			Arguments: map[string]any{"commits_path": writeSampleCommits(t)},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestScoreDevelopersHandlerUsesResultCache(t *testing.T) {
	cfg := schema.DefaultConfig()
	store := &resultcache.MockResultStore{}
	store.On("Get", mock.AnythingOfType("string")).Return([]byte(nil), false, error(nil)).Once()
	store.On("Set", mock.AnythingOfType("string"), mock.Anything).Return(error(nil)).Once()

	mgr := &resultcache.MockCacheManager{}
	mgr.On("GetResultStore").Return(contract.ResultStore(store))
	s := mcp_internal.NewMCPServer(cfg, mgr)

	tool := s.GetTool("score_developers")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "score_developers",
			Arguments: map[string]any{"commits_path": writeSampleCommits(t)},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	store.AssertExpectations(t)
}
