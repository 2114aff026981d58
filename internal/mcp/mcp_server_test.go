package mcp_test

import (
	"context"
	"testing"

	"github.com/assiskamu/formula-menang/internal/contract"
	mcp_internal "github.com/assiskamu/formula-menang/internal/mcp"
	"github.com/assiskamu/formula-menang/internal/overstore"
	"github.com/assiskamu/formula-menang/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		DataDir:  "testdata/does-not-exist",
		Party:    contract.DefaultParty,
		Scenario: contract.DefaultScenario,
	}

	store, err := overstore.NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	s := mcp_internal.NewMCPServer(baseCfg, store)

	ctx := context.Background()

	t.Run("get_seat_detail missing seat_id", func(t *testing.T) {
		tool := s.GetTool("get_seat_detail")
		require.NotNil(t, tool, "Tool get_seat_detail should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_seat_detail",
				Arguments: map[string]any{
					"seat_id": "", // Missing required
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "seat_id is required")
	})

	t.Run("get_seat_metrics invalid grain", func(t *testing.T) {
		tool := s.GetTool("get_seat_metrics")
		require.NotNil(t, tool, "Tool get_seat_metrics should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_seat_metrics",
				Arguments: map[string]any{
					"grain": "negeri", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid grain")
	})

	t.Run("get_baseline_validation missing data dir", func(t *testing.T) {
		tool := s.GetTool("get_baseline_validation")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_baseline_validation",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})
}
