package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igoryan-dao/ricochet-prompt/internal/protocol"
)

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServer_ComposeInstructions(t *testing.T) {
	h, _ := newTestHandler(t)
	s := NewMCPServer(h)

	res, err := s.handleComposeInstructions(context.Background(), toolRequest(protocol.TypeComposeInstructions, map[string]any{
		"global_instructions": "G",
		"language":            "es",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := resultText(t, res)
	assert.Contains(t, text, `speak and think in the "es" language`)
	assert.Contains(t, text, "Global Instructions:\nG")
}

func TestMCPServer_BuildSystemPrompt(t *testing.T) {
	h, cwd := newTestHandler(t)
	s := NewMCPServer(h)

	res, err := s.handleBuildSystemPrompt(context.Background(), toolRequest(protocol.TypeBuildSystemPrompt, map[string]any{"mode": "ask"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Current Working Directory: "+cwd)

	res, err = s.handleBuildSystemPrompt(context.Background(), toolRequest(protocol.TypeBuildSystemPrompt, map[string]any{"cwd": cwd + "/missing-dir-is-fine"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestMCPServer_EstimateTokens(t *testing.T) {
	h, _ := newTestHandler(t)
	s := NewMCPServer(h)

	res, err := s.handleEstimateTokens(context.Background(), toolRequest(protocol.TypeEstimateTokens, map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleEstimateTokens(context.Background(), toolRequest(protocol.TypeEstimateTokens, map[string]any{"text": "abcd"}))
	require.NoError(t, err)

	var stats map[string]int
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &stats))
	assert.Equal(t, 4, stats["chars"])
}

func TestMCPServer_ModesResource(t *testing.T) {
	h, _ := newTestHandler(t)
	s := NewMCPServer(h)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "ricochet://modes"
	contents, err := s.handleReadModes(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	var result protocol.ModesResult
	require.NoError(t, json.Unmarshal([]byte(text.Text), &result))
	assert.Equal(t, "code", result.Active)
	assert.NotEmpty(t, result.Modes)
}

func TestMCPServer_SystemPromptPrompt(t *testing.T) {
	h, _ := newTestHandler(t)
	s := NewMCPServer(h)

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"mode": "debug"}
	res, err := s.handleGetSystemPrompt(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, res.Description, "debug")
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "expert software debugger")
}
