package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/igoryan-dao/ricochet-prompt/internal/protocol"
)

// getArgs extracts arguments from request as map[string]any
func getArgs(request mcp.CallToolRequest) map[string]any {
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		return args
	}
	return make(map[string]any)
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// MCPServer exposes the handler's operations as MCP tools, resources and
// prompts so any MCP client can fetch Ricochet prompts.
type MCPServer struct {
	handler   *Handler
	mcpServer *mcpserver.MCPServer
}

func NewMCPServer(h *Handler) *MCPServer {
	s := &MCPServer{handler: h}

	mcpServer := mcpserver.NewMCPServer(
		"ricochet-prompt",
		Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithPromptCapabilities(false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)
	s.registerPrompts(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *MCPServer) registerTools(mcpServer *mcpserver.MCPServer) {
	buildTool := mcp.NewTool(protocol.TypeBuildSystemPrompt,
		mcp.WithDescription("Build the full system prompt for a mode"),
		mcp.WithString("mode", mcp.Description("Mode slug, defaults to the active mode")),
		mcp.WithString("language", mcp.Description("Language tag such as es")),
		mcp.WithString("cwd", mcp.Description("Workspace directory, defaults to the server's")),
	)
	mcpServer.AddTool(buildTool, s.handleBuildSystemPrompt)

	composeTool := mcp.NewTool(protocol.TypeComposeInstructions,
		mcp.WithDescription("Compose the user's custom instructions block"),
		mcp.WithString("mode_instructions", mcp.Description("Mode-specific instructions")),
		mcp.WithString("global_instructions", mcp.Description("Instructions for every mode")),
		mcp.WithString("mode", mcp.Description("Mode slug used to pick rule files")),
		mcp.WithString("language", mcp.Description("Language tag such as es")),
		mcp.WithString("cwd", mcp.Description("Workspace directory, defaults to the server's")),
	)
	mcpServer.AddTool(composeTool, s.handleComposeInstructions)

	tokensTool := mcp.NewTool(protocol.TypeEstimateTokens,
		mcp.WithDescription("Estimate the token count of a text"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to measure")),
	)
	mcpServer.AddTool(tokensTool, s.handleEstimateTokens)
}

func (s *MCPServer) registerResources(mcpServer *mcpserver.MCPServer) {
	modesRes := mcp.NewResource("ricochet://modes", "Available modes",
		mcp.WithResourceDescription("Built-in and custom modes with the active one"),
		mcp.WithMIMEType("application/json"),
	)
	mcpServer.AddResource(modesRes, s.handleReadModes)
}

func (s *MCPServer) registerPrompts(mcpServer *mcpserver.MCPServer) {
	systemPrompt := mcp.NewPrompt("ricochet/system-prompt",
		mcp.WithPromptDescription("Ricochet system prompt for a mode"),
		mcp.WithArgument("mode", mcp.ArgumentDescription("Mode slug, defaults to the active mode")),
	)
	mcpServer.AddPrompt(systemPrompt, s.handleGetSystemPrompt)
}

func (s *MCPServer) call(ctx context.Context, msgType string, payload any) (any, error) {
	_, result, err := s.handler.dispatch(ctx, protocol.RPCMessage{
		Type:    msgType,
		Payload: protocol.EncodeRPC(payload),
	})
	return result, err
}

func (s *MCPServer) handleBuildSystemPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	params := protocol.BuildSystemPromptParams{
		Cwd:  stringArg(args, "cwd"),
		Mode: stringArg(args, "mode"),
	}
	if lang, ok := args["language"].(string); ok {
		params.Language = &lang
	}

	result, err := s.call(ctx, protocol.TypeBuildSystemPrompt, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result.(protocol.SystemPromptResult).Prompt), nil
}

func (s *MCPServer) handleComposeInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := getArgs(request)
	result, err := s.call(ctx, protocol.TypeComposeInstructions, protocol.ComposeInstructionsParams{
		Cwd:                stringArg(args, "cwd"),
		Mode:               stringArg(args, "mode"),
		ModeInstructions:   stringArg(args, "mode_instructions"),
		GlobalInstructions: stringArg(args, "global_instructions"),
		Language:           stringArg(args, "language"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result.(protocol.InstructionsResult).Instructions), nil
}

func (s *MCPServer) handleEstimateTokens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := getArgs(request)["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required"), nil
	}
	result, err := s.call(ctx, protocol.TypeEstimateTokens, protocol.EstimateTokensParams{Text: text})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *MCPServer) handleReadModes(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	result, err := s.call(ctx, protocol.TypeListModes, nil)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *MCPServer) handleGetSystemPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	params := protocol.BuildSystemPromptParams{Mode: request.Params.Arguments["mode"]}
	result, err := s.call(ctx, protocol.TypeBuildSystemPrompt, params)
	if err != nil {
		return nil, err
	}
	built := result.(protocol.SystemPromptResult)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Ricochet system prompt (%s mode)", built.Mode),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(built.Prompt),
			},
		},
	}, nil
}

// ServeStdio runs the MCP server on stdin and stdout until the client
// disconnects.
func (s *MCPServer) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcpServer)
}
