package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultConnectTimeout = 10 * time.Second

// Hub manages connections to multiple MCP servers
type Hub struct {
	connections    map[string]*McpConnection
	mu             sync.RWMutex
	settings       *Manager
	connectTimeout time.Duration
	clientName     string
	clientVersion  string
	log            zerolog.Logger
}

// McpConnection represents one configured MCP server and, when the
// handshake succeeded, its live client.
type McpConnection struct {
	Name      string
	Config    McpServerConfig
	Client    *client.Client
	Tools     []mcp.Tool
	Resources []mcp.Resource
	Err       error
}

// NewHub creates a new MCP Hub
func NewHub(settings *Manager, log zerolog.Logger) *Hub {
	return &Hub{
		connections:    make(map[string]*McpConnection),
		settings:       settings,
		connectTimeout: defaultConnectTimeout,
		clientName:     "ricochet-prompt",
		clientVersion:  "1.0.0",
		log:            log.With().Str("component", "mcp").Logger(),
	}
}

// SetConnectTimeout bounds each server's start-up handshake.
func (h *Hub) SetConnectTimeout(d time.Duration) {
	h.connectTimeout = d
}

// Start reads the settings file and connects every enabled server in
// parallel. A server that fails to connect is kept with its error so the
// prompt can report it; only a settings failure is returned.
func (h *Hub) Start(ctx context.Context) error {
	settings, err := h.settings.LoadSettings()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(settings.McpServers))
	for name, cfg := range settings.McpServers {
		if cfg.Disabled {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]*McpConnection, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		cfg := settings.McpServers[name]
		g.Go(func() error {
			conn := &McpConnection{Name: name, Config: cfg}
			if err := h.connect(gctx, conn); err != nil {
				h.log.Warn().Err(err).Str("server", name).Msg("failed to connect MCP server")
				conn.Err = err
			} else {
				h.log.Info().Str("server", name).Int("tools", len(conn.Tools)).Msg("connected MCP server")
			}
			results[i] = conn
			return nil
		})
	}
	g.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conn := range results {
		if old, ok := h.connections[conn.Name]; ok && old.Client != nil {
			old.Client.Close()
		}
		h.connections[conn.Name] = conn
	}
	return nil
}

func (h *Hub) connect(ctx context.Context, conn *McpConnection) error {
	ctx, cancel := context.WithTimeout(ctx, h.connectTimeout)
	defer cancel()

	mcpClient, err := client.NewStdioMCPClient(conn.Config.Command, conn.Config.EnvList(), conn.Config.Args...)
	if err != nil {
		return fmt.Errorf("failed to start MCP client for %s: %w", conn.Name, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.Capabilities = mcp.ClientCapabilities{}
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    h.clientName,
		Version: h.clientVersion,
	}
	if _, err := mcpClient.Initialize(ctx, initReq); err != nil {
		mcpClient.Close()
		return fmt.Errorf("failed to initialize MCP client for %s: %w", conn.Name, err)
	}

	tools, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		mcpClient.Close()
		return fmt.Errorf("failed to list tools for %s: %w", conn.Name, err)
	}

	// Resources are optional in the protocol.
	if resources, err := mcpClient.ListResources(ctx, mcp.ListResourcesRequest{}); err == nil {
		conn.Resources = resources.Resources
	}

	conn.Client = mcpClient
	conn.Tools = tools.Tools
	return nil
}

// Servers returns a snapshot of every configured server, sorted by name.
func (h *Hub) Servers() []ServerInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]ServerInfo, 0, len(h.connections))
	for _, conn := range h.connections {
		out = append(out, conn.info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *McpConnection) info() ServerInfo {
	info := ServerInfo{
		Name:    c.Name,
		Command: c.Config.Command,
		Args:    c.Config.Args,
		Status:  StatusConnected,
	}
	if c.Err != nil || c.Client == nil {
		info.Status = StatusDisconnected
		if c.Err != nil {
			info.Error = c.Err.Error()
		}
		return info
	}
	for _, t := range c.Tools {
		info.Tools = append(info.Tools, toolInfo(t))
	}
	for _, r := range c.Resources {
		info.Resources = append(info.Resources, ResourceInfo{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			MIMEType:    r.MIMEType,
		})
	}
	return info
}

func toolInfo(t mcp.Tool) ToolInfo {
	info := ToolInfo{Name: t.Name, Description: t.Description}

	var schema []byte
	if len(t.RawInputSchema) > 0 {
		var v any
		if err := json.Unmarshal(t.RawInputSchema, &v); err == nil {
			schema, _ = json.MarshalIndent(v, "", "  ")
		}
	} else {
		schema, _ = json.MarshalIndent(t.InputSchema, "", "  ")
	}
	info.InputSchema = string(schema)
	return info
}

// Close closes all connections
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for name, conn := range h.connections {
		if conn.Client != nil {
			conn.Client.Close()
		}
		delete(h.connections, name)
	}
	return nil
}
