package mcp

import (
	"sort"
	"strings"
)

// Connection states reported in ServerInfo.Status.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// ServerInfo is a prompt-facing snapshot of one MCP server.
type ServerInfo struct {
	Name      string         `json:"name"`
	Command   string         `json:"command"`
	Args      []string       `json:"args,omitempty"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
	Tools     []ToolInfo     `json:"tools,omitempty"`
	Resources []ResourceInfo `json:"resources,omitempty"`
}

// CommandLine joins the command and its arguments.
func (s ServerInfo) CommandLine() string {
	return strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
}

// ToolInfo describes a tool exposed by a server. InputSchema is indented JSON.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	InputSchema string `json:"input_schema,omitempty"`
}

// ResourceInfo describes a direct resource exposed by a server.
type ResourceInfo struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mime_type,omitempty"`
}

// StaticServers is a fixed server list, used when the host reports MCP
// state itself instead of letting the hub connect.
type StaticServers []ServerInfo

// Servers returns the list sorted by name.
func (s StaticServers) Servers() []ServerInfo {
	out := make([]ServerInfo, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
