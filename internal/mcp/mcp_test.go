package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LoadMissingFile(t *testing.T) {
	m := NewManager(t.TempDir())
	settings, err := m.LoadSettings()
	require.NoError(t, err)
	assert.Empty(t, settings.McpServers)
}

func TestManager_AddRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	m := NewManager(dir)

	require.NoError(t, m.AddServer("files", McpServerConfig{Command: "npx", Args: []string{"-y", "server-filesystem"}}))
	require.NoError(t, m.AddServer("time", McpServerConfig{Command: "uvx", Disabled: true}))

	settings, err := m.LoadSettings()
	require.NoError(t, err)
	require.Len(t, settings.McpServers, 2)
	assert.Equal(t, "npx", settings.McpServers["files"].Command)

	data, err := os.ReadFile(m.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mcpServers"`)

	require.NoError(t, m.RemoveServer("time"))
	assert.ErrorContains(t, m.RemoveServer("time"), "not found")
}

func TestManager_ParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), []byte("{"), 0644))

	_, err := NewManager(dir).LoadSettings()
	assert.ErrorContains(t, err, "failed to parse")
}

func TestEnvList(t *testing.T) {
	cfg := McpServerConfig{Env: map[string]string{"B": "2", "A": "1"}}
	assert.Equal(t, []string{"A=1", "B=2"}, cfg.EnvList())
}

func TestHub_FailedServerIsReported(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	require.NoError(t, m.AddServer("broken", McpServerConfig{Command: filepath.Join(dir, "no-such-binary")}))
	require.NoError(t, m.AddServer("off", McpServerConfig{Command: "whatever", Disabled: true}))

	hub := NewHub(m, zerolog.Nop())
	hub.SetConnectTimeout(2 * time.Second)
	require.NoError(t, hub.Start(context.Background()))
	defer hub.Close()

	servers := hub.Servers()
	require.Len(t, servers, 1, "disabled servers are not listed")
	assert.Equal(t, "broken", servers[0].Name)
	assert.Equal(t, StatusDisconnected, servers[0].Status)
	assert.NotEmpty(t, servers[0].Error)
	assert.Empty(t, servers[0].Tools)

	require.NoError(t, hub.Close())
	assert.Empty(t, hub.Servers())
}

func TestHub_StartSettingsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), []byte("not json"), 0644))

	hub := NewHub(NewManager(dir), zerolog.Nop())
	assert.Error(t, hub.Start(context.Background()))
}

func TestToolInfo(t *testing.T) {
	tool := mcp.NewTool("read_issue",
		mcp.WithDescription("Read a GitHub issue"),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("Issue number")),
	)

	info := toolInfo(tool)
	assert.Equal(t, "read_issue", info.Name)
	assert.Equal(t, "Read a GitHub issue", info.Description)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(info.InputSchema), &schema))
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["properties"], "number")

	raw := mcp.NewToolWithRawSchema("raw", "raw schema", json.RawMessage(`{"type":"object","properties":{"q":{"type":"string"}}}`))
	info = toolInfo(raw)
	assert.Contains(t, info.InputSchema, `"q"`)
}

func TestConnectionInfo(t *testing.T) {
	conn := &McpConnection{
		Name:   "fs",
		Config: McpServerConfig{Command: "npx", Args: []string{"-y", "fs"}},
	}
	info := conn.info()
	assert.Equal(t, StatusDisconnected, info.Status, "no client means not connected")
	assert.Equal(t, "npx -y fs", info.CommandLine())
}

func TestStaticServers(t *testing.T) {
	s := StaticServers{{Name: "b"}, {Name: "a"}}
	got := s.Servers()
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", s[0].Name, "receiver is not reordered")
}
