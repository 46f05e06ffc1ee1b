package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// SettingsFileName is the MCP settings file inside the global directory.
const SettingsFileName = "mcp_settings.json"

// McpSettings represents the root of mcp_settings.json
type McpSettings struct {
	McpServers map[string]McpServerConfig `json:"mcpServers"`
}

// McpServerConfig represents the configuration for a single MCP server
type McpServerConfig struct {
	Command     string            `json:"command"`
	Args        []string          `json:"args"`
	Env         map[string]string `json:"env,omitempty"`
	Disabled    bool              `json:"disabled,omitempty"`
	AutoApprove []string          `json:"autoApprove,omitempty"`
}

// EnvList renders Env as KEY=VALUE pairs in key order.
func (c McpServerConfig) EnvList() []string {
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+c.Env[k])
	}
	return out
}

// Manager handles reading and writing to the MCP settings file.
type Manager struct {
	configPath string
	mu         sync.RWMutex
}

// NewManager creates a new MCP Manager.
func NewManager(configDir string) *Manager {
	return &Manager{
		configPath: filepath.Join(configDir, SettingsFileName),
	}
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.configPath
}

// LoadSettings reads the existing MCP settings. A missing file yields an
// empty server map.
func (m *Manager) LoadSettings() (*McpSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &McpSettings{McpServers: make(map[string]McpServerConfig)}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", SettingsFileName, err)
	}

	var settings McpSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SettingsFileName, err)
	}
	if settings.McpServers == nil {
		settings.McpServers = make(map[string]McpServerConfig)
	}
	return &settings, nil
}

// SaveSettings writes the MCP settings to disk.
func (m *Manager) SaveSettings(settings *McpSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mcp settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create mcp settings dir: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", SettingsFileName, err)
	}
	return nil
}

// AddServer adds or replaces an MCP server configuration.
func (m *Manager) AddServer(name string, config McpServerConfig) error {
	settings, err := m.LoadSettings()
	if err != nil {
		return err
	}
	settings.McpServers[name] = config
	return m.SaveSettings(settings)
}

// RemoveServer removes an MCP server configuration.
func (m *Manager) RemoveServer(name string) error {
	settings, err := m.LoadSettings()
	if err != nil {
		return err
	}
	if _, exists := settings.McpServers[name]; !exists {
		return fmt.Errorf("server '%s' not found", name)
	}
	delete(settings.McpServers, name)
	return m.SaveSettings(settings)
}
