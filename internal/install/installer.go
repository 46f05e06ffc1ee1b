// Package install registers ricochet-prompt as an MCP server with the MCP
// clients found on this machine.
package install

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ServerName is the key written under mcpServers.
const ServerName = "ricochet-prompt"

// ConfigPath represents a known location for MCP settings
type ConfigPath struct {
	Name string
	Path string
}

// UserConfigPaths returns candidate MCP client configs under home for goos.
func UserConfigPaths(home, goos string) []ConfigPath {
	paths := []ConfigPath{
		{Name: "Cursor", Path: filepath.Join(home, ".cursor", "mcp.json")},
		{Name: "Claude Code CLI", Path: filepath.Join(home, ".claude.json")},
		{Name: "Kiro", Path: filepath.Join(home, ".kiro", "settings", "mcp.json")},
	}

	switch goos {
	case "darwin":
		support := filepath.Join(home, "Library", "Application Support")
		paths = append(paths,
			ConfigPath{Name: "Claude Desktop", Path: filepath.Join(support, "Claude", "claude_desktop_config.json")},
			ConfigPath{Name: "Cline (VS Code)", Path: filepath.Join(support, "Code", "User", "globalStorage", "saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json")},
		)
	case "linux":
		config := filepath.Join(home, ".config")
		paths = append(paths,
			ConfigPath{Name: "Claude Desktop", Path: filepath.Join(config, "Claude", "claude_desktop_config.json")},
			ConfigPath{Name: "Cline (VS Code)", Path: filepath.Join(config, "Code", "User", "globalStorage", "saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json")},
		)
	}
	return paths
}

// MCPServerConfig represents individual server settings
type MCPServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// ServerEntry is the entry that runs binaryPath as an MCP server for the
// workspace cwd.
func ServerEntry(binaryPath, cwd string) MCPServerConfig {
	return MCPServerConfig{
		Command: binaryPath,
		Args:    []string{"serve", "--mcp", "--cwd", cwd},
	}
}

// Install patches every existing config in candidates and returns the names
// of the clients it configured. Configs that do not exist are skipped.
func Install(candidates []ConfigPath, entry MCPServerConfig, log zerolog.Logger) ([]string, error) {
	var installed []string

	for _, cfg := range candidates {
		if _, err := os.Stat(cfg.Path); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		log.Info().Str("client", cfg.Name).Str("path", cfg.Path).Msg("patching MCP config")
		if err := patchConfigFile(cfg.Path, entry); err != nil {
			log.Warn().Err(err).Str("client", cfg.Name).Msg("failed to patch MCP config")
			continue
		}
		installed = append(installed, cfg.Name)
	}

	if len(installed) == 0 {
		return nil, fmt.Errorf("no supported MCP configurations found")
	}
	return installed, nil
}

// patchConfigFile sets mcpServers[ServerName] and leaves every other key,
// including other servers, untouched. A file that is not a JSON object is
// reported instead of overwritten.
func patchConfigFile(path string, entry MCPServerConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	root := map[string]json.RawMessage{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &root); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if root == nil {
		root = map[string]json.RawMessage{}
	}

	servers := map[string]json.RawMessage{}
	if raw, ok := root["mcpServers"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return fmt.Errorf("parse mcpServers in %s: %w", path, err)
		}
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	servers[ServerName] = encoded

	if root["mcpServers"], err = json.Marshal(servers); err != nil {
		return err
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, info.Mode().Perm())
}
