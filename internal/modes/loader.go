package modes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles parsing of mode configuration files
type Loader struct{}

// Load parses a YAML file into a Config struct. Every mode must carry a slug
// and a role definition.
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Parse(data)
}

// Parse decodes modes YAML.
func (l *Loader) Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse modes config: %w", err)
	}

	for i, m := range cfg.CustomModes {
		if m.Slug == "" {
			return nil, fmt.Errorf("custom mode %d: missing slug", i)
		}
		if m.RoleDefinition == "" {
			return nil, fmt.Errorf("custom mode %q: missing role_definition", m.Slug)
		}
		if m.Name == "" {
			cfg.CustomModes[i].Name = m.Slug
		}
	}
	return &cfg, nil
}
