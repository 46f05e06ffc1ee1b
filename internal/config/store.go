package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
)

// SettingsFileName is the settings file inside the global directory.
const SettingsFileName = "settings.json"

// PromptSettings controls how system prompts are assembled
type PromptSettings struct {
	Mode                    string                           `json:"mode"`
	CustomInstructions      string                           `json:"custom_instructions,omitempty"` // Global instructions for every mode
	Language                string                           `json:"language,omitempty"`            // e.g. "es", empty means no preference
	DiffEnabled             bool                             `json:"diff_enabled"`
	FuzzyMatchThreshold     float64                          `json:"fuzzy_match_threshold"`
	SupportsComputerUse     bool                             `json:"supports_computer_use"`
	BrowserViewportSize     string                           `json:"browser_viewport_size"`
	EnableMcpServerCreation bool                             `json:"enable_mcp_server_creation"`
	Experiments             map[string]bool                  `json:"experiments,omitempty"`
	CustomModePrompts       map[string]modes.PromptComponent `json:"custom_mode_prompts,omitempty"`
}

// MCPSettings controls the MCP hub
type MCPSettings struct {
	Enabled               bool   `json:"enabled"`
	SettingsDir           string `json:"settings_dir,omitempty"` // Defaults to the global directory
	ConnectTimeoutSeconds int    `json:"connect_timeout_seconds"`
}

type Settings struct {
	Prompt PromptSettings `json:"prompt"`
	MCP    MCPSettings    `json:"mcp"`
	Theme  string         `json:"theme"`
}

// Defaults returns the settings written on first run.
func Defaults() Settings {
	return Settings{
		Prompt: PromptSettings{
			Mode:                modes.DefaultMode().Slug,
			DiffEnabled:         true,
			FuzzyMatchThreshold: 1.0,
			BrowserViewportSize: "900x600",
		},
		MCP: MCPSettings{
			Enabled:               true,
			ConnectTimeoutSeconds: 10,
		},
		Theme: "dark",
	}
}

type Store struct {
	mu       sync.RWMutex
	fileMu   sync.Mutex // flock does not exclude goroutines sharing one handle
	path     string
	lock     *flock.Flock
	settings *Settings
}

// NewStore opens settings.json in dir, creating it with defaults when it
// does not exist yet.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	path := filepath.Join(dir, SettingsFileName)
	defaults := Defaults()
	store := &Store{
		path:     path,
		lock:     flock.New(path + ".lock"),
		settings: &defaults,
	}

	if err := store.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		if err := store.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return store, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("failed to lock settings: %w", err)
	}
	defer s.lock.Unlock()

	settings, err := s.read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = &settings
	s.mu.Unlock()
	return nil
}

// read parses the settings file over Defaults so fields missing from the
// file keep their defaults. The caller holds the file lock.
func (s *Store) read() (Settings, error) {
	settings := Defaults()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return settings, err
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings.json: %w", err)
	}
	return settings, nil
}

// write replaces the settings file through a temp file. The caller holds
// the exclusive file lock.
func (s *Store) write(settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Save writes the in-memory settings while holding the inter-process lock.
func (s *Store) Save() error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock settings: %w", err)
	}
	defer s.lock.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.write(s.settings)
}

// Get returns a copy of the stored settings with environment overrides
// applied. Overrides are never persisted.
func (s *Store) Get() Settings {
	settings := s.Stored()
	applyEnv(&settings)
	return settings
}

// Stored returns a copy of the settings as last read from or written to
// disk, without environment overrides.
func (s *Store) Stored() Settings {
	s.mu.RLock()
	settings := *s.settings
	s.mu.RUnlock()

	settings.Prompt.Experiments = maps.Clone(settings.Prompt.Experiments)
	settings.Prompt.CustomModePrompts = maps.Clone(settings.Prompt.CustomModePrompts)
	return settings
}

// Update re-reads the file, applies fn and writes the result, all under the
// exclusive lock, so changes made by other processes since this store was
// loaded are kept.
func (s *Store) Update(fn func(*Settings)) error {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock settings: %w", err)
	}
	defer s.lock.Unlock()

	settings, err := s.read()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	fn(&settings)
	if err := s.write(&settings); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = &settings
	s.mu.Unlock()
	return nil
}
