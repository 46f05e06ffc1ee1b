package modes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/igoryan-dao/ricochet-prompt/internal/paths"
)

// ErrModeNotFound is returned when a slug is neither built-in nor custom.
var ErrModeNotFound = errors.New("mode not found")

const watchInterval = 2 * time.Second

// Manager tracks the active mode and the custom mode registry loaded from
// the global and project modes.yaml files.
type Manager struct {
	cwd          string
	globalDir    string
	activeMode   string
	customModes  []Mode
	onModeChange func(slug string)
	mu           sync.RWMutex
	loader       *Loader
	modTimes     map[string]time.Time
	log          zerolog.Logger
}

// NewManager creates a manager for the workspace cwd. globalDir is usually
// paths.GetGlobalDir().
func NewManager(cwd, globalDir string, log zerolog.Logger) *Manager {
	m := &Manager{
		cwd:        cwd,
		globalDir:  globalDir,
		activeMode: DefaultMode().Slug,
		loader:     &Loader{},
		modTimes:   make(map[string]time.Time),
		log:        log.With().Str("component", "modes").Logger(),
	}
	if err := m.Reload(); err != nil {
		m.log.Warn().Err(err).Msg("failed to load custom modes")
	}
	return m
}

// SetOnModeChange registers fn to run after each successful SetMode.
// Reloading the registry does not call it.
func (m *Manager) SetOnModeChange(fn func(slug string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onModeChange = fn
}

func (m *Manager) configPaths() []struct{ path, source string } {
	return []struct{ path, source string }{
		{paths.GetModesFile(m.globalDir), SourceGlobal},
		{paths.GetModesFile(paths.GetProjectDir(m.cwd)), SourceProject},
	}
}

// Reload re-reads both modes files. A missing file contributes nothing; a
// malformed file aborts the reload and keeps the previous registry.
func (m *Manager) Reload() error {
	var merged []Mode
	index := make(map[string]int)
	modTimes := make(map[string]time.Time)

	for _, cp := range m.configPaths() {
		info, err := os.Stat(cp.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}

		cfg, err := m.loader.Load(cp.path)
		if err != nil {
			return fmt.Errorf("%s: %w", cp.path, err)
		}
		modTimes[cp.path] = info.ModTime()

		for _, mode := range cfg.CustomModes {
			mode.Source = cp.source
			if i, ok := index[mode.Slug]; ok {
				merged[i] = mode
				continue
			}
			index[mode.Slug] = len(merged)
			merged = append(merged, mode)
		}
	}

	m.mu.Lock()
	m.customModes = merged
	m.modTimes = modTimes
	m.mu.Unlock()

	m.log.Debug().Int("custom_modes", len(merged)).Msg("modes reloaded")
	return nil
}

func (m *Manager) changed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, cp := range m.configPaths() {
		info, err := os.Stat(cp.path)
		last, known := m.modTimes[cp.path]
		switch {
		case err != nil && known:
			return true
		case err == nil && (!known || info.ModTime().After(last)):
			return true
		}
	}
	return false
}

// StartWatcher polls the modes files until ctx is done.
func (m *Manager) StartWatcher(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !m.changed() {
					continue
				}
				if err := m.Reload(); err != nil {
					m.log.Warn().Err(err).Msg("failed to reload custom modes")
				}
			}
		}
	}()
}

// CustomModes returns a copy of the custom mode registry.
func (m *Manager) CustomModes() []Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Mode, len(m.customModes))
	copy(out, m.customModes)
	return out
}

// AllModes returns built-in and custom modes.
func (m *Manager) AllModes() []Mode {
	return AllModes(m.CustomModes())
}

func (m *Manager) GetActiveMode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if mode, ok := FindMode(m.activeMode, m.customModes); ok {
		return mode
	}
	return DefaultMode()
}

func (m *Manager) SetMode(slug string) error {
	m.mu.Lock()
	if _, ok := FindMode(slug, m.customModes); !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrModeNotFound, slug)
	}
	m.activeMode = slug
	cb := m.onModeChange
	m.mu.Unlock()

	if cb != nil {
		cb(slug)
	}
	return nil
}
