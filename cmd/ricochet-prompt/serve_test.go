package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igoryan-dao/ricochet-prompt/internal/config"
	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
)

func TestTrackMode_EnvOverrideIsNotPersisted(t *testing.T) {
	cwd := t.TempDir()
	global := t.TempDir()
	t.Setenv(config.EnvMode, "ask")

	store, err := config.NewStore(global)
	require.NoError(t, err)
	m := modes.NewManager(cwd, global, zerolog.Nop())

	trackMode(m, store, zerolog.Nop())
	assert.Equal(t, "ask", m.GetActiveMode().Slug)

	projectDir := filepath.Join(cwd, ".ricochet")
	require.NoError(t, os.MkdirAll(projectDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "modes.yaml"),
		[]byte("custom_modes:\n  - slug: review\n    role_definition: You review code.\n"), 0644))
	require.NoError(t, m.Reload())

	fresh, err := config.NewStore(global)
	require.NoError(t, err)
	assert.Equal(t, "code", fresh.Stored().Prompt.Mode)

	require.NoError(t, m.SetMode("review"))
	fresh, err = config.NewStore(global)
	require.NoError(t, err)
	assert.Equal(t, "review", fresh.Stored().Prompt.Mode)
}
