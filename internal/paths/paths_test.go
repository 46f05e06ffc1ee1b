package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGlobalDir_Env(t *testing.T) {
	t.Setenv("RICOCHET_HOME", "/tmp/ricochet-home")
	assert.Equal(t, "/tmp/ricochet-home", GetGlobalDir())
}

func TestGetGlobalDir_Home(t *testing.T) {
	t.Setenv("RICOCHET_HOME", "")
	t.Setenv("HOME", "/home/dev")
	assert.Equal(t, filepath.Join("/home/dev", ".ricochet"), GetGlobalDir())
}

func TestProjectPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("/w", ".ricochet"), GetProjectDir("/w"))
	assert.Equal(t, filepath.Join("/w", ".ricochet", "system-prompt-code"), GetSystemPromptOverride("/w", "code"))
	assert.Equal(t, filepath.Join("/w", ".ricochet", "modes.yaml"), GetModesFile(GetProjectDir("/w")))
}

func TestGetWorkspaceHash(t *testing.T) {
	a := GetWorkspaceHash("/work/a")
	assert.Equal(t, a, GetWorkspaceHash("/work/a"))
	assert.NotEqual(t, a, GetWorkspaceHash("/work/b"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
}
