package modes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsToolAllowed(t *testing.T) {
	code, _ := FindMode("code", nil)
	ask, _ := FindMode("ask", nil)

	assert.True(t, IsToolAllowed(code, "write_to_file", nil))
	assert.False(t, IsToolAllowed(ask, "write_to_file", nil))
	assert.True(t, IsToolAllowed(ask, "read_file", nil))
	assert.True(t, IsToolAllowed(ask, "attempt_completion", nil), "always-available tools ignore groups")
	assert.False(t, IsToolAllowed(code, "no_such_tool", nil))

	assert.False(t, IsToolAllowed(code, "search_and_replace", nil))
	assert.True(t, IsToolAllowed(code, "search_and_replace", map[string]bool{"search_and_replace": true}))
	assert.False(t, IsToolAllowed(ask, "search_and_replace", map[string]bool{"search_and_replace": true}))
}

func TestCanEditFile(t *testing.T) {
	test, _ := FindMode("test", nil)
	code, _ := FindMode("code", nil)

	assert.True(t, CanEditFile(code, "main.go"))
	assert.True(t, CanEditFile(test, "internal/x/x_test.go"))
	assert.True(t, CanEditFile(test, "README.md"))
	assert.False(t, CanEditFile(test, "main.go"))

	broken := Mode{FileRestrictions: []FileRestriction{{Regex: "("}}}
	assert.False(t, CanEditFile(broken, "anything"))
}

func TestResolveRole(t *testing.T) {
	custom := []Mode{
		{Slug: "reviewer", Name: "Reviewer", RoleDefinition: "You review code.", CustomInstructions: "Be strict."},
		{Slug: "code", Name: "My Code", RoleDefinition: "Custom code role."},
	}

	t.Run("builtin", func(t *testing.T) {
		sel := ResolveRole("ask", nil, nil)
		assert.Equal(t, RoleSourceBuiltin, sel.Source)
		assert.Equal(t, "ask", sel.Mode.Slug)
		assert.Contains(t, sel.RoleDefinition, "technical assistant")
	})

	t.Run("custom shadows builtin", func(t *testing.T) {
		sel := ResolveRole("code", custom, nil)
		assert.Equal(t, RoleSourceCustom, sel.Source)
		assert.Equal(t, "Custom code role.", sel.RoleDefinition)
	})

	t.Run("override wins", func(t *testing.T) {
		overrides := map[string]PromptComponent{"reviewer": {RoleDefinition: "Override role."}}
		sel := ResolveRole("reviewer", custom, overrides)
		assert.Equal(t, RoleSourceOverride, sel.Source)
		assert.Equal(t, "Override role.", sel.RoleDefinition)
		assert.Equal(t, "Be strict.", sel.CustomInstructions, "instructions fall through independently")
	})

	t.Run("empty override ignored", func(t *testing.T) {
		overrides := map[string]PromptComponent{"ask": {CustomInstructions: "Answer briefly."}}
		sel := ResolveRole("ask", nil, overrides)
		assert.Equal(t, RoleSourceBuiltin, sel.Source)
		assert.Equal(t, "Answer briefly.", sel.CustomInstructions)
	})

	t.Run("unknown falls back to default", func(t *testing.T) {
		sel := ResolveRole("nope", custom, nil)
		assert.Equal(t, RoleSourceDefault, sel.Source)
		assert.Equal(t, DefaultMode().Slug, sel.Mode.Slug)
		assert.Equal(t, "default", sel.Source.String())
	})

	t.Run("builtin custom instructions", func(t *testing.T) {
		sel := ResolveRole("tutor", nil, nil)
		assert.Contains(t, sel.CustomInstructions, "Operating Rules")
	})
}

func TestAllModes(t *testing.T) {
	all := AllModes([]Mode{
		{Slug: "ask", RoleDefinition: "Replaced."},
		{Slug: "extra", RoleDefinition: "Extra."},
	})
	require.Len(t, all, len(BuiltinModes)+1)
	assert.Equal(t, "code", all[0].Slug)
	assert.Equal(t, "Replaced.", all[2].RoleDefinition)
	assert.Equal(t, "extra", all[len(all)-1].Slug)
}

func TestLoaderParse(t *testing.T) {
	l := &Loader{}

	cfg, err := l.Parse([]byte(`
custom_modes:
  - slug: docs
    role_definition: You write documentation.
    tool_groups: [read, edit]
    file_restrictions:
      - regex: \.md$
        description: Markdown only
`))
	require.NoError(t, err)
	require.Len(t, cfg.CustomModes, 1)
	assert.Equal(t, "docs", cfg.CustomModes[0].Name, "name defaults to slug")
	assert.Equal(t, []string{"read", "edit"}, cfg.CustomModes[0].ToolGroups)
	assert.Equal(t, `\.md$`, cfg.CustomModes[0].FileRestrictions[0].Regex)

	_, err = l.Parse([]byte("custom_modes:\n  - name: nameless\n    role_definition: x\n"))
	assert.ErrorContains(t, err, "missing slug")

	_, err = l.Parse([]byte("custom_modes:\n  - slug: empty\n"))
	assert.ErrorContains(t, err, "missing role_definition")

	_, err = l.Parse([]byte("custom_modes: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse modes config")
}

func writeModes(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modes.yaml"), []byte(body), 0644))
}

func TestManager(t *testing.T) {
	cwd := t.TempDir()
	global := t.TempDir()

	writeModes(t, global, `
custom_modes:
  - slug: shared
    name: Global Shared
    role_definition: global version
  - slug: global-only
    role_definition: only in global
`)
	writeModes(t, filepath.Join(cwd, ".ricochet"), `
custom_modes:
  - slug: shared
    name: Project Shared
    role_definition: project version
`)

	m := NewManager(cwd, global, zerolog.Nop())

	custom := m.CustomModes()
	require.Len(t, custom, 2)
	assert.Equal(t, "project version", custom[0].RoleDefinition)
	assert.Equal(t, SourceProject, custom[0].Source)
	assert.Equal(t, SourceGlobal, custom[1].Source)

	assert.Equal(t, "code", m.GetActiveMode().Slug)

	var notified string
	m.SetOnModeChange(func(slug string) { notified = slug })

	require.NoError(t, m.SetMode("shared"))
	assert.Equal(t, "shared", notified)
	assert.Equal(t, "Project Shared", m.GetActiveMode().Name)

	err := m.SetMode("missing")
	assert.True(t, errors.Is(err, ErrModeNotFound))
	assert.Equal(t, "shared", m.GetActiveMode().Slug)
}

func TestManagerReloadKeepsRegistryOnError(t *testing.T) {
	cwd := t.TempDir()
	projectDir := filepath.Join(cwd, ".ricochet")
	writeModes(t, projectDir, "custom_modes:\n  - slug: one\n    role_definition: first\n")

	m := NewManager(cwd, t.TempDir(), zerolog.Nop())
	require.Len(t, m.CustomModes(), 1)
	assert.False(t, m.changed())

	writeModes(t, projectDir, "custom_modes: [broken")
	assert.Error(t, m.Reload())
	assert.Len(t, m.CustomModes(), 1)

	var notified []string
	m.SetOnModeChange(func(slug string) { notified = append(notified, slug) })
	writeModes(t, projectDir, "custom_modes:\n  - slug: two\n    role_definition: second\n")
	require.NoError(t, m.Reload())
	assert.Empty(t, notified, "a reload is not a mode change")

	require.NoError(t, os.Remove(filepath.Join(projectDir, "modes.yaml")))
	assert.True(t, m.changed())
	require.NoError(t, m.Reload())
	assert.Empty(t, m.CustomModes())
}
