package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
)

func mustMode(t *testing.T, slug string) modes.Mode {
	t.Helper()
	m, ok := modes.FindMode(slug, nil)
	require.True(t, ok, slug)
	return m
}

func TestToolsForMode_Code(t *testing.T) {
	args := Args{Cwd: "/test/path", SupportsComputerUse: true, DiffStrategy: SearchReplaceStrategy{}, McpEnabled: true}

	got := ToolsForMode(mustMode(t, "code"), args, nil)
	assert.Equal(t, []string{
		"execute_command", "read_file", "write_to_file", "apply_diff",
		"search_files", "list_files", "list_code_definition_names",
		"browser_action", "use_mcp_tool", "access_mcp_resource",
		"ask_followup_question", "attempt_completion", "switch_mode", "new_task",
	}, got)
}

func TestToolsForMode_CapabilityFilters(t *testing.T) {
	code := mustMode(t, "code")

	got := ToolsForMode(code, Args{Cwd: "/w"}, nil)
	assert.NotContains(t, got, "browser_action")
	assert.NotContains(t, got, "apply_diff")
	assert.NotContains(t, got, "use_mcp_tool")
	assert.NotContains(t, got, "access_mcp_resource")
	assert.Contains(t, got, "write_to_file")
}

func TestToolsForMode_Experiments(t *testing.T) {
	code := mustMode(t, "code")
	args := Args{Cwd: "/w"}

	got := ToolsForMode(code, args, Experiments{ExpSearchAndReplace: true})
	assert.Contains(t, got, "search_and_replace")
	assert.NotContains(t, got, "insert_content")

	got = ToolsForMode(code, args, Experiments{ExpInsertContent: true})
	assert.Contains(t, got, "insert_content")

	ask := mustMode(t, "ask")
	got = ToolsForMode(ask, args, Experiments{ExpSearchAndReplace: true, ExpInsertContent: true})
	assert.NotContains(t, got, "search_and_replace", "ask has no edit group")
	assert.NotContains(t, got, "write_to_file")
}

func TestDescriptionsForMode(t *testing.T) {
	out := DescriptionsForMode(mustMode(t, "code"), Args{
		Cwd:                 "/test/path",
		SupportsComputerUse: true,
		BrowserViewportSize: "1280x800",
		DiffStrategy:        SearchReplaceStrategy{FuzzyThreshold: 0.9},
	}, nil)

	require.True(t, strings.HasPrefix(out, "# Tools\n\n## execute_command"))
	assert.Contains(t, out, "current working directory /test/path")
	assert.Contains(t, out, "**1280x800** pixels")
	assert.Contains(t, out, "similarity threshold 0.90")
	assert.Less(t, strings.Index(out, "## read_file"), strings.Index(out, "## write_to_file"))
	assert.NotContains(t, out, "## use_mcp_tool")
}

func TestDescriptionsDefaultViewport(t *testing.T) {
	out := browserActionDescription(Args{SupportsComputerUse: true})
	assert.Contains(t, out, "**900x600** pixels")
	assert.Empty(t, browserActionDescription(Args{}))
}

func TestNewDiffStrategy(t *testing.T) {
	assert.Equal(t, "search-replace", NewDiffStrategy(nil, 1).Name())
	assert.Equal(t, "unified", NewDiffStrategy(Experiments{ExpDiffStrategy: true}, 1).Name())

	out := UnifiedDiffStrategy{}.ToolDescription(Args{Cwd: "/w"})
	assert.Contains(t, out, "unified format")
}

func TestExperiments(t *testing.T) {
	var e Experiments
	assert.False(t, e.Enabled(ExpInsertContent))
	assert.False(t, e.Enabled("unknown"))

	e = Experiments{ExpInsertContent: true, "unknown": true}
	resolved := e.Resolved()
	assert.Len(t, resolved, 3)
	assert.True(t, resolved[ExpInsertContent])
	assert.NotContains(t, resolved, "unknown")

	assert.True(t, KnownExperiment(ExpDiffStrategy))
	assert.False(t, KnownExperiment("unknown"))
}

func TestCategories(t *testing.T) {
	for _, name := range Names() {
		if name == "use_mcp_tool" || name == "access_mcp_resource" {
			assert.Equal(t, CategoryMCP, GetToolCategory(name))
			continue
		}
		assert.NotEqual(t, CategoryMCP, GetToolCategory(name), name)
	}
	assert.True(t, IsReadOnlyTool("read_file"))
	assert.True(t, IsReadOnlyTool("attempt_completion"))
	assert.False(t, IsReadOnlyTool("execute_command"))
	assert.Equal(t, CategoryMCP, GetToolCategory("github_create_issue"))
}

func TestCategoriesForMode(t *testing.T) {
	assert.Equal(t,
		[]ToolCategory{CategoryExecute, CategoryRead, CategoryWrite, CategoryBrowser, CategoryMCP, CategoryMeta},
		CategoriesForMode(mustMode(t, "code"), nil))
	assert.Equal(t,
		[]ToolCategory{CategoryRead, CategoryBrowser, CategoryMCP, CategoryMeta},
		CategoriesForMode(mustMode(t, "ask"), nil))

	assert.False(t, IsReadOnlyMode(mustMode(t, "ask"), nil), "MCP tools may have side effects")
	reader := modes.Mode{Slug: "reader", ToolGroups: []string{modes.GroupRead}}
	assert.True(t, IsReadOnlyMode(reader, nil))
	assert.Equal(t, []ToolCategory{CategoryRead, CategoryMeta}, CategoriesForMode(reader, nil))
}
