package tools

import "github.com/igoryan-dao/ricochet-prompt/internal/modes"

// ToolCategory classifies a tool by its side effects.
type ToolCategory string

const (
	// CategoryRead - Safe read-only operations.
	CategoryRead ToolCategory = "read"

	// CategoryWrite - Operations that modify files.
	CategoryWrite ToolCategory = "write"

	// CategoryExecute - Shell commands and external processes.
	CategoryExecute ToolCategory = "execute"

	// CategoryMeta - Conversation control with no workspace side effects.
	CategoryMeta ToolCategory = "meta"

	// CategoryBrowser - Browser automation tools.
	CategoryBrowser ToolCategory = "browser"

	// CategoryMCP - External MCP tools (unknown category by default).
	CategoryMCP ToolCategory = "mcp"
)

// toolCategoryRegistry maps tool names to their categories.
var toolCategoryRegistry = map[string]ToolCategory{
	"read_file":                  CategoryRead,
	"list_files":                 CategoryRead,
	"search_files":               CategoryRead,
	"list_code_definition_names": CategoryRead,

	"write_to_file":      CategoryWrite,
	"apply_diff":         CategoryWrite,
	"search_and_replace": CategoryWrite,
	"insert_content":     CategoryWrite,

	"execute_command": CategoryExecute,

	"ask_followup_question": CategoryMeta,
	"attempt_completion":    CategoryMeta,
	"switch_mode":           CategoryMeta,
	"new_task":              CategoryMeta,

	"browser_action": CategoryBrowser,
}

// GetToolCategory returns the category for a tool.
// Unknown tools default to CategoryMCP.
func GetToolCategory(toolName string) ToolCategory {
	if cat, ok := toolCategoryRegistry[toolName]; ok {
		return cat
	}
	return CategoryMCP
}

// IsReadOnlyTool returns true if the tool has no side effects.
func IsReadOnlyTool(toolName string) bool {
	cat := GetToolCategory(toolName)
	return cat == CategoryRead || cat == CategoryMeta
}

// CategoriesForMode returns the distinct categories of the tools mode may
// use, in registry order.
func CategoriesForMode(mode modes.Mode, experiments Experiments) []ToolCategory {
	resolved := experiments.Resolved()
	seen := make(map[ToolCategory]bool)

	var out []ToolCategory
	for _, t := range registry {
		if !modes.IsToolAllowed(mode, t.name, resolved) {
			continue
		}
		if cat := GetToolCategory(t.name); !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}

// IsReadOnlyMode reports whether every tool mode may use is read-only. MCP
// tools have unknown side effects and make a mode writable.
func IsReadOnlyMode(mode modes.Mode, experiments Experiments) bool {
	resolved := experiments.Resolved()
	for _, t := range registry {
		if modes.IsToolAllowed(mode, t.name, resolved) && !IsReadOnlyTool(t.name) {
			return false
		}
	}
	return true
}
