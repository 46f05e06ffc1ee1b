package modes

import "regexp"

// Mode represents a specialized agent persona
type Mode struct {
	Slug               string            `json:"slug" yaml:"slug"`
	Name               string            `json:"name" yaml:"name"`
	RoleDefinition     string            `json:"role_definition" yaml:"role_definition"`
	CustomInstructions string            `json:"custom_instructions,omitempty" yaml:"custom_instructions,omitempty"`
	ToolGroups         []string          `json:"tool_groups" yaml:"tool_groups"`
	FileRestrictions   []FileRestriction `json:"file_restrictions,omitempty" yaml:"file_restrictions,omitempty"`
	Source             string            `json:"source,omitempty" yaml:"-"` // project, global, builtin
}

// FileRestriction limits which files the mode can edit
type FileRestriction struct {
	Regex       string `json:"regex" yaml:"regex"`
	Description string `json:"description" yaml:"description"`
}

// PromptComponent is a per-mode override configured by the host.
// Empty fields fall through to the mode definition.
type PromptComponent struct {
	RoleDefinition     string `json:"role_definition,omitempty" yaml:"role_definition,omitempty"`
	CustomInstructions string `json:"custom_instructions,omitempty" yaml:"custom_instructions,omitempty"`
}

// Config is the root configuration for modes
type Config struct {
	CustomModes []Mode `json:"custom_modes" yaml:"custom_modes"`
}

const (
	SourceBuiltin = "builtin"
	SourceGlobal  = "global"
	SourceProject = "project"
)

// Tool group names
const (
	GroupRead    = "read"
	GroupEdit    = "edit"
	GroupBrowser = "browser"
	GroupCommand = "command"
	GroupMCP     = "mcp"
)

// Default Modes. The first entry is the fallback for unknown slugs.
var BuiltinModes = []Mode{
	{
		Slug:           "code",
		Name:           "💻 Code",
		RoleDefinition: "You are Ricochet, a high-performance software engineer with extensive knowledge in many programming languages, frameworks, design patterns, and best practices. You specialize in implementation, refactoring, and following project conventions.",
		ToolGroups:     []string{GroupRead, GroupEdit, GroupBrowser, GroupCommand, GroupMCP},
		Source:         SourceBuiltin,
	},
	{
		Slug:           "architect",
		Name:           "📐 Architect",
		RoleDefinition: "You are Ricochet, a senior software architect. You specialize in designing feature architectures by analyzing existing codebase patterns, and you prefer detailed planning and documentation over immediate code execution.",
		ToolGroups:     []string{GroupRead, GroupBrowser, GroupMCP},
		FileRestrictions: []FileRestriction{
			{Regex: `\.md$`, Description: "Markdown files only"},
		},
		Source: SourceBuiltin,
	},
	{
		Slug:           "ask",
		Name:           "❓ Ask",
		RoleDefinition: "You are Ricochet, a knowledgeable technical assistant focused on answering questions and providing information about software development, technology, and related topics. You read code to explain it but you do not modify it.",
		ToolGroups:     []string{GroupRead, GroupBrowser, GroupMCP},
		Source:         SourceBuiltin,
	},
	{
		Slug:           "debug",
		Name:           "🪲 Debug",
		RoleDefinition: "You are Ricochet, an expert software debugger specializing in systematic problem diagnosis and resolution. You have ZERO TOLERANCE for silent failures and you always confirm a diagnosis before fixing it.",
		ToolGroups:     []string{GroupRead, GroupEdit, GroupBrowser, GroupCommand, GroupMCP},
		Source:         SourceBuiltin,
	},
	{
		Slug:           "test",
		Name:           "🧪 Tester",
		RoleDefinition: "You are Ricochet, a quality assurance specialist. You specialize in writing Vitest/Jest/Go tests and verifying system behavior.",
		ToolGroups:     []string{GroupRead, GroupCommand, GroupMCP, GroupEdit},
		FileRestrictions: []FileRestriction{
			{Regex: `.*_test\.go$|.*\.test\.(ts|js)$|.*\.md$`, Description: "Test files and documentation only"},
		},
		Source: SourceBuiltin,
	},
	TutorMode,
}

// ToolGroupDefinitions maps group names to specific tools
var ToolGroupDefinitions = map[string][]string{
	GroupRead:    {"read_file", "list_files", "search_files", "list_code_definition_names"},
	GroupEdit:    {"write_to_file", "apply_diff", "search_and_replace", "insert_content"},
	GroupBrowser: {"browser_action"},
	GroupCommand: {"execute_command"},
	GroupMCP:     {"use_mcp_tool", "access_mcp_resource"},
}

// AlwaysAvailableTools are granted to every mode regardless of its groups.
var AlwaysAvailableTools = []string{
	"ask_followup_question",
	"attempt_completion",
	"switch_mode",
	"new_task",
}

// ExperimentalTools maps a tool to the experiment that unlocks it.
var ExperimentalTools = map[string]string{
	"search_and_replace": "search_and_replace",
	"insert_content":     "insert_content",
}

// DefaultMode returns the fallback mode.
func DefaultMode() Mode {
	return BuiltinModes[0]
}

// HasGroup reports whether the mode grants the tool group.
func (m Mode) HasGroup(group string) bool {
	for _, g := range m.ToolGroups {
		if g == group {
			return true
		}
	}
	return false
}

// IsToolAllowed reports whether a tool may be offered in the given mode.
// experiments may be nil; experimental tools are then denied.
func IsToolAllowed(mode Mode, toolName string, experiments map[string]bool) bool {
	if exp, ok := ExperimentalTools[toolName]; ok && !experiments[exp] {
		return false
	}

	for _, t := range AlwaysAvailableTools {
		if t == toolName {
			return true
		}
	}

	for _, group := range mode.ToolGroups {
		for _, t := range ToolGroupDefinitions[group] {
			if t == toolName {
				return true
			}
		}
	}
	return false
}

// CanEditFile checks whether the mode's file restrictions allow editing path.
// An invalid restriction pattern never matches.
func CanEditFile(mode Mode, path string) bool {
	if len(mode.FileRestrictions) == 0 {
		return true
	}
	for _, r := range mode.FileRestrictions {
		re, err := regexp.Compile(r.Regex)
		if err != nil {
			continue
		}
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
