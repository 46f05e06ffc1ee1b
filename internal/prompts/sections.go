package prompts

import (
	"strings"

	"github.com/igoryan-dao/ricochet-prompt/internal/mcp"
	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/tools"
)

// GetSharedToolUse explains the XML tool call format.
func GetSharedToolUse() string {
	return `====

TOOL USE

You have access to a set of tools that are executed upon the user's approval. You can use one tool per message, and will receive the result of that tool use in the user's response. You use tools step-by-step to accomplish a given task, with each tool use informed by the result of the previous tool use.

# Tool Use Formatting

Tool use is formatted using XML-style tags. The tool name is enclosed in opening and closing tags, and each parameter is similarly enclosed within its own set of tags:

<tool_name>
<parameter1_name>value1</parameter1_name>
<parameter2_name>value2</parameter2_name>
...
</tool_name>

For example:

<read_file>
<path>src/main.go</path>
</read_file>

Always adhere to this format for the tool use to ensure proper parsing and execution.`
}

func GetToolUseGuidelines() string {
	return `# Tool Use Guidelines

1. In <thinking> tags, assess what information you already have and what you need to proceed with the task.
2. Choose the most appropriate tool for the current step. Prefer list_files over running ` + "`ls`" + ` in the terminal.
3. If multiple actions are needed, use one tool at a time per message. Each step is informed by the previous step's result.
4. Formulate your tool use using the XML format specified for each tool.
5. After each tool use, the user responds with the result: success or failure, linter errors, terminal output, or other feedback.
6. ALWAYS wait for user confirmation after each tool use before proceeding. Never assume the outcome of a tool use.`
}

func GetObjective() string {
	return `====

OBJECTIVE

You accomplish a given task iteratively, breaking it down into clear steps and working through them methodically.

1. Analyze the user's task and set clear, achievable goals to accomplish it. Prioritize these goals in a logical order.
2. Work through these goals sequentially, utilizing available tools one at a time as necessary.
3. Before calling a tool, check that every required parameter is provided by the user or can be inferred. If a required value is missing, ask for it with ask_followup_question instead of guessing.
4. Once you've completed the user's task, use attempt_completion to present the result. You may provide a CLI command to showcase it.
5. The user may provide feedback, which you can use to make improvements and try again. Do not continue in pointless back and forth conversations.`
}

// fileRestrictions returns the edit patterns of a mode that can edit files,
// or nil when it can edit anything or nothing.
func fileRestrictions(mode modes.Mode) []map[string]any {
	if !mode.HasGroup(modes.GroupEdit) || len(mode.FileRestrictions) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(mode.FileRestrictions))
	for _, r := range mode.FileRestrictions {
		desc := r.Description
		if desc == "" {
			desc = "Allowed files"
		}
		out = append(out, map[string]any{
			"restrictionDescription": desc,
			"restrictionRegex":       r.Regex,
		})
	}
	return out
}

// editingInstructions lists the file editing tools the mode can use.
// It returns "" for modes without the edit group.
func editingInstructions(mode modes.Mode, diff tools.DiffStrategy, experiments tools.Experiments) string {
	if !mode.HasGroup(modes.GroupEdit) {
		return ""
	}

	var available []string
	var notes []string

	if diff != nil {
		available = append(available, "apply_diff (for replacing lines in existing files)")
	}
	available = append(available, "write_to_file (for creating new files or complete file rewrites)")
	if experiments.Enabled(tools.ExpInsertContent) {
		available = append(available, "insert_content (for adding lines to existing files)")
		notes = append(notes, "- The insert_content tool adds lines of text to a file, such as a new function or an import. It uses a line number to specify where to insert; 0 appends at the end of the file.")
	}
	if experiments.Enabled(tools.ExpSearchAndReplace) {
		available = append(available, "search_and_replace (for finding and replacing individual pieces of text)")
		notes = append(notes, "- The search_and_replace tool finds and replaces text or regex patterns in a file. Use it for several targeted replacements at once.")
	}

	lines := []string{"- For editing files, you have access to these tools: " + strings.Join(available, ", ") + "."}
	lines = append(lines, notes...)
	if diff != nil {
		lines = append(lines, "- Prefer the other editing tools over write_to_file when changing existing files. write_to_file is slower and cannot handle large files.")
	}
	lines = append(lines, "- When using write_to_file, ALWAYS provide the COMPLETE file content. Partial updates or placeholders like '// rest of code unchanged' are forbidden.")
	return strings.Join(lines, "\n")
}

// roleSummary returns the first sentence of a role definition.
func roleSummary(role string) string {
	role = strings.TrimSpace(role)
	if i := strings.Index(role, ". "); i >= 0 {
		return role[:i+1]
	}
	if i := strings.IndexByte(role, '\n'); i >= 0 {
		return strings.TrimSpace(role[:i])
	}
	return role
}

func modesSection(custom []modes.Mode) (string, error) {
	var list []map[string]any
	for _, m := range modes.AllModes(custom) {
		list = append(list, map[string]any{
			"name":    m.Name,
			"slug":    m.Slug,
			"summary": roleSummary(m.RoleDefinition),
		})
	}
	return render(modesTemplate, map[string]any{"modes": list})
}

// mcpServersSection renders the connected servers. Disconnected servers are
// left out since their tools cannot be called.
func mcpServersSection(servers []mcp.ServerInfo, enableServerCreation bool) (string, error) {
	var list []map[string]any
	for _, s := range servers {
		if s.Status != mcp.StatusConnected {
			continue
		}

		var toolList []map[string]any
		for _, t := range s.Tools {
			toolList = append(toolList, map[string]any{
				"toolName":        t.Name,
				"toolDescription": t.Description,
				"schema":          indent(t.InputSchema, "    "),
			})
		}
		var resourceList []map[string]any
		for _, r := range s.Resources {
			resourceList = append(resourceList, map[string]any{
				"uri":                 r.URI,
				"resourceName":        r.Name,
				"resourceDescription": r.Description,
			})
		}

		list = append(list, map[string]any{
			"name":         s.Name,
			"command":      s.CommandLine(),
			"hasTools":     len(toolList) > 0,
			"tools":        toolList,
			"hasResources": len(resourceList) > 0,
			"resources":    resourceList,
		})
	}

	return render(mcpServersTemplate, map[string]any{
		"servers":              list,
		"enableServerCreation": enableServerCreation,
	})
}

// indent prefixes every line after the first, so a multi-line value lines
// up under a template line that is already indented.
func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
