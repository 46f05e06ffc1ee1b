package tools

import (
	"strings"

	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
)

type registeredTool struct {
	name        string
	description descriptionFunc
}

// registry fixes the order tools appear in the prompt.
var registry = []registeredTool{
	{"execute_command", executeCommandDescription},
	{"read_file", readFileDescription},
	{"write_to_file", writeToFileDescription},
	{"apply_diff", applyDiffDescription},
	{"search_and_replace", searchAndReplaceDescription},
	{"insert_content", insertContentDescription},
	{"search_files", searchFilesDescription},
	{"list_files", listFilesDescription},
	{"list_code_definition_names", listCodeDefinitionNamesDescription},
	{"browser_action", browserActionDescription},
	{"use_mcp_tool", useMcpToolDescription},
	{"access_mcp_resource", accessMcpResourceDescription},
	{"ask_followup_question", askFollowupQuestionDescription},
	{"attempt_completion", attemptCompletionDescription},
	{"switch_mode", switchModeDescription},
	{"new_task", newTaskDescription},
}

// Names returns every registered tool name in prompt order.
func Names() []string {
	out := make([]string, len(registry))
	for i, t := range registry {
		out[i] = t.name
	}
	return out
}

type renderedTool struct {
	name, description string
}

func selectTools(mode modes.Mode, args Args, experiments Experiments) []renderedTool {
	resolved := experiments.Resolved()

	var out []renderedTool
	for _, t := range registry {
		if !modes.IsToolAllowed(mode, t.name, resolved) {
			continue
		}
		if d := t.description(args); d != "" {
			out = append(out, renderedTool{t.name, d})
		}
	}
	return out
}

// ToolsForMode returns the tools offered in mode, in prompt order, after
// applying experiments and session capabilities.
func ToolsForMode(mode modes.Mode, args Args, experiments Experiments) []string {
	var out []string
	for _, t := range selectTools(mode, args, experiments) {
		out = append(out, t.name)
	}
	return out
}

// DescriptionsForMode renders the "# Tools" section for mode.
func DescriptionsForMode(mode modes.Mode, args Args, experiments Experiments) string {
	var descriptions []string
	for _, t := range selectTools(mode, args, experiments) {
		descriptions = append(descriptions, t.description)
	}
	return "# Tools\n\n" + strings.Join(descriptions, "\n\n")
}
