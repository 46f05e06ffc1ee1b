package tools

import "fmt"

// Args carries what tool descriptions need to know about the session.
type Args struct {
	Cwd                 string
	SupportsComputerUse bool
	BrowserViewportSize string
	DiffStrategy        DiffStrategy
	McpEnabled          bool
}

func (a Args) viewport() string {
	if a.BrowserViewportSize == "" {
		return "900x600"
	}
	return a.BrowserViewportSize
}

type descriptionFunc func(Args) string

func readFileDescription(args Args) string {
	return fmt.Sprintf(`## read_file
Description: Request to read the contents of a file at the specified path. The output includes line numbers prefixed to each line (e.g. "1 | const x = 1"), making it easier to reference specific lines when creating diffs. Automatically extracts raw text from PDF and DOCX files.
Parameters:
- path: (required) The path of the file to read (relative to the current working directory %s)
Usage:
<read_file>
<path>File path here</path>
</read_file>`, args.Cwd)
}

func listFilesDescription(args Args) string {
	return fmt.Sprintf(`## list_files
Description: Request to list files and directories within the specified directory. If recursive is true, it will list all files and directories recursively. Do not use this tool to confirm the existence of files you may have created.
Parameters:
- path: (required) The path of the directory to list contents for (relative to the current working directory %s)
- recursive: (optional) Whether to list files recursively. Use true for recursive listing.
Usage:
<list_files>
<path>Directory path here</path>
<recursive>true or false (optional)</recursive>
</list_files>`, args.Cwd)
}

func searchFilesDescription(args Args) string {
	return fmt.Sprintf(`## search_files
Description: Request to perform a regex search across files in a specified directory, providing context-rich results. Each match is shown with surrounding lines.
Parameters:
- path: (required) The path of the directory to search in (relative to the current working directory %s). This directory will be recursively searched.
- regex: (required) The regular expression pattern to search for. Uses Rust regex syntax.
- file_pattern: (optional) Glob pattern to filter files (e.g., '*.ts' for TypeScript files).
Usage:
<search_files>
<path>Directory path here</path>
<regex>Your regex pattern here</regex>
<file_pattern>file pattern here (optional)</file_pattern>
</search_files>`, args.Cwd)
}

func listCodeDefinitionNamesDescription(args Args) string {
	return fmt.Sprintf(`## list_code_definition_names
Description: Request to list definition names (classes, functions, methods, etc.) used in source code files at the top level of the specified directory.
Parameters:
- path: (required) The path of the directory (relative to the current working directory %s) to list top level source code definitions for.
Usage:
<list_code_definition_names>
<path>Directory path here</path>
</list_code_definition_names>`, args.Cwd)
}

func writeToFileDescription(args Args) string {
	return fmt.Sprintf(`## write_to_file
Description: Request to write full content to a file at the specified path. If the file exists, it will be overwritten with the provided content. If the file doesn't exist, it will be created. This tool will automatically create any directories needed to write the file.
Parameters:
- path: (required) The path of the file to write to (relative to the current working directory %s)
- content: (required) The content to write to the file. ALWAYS provide the COMPLETE intended content of the file, without any truncation or omissions.
- line_count: (required) The number of lines in the file.
Usage:
<write_to_file>
<path>File path here</path>
<content>
Your file content here
</content>
<line_count>total number of lines in the file</line_count>
</write_to_file>`, args.Cwd)
}

func applyDiffDescription(args Args) string {
	if args.DiffStrategy == nil {
		return ""
	}
	return args.DiffStrategy.ToolDescription(args)
}

func searchAndReplaceDescription(args Args) string {
	return fmt.Sprintf(`## search_and_replace
Description: Request to perform search and replace operations on a file. Each operation can specify a search pattern (string or regex) and replacement text.
Parameters:
- path: (required) The path of the file to modify (relative to the current working directory %s)
- operations: (required) A JSON array of search/replace operations with "search", "replace" and optional "use_regex", "ignore_case", "start_line", "end_line".
Usage:
<search_and_replace>
<path>File path here</path>
<operations>[{"search": "text", "replace": "new text"}]</operations>
</search_and_replace>`, args.Cwd)
}

func insertContentDescription(args Args) string {
	return fmt.Sprintf(`## insert_content
Description: Inserts content at specific line positions in a file. Prefer this over rewriting a whole file when adding new code.
Parameters:
- path: (required) The path of the file to insert content into (relative to the current working directory %s)
- operations: (required) A JSON array of insertion operations with "start_line" and "content".
Usage:
<insert_content>
<path>File path here</path>
<operations>[{"start_line": 10, "content": "Your content here"}]</operations>
</insert_content>`, args.Cwd)
}

func browserActionDescription(args Args) string {
	if !args.SupportsComputerUse {
		return ""
	}
	return fmt.Sprintf(`## browser_action
Description: Request to interact with a Puppeteer-controlled browser. Every action, except `+"`close`"+`, will be responded to with a screenshot of the browser's current state, along with any new console logs.
- The sequence of actions **must always start with** launching the browser at a URL, and **must always end with** closing the browser.
- The browser window has a resolution of **%s** pixels. When performing any click actions, ensure the coordinates are within this resolution range.
Parameters:
- action: (required) One of launch, click, type, scroll_down, scroll_up, close.
- url: (optional) Use this for providing the URL for the `+"`launch`"+` action.
- coordinate: (optional) The X and Y coordinates for the `+"`click`"+` action.
- text: (optional) Use this for providing the text for the `+"`type`"+` action.
Usage:
<browser_action>
<action>Action to perform (e.g., launch, click, type, scroll_down, scroll_up, close)</action>
<url>URL to launch the browser at (optional)</url>
<coordinate>x,y coordinates (optional)</coordinate>
<text>Text to type (optional)</text>
</browser_action>`, args.viewport())
}

func executeCommandDescription(args Args) string {
	return fmt.Sprintf(`## execute_command
Description: Request to execute a CLI command on the system. Use this when you need to perform system operations or run specific commands to accomplish any step in the user's task. You must tailor your command to the user's system and provide a clear explanation of what the command does. Commands will be executed in the current working directory: %s
Parameters:
- command: (required) The CLI command to execute. This should be valid for the current operating system.
Usage:
<execute_command>
<command>Your command here</command>
</execute_command>`, args.Cwd)
}

func useMcpToolDescription(args Args) string {
	if !args.McpEnabled {
		return ""
	}
	return `## use_mcp_tool
Description: Request to use a tool provided by a connected MCP server. Each MCP server can provide multiple tools with different capabilities. Tools have defined input schemas that specify required and optional parameters.
Parameters:
- server_name: (required) The name of the MCP server providing the tool
- tool_name: (required) The name of the tool to execute
- arguments: (required) A JSON object containing the tool's input parameters, following the tool's input schema
Usage:
<use_mcp_tool>
<server_name>server name here</server_name>
<tool_name>tool name here</tool_name>
<arguments>
{
  "param1": "value1"
}
</arguments>
</use_mcp_tool>`
}

func accessMcpResourceDescription(args Args) string {
	if !args.McpEnabled {
		return ""
	}
	return `## access_mcp_resource
Description: Request to access a resource provided by a connected MCP server. Resources represent data sources that can be used as context, such as files, API responses, or system information.
Parameters:
- server_name: (required) The name of the MCP server providing the resource
- uri: (required) The URI identifying the specific resource to access
Usage:
<access_mcp_resource>
<server_name>server name here</server_name>
<uri>resource URI here</uri>
</access_mcp_resource>`
}

func askFollowupQuestionDescription(Args) string {
	return `## ask_followup_question
Description: Ask the user a question to gather additional information needed to complete the task. Use this tool only when you encounter ambiguities or need clarification.
Parameters:
- question: (required) The question to ask the user.
Usage:
<ask_followup_question>
<question>Your question here</question>
</ask_followup_question>`
}

func attemptCompletionDescription(Args) string {
	return `## attempt_completion
Description: After each tool use, the user will respond with the result of that tool use. Once you've received the results of tool uses and can confirm that the task is complete, use this tool to present the result of your work to the user.
IMPORTANT NOTE: This tool CANNOT be used until you've confirmed from the user that any previous tool uses were successful.
Parameters:
- result: (required) The result of the task. Formulate this result in a way that is final and does not require further input from the user.
- command: (optional) A CLI command to execute to show a live demo of the result to the user.
Usage:
<attempt_completion>
<result>
Your final result description here
</result>
<command>Command to demonstrate result (optional)</command>
</attempt_completion>`
}

func switchModeDescription(Args) string {
	return `## switch_mode
Description: Request to switch to a different mode. This tool allows modes to request switching to another mode when needed, such as switching to Code mode to make code changes. The user must approve the mode switch.
Parameters:
- mode_slug: (required) The slug of the mode to switch to (e.g., "code", "ask", "architect")
- reason: (optional) The reason for switching modes
Usage:
<switch_mode>
<mode_slug>Mode slug here</mode_slug>
<reason>Reason for switching here</reason>
</switch_mode>`
}

func newTaskDescription(Args) string {
	return `## new_task
Description: Create a new task with a specified starting mode and initial message. This tool instructs the system to create a new task instance in the given mode with the provided message.
Parameters:
- mode: (required) The slug of the mode to start the new task in (e.g., "code", "ask", "architect").
- message: (required) The initial user message or instructions for this new task.
Usage:
<new_task>
<mode>your-mode-slug-here</mode>
<message>Your initial instructions here</message>
</new_task>`
}
