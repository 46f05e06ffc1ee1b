package protocol

import (
	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/tokens"
	"github.com/igoryan-dao/ricochet-prompt/internal/tools"
)

// Request types
const (
	TypeBuildSystemPrompt   = "build_system_prompt"
	TypeComposeInstructions = "compose_instructions"
	TypeListModes           = "list_modes"
	TypeSetMode             = "set_mode"
	TypeEstimateTokens      = "estimate_tokens"
	TypeGetSettings         = "get_settings"
)

// Response types
const (
	TypeReady          = "ready"
	TypeSystemPrompt   = "system_prompt"
	TypeInstructions   = "instructions"
	TypeModes          = "modes"
	TypeModeChanged    = "mode_changed"
	TypeTokenEstimate  = "token_estimate"
	TypeSettingsLoaded = "settings_loaded"
	TypeError          = "error"
)

// BuildSystemPromptParams overrides stored settings for one request. Nil
// and empty fields keep the stored value.
type BuildSystemPromptParams struct {
	Cwd                      string                           `json:"cwd,omitempty"`
	Mode                     string                           `json:"mode,omitempty"`
	Language                 *string                          `json:"language,omitempty"`
	GlobalCustomInstructions *string                          `json:"global_custom_instructions,omitempty"`
	SupportsComputerUse      *bool                            `json:"supports_computer_use,omitempty"`
	DiffEnabled              *bool                            `json:"diff_enabled,omitempty"`
	BrowserViewportSize      string                           `json:"browser_viewport_size,omitempty"`
	EnableMcpServerCreation  *bool                            `json:"enable_mcp_server_creation,omitempty"`
	Experiments              map[string]bool                  `json:"experiments,omitempty"`
	CustomModePrompts        map[string]modes.PromptComponent `json:"custom_mode_prompts,omitempty"`
	CustomModes              []modes.Mode                     `json:"custom_modes,omitempty"`
}

type SystemPromptResult struct {
	Mode   string       `json:"mode"`
	Prompt string       `json:"prompt"`
	Stats  tokens.Stats `json:"stats"`
}

type ComposeInstructionsParams struct {
	Cwd                string `json:"cwd,omitempty"`
	Mode               string `json:"mode,omitempty"`
	ModeInstructions   string `json:"mode_instructions"`
	GlobalInstructions string `json:"global_instructions"`
	Language           string `json:"language,omitempty"`
}

type InstructionsResult struct {
	Instructions string `json:"instructions"`
}

type ModesResult struct {
	Active string       `json:"active"`
	Modes  []modes.Mode `json:"modes"`
	// Access lists the tool categories each mode may use, keyed by slug.
	Access map[string][]tools.ToolCategory `json:"access,omitempty"`
}

type SetModeParams struct {
	Mode string `json:"mode"`
}

type EstimateTokensParams struct {
	Text string `json:"text"`
}
