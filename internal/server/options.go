package server

import (
	"maps"

	"github.com/igoryan-dao/ricochet-prompt/internal/config"
	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/prompts"
	"github.com/igoryan-dao/ricochet-prompt/internal/protocol"
	"github.com/igoryan-dao/ricochet-prompt/internal/tools"
)

// OptionsFromSettings maps stored prompt settings onto builder options.
func OptionsFromSettings(s config.PromptSettings, cwd string, custom []modes.Mode) prompts.Options {
	return prompts.Options{
		Cwd:                      cwd,
		Mode:                     s.Mode,
		SupportsComputerUse:      s.SupportsComputerUse,
		DiffEnabled:              s.DiffEnabled,
		FuzzyMatchThreshold:      s.FuzzyMatchThreshold,
		BrowserViewportSize:      s.BrowserViewportSize,
		CustomModePrompts:        s.CustomModePrompts,
		CustomModes:              custom,
		GlobalCustomInstructions: s.CustomInstructions,
		Language:                 s.Language,
		Experiments:              tools.Experiments(s.Experiments),
		EnableMcpServerCreation:  s.EnableMcpServerCreation,
	}
}

// applyParams layers request fields over opts.
func applyParams(opts prompts.Options, p protocol.BuildSystemPromptParams) prompts.Options {
	if p.Cwd != "" {
		opts.Cwd = p.Cwd
	}
	if p.Mode != "" {
		opts.Mode = p.Mode
	}
	if p.Language != nil {
		opts.Language = *p.Language
	}
	if p.GlobalCustomInstructions != nil {
		opts.GlobalCustomInstructions = *p.GlobalCustomInstructions
	}
	if p.SupportsComputerUse != nil {
		opts.SupportsComputerUse = *p.SupportsComputerUse
	}
	if p.DiffEnabled != nil {
		opts.DiffEnabled = *p.DiffEnabled
	}
	if p.BrowserViewportSize != "" {
		opts.BrowserViewportSize = p.BrowserViewportSize
	}
	if p.EnableMcpServerCreation != nil {
		opts.EnableMcpServerCreation = *p.EnableMcpServerCreation
	}
	if p.Experiments != nil {
		merged := maps.Clone(opts.Experiments)
		if merged == nil {
			merged = tools.Experiments{}
		}
		maps.Copy(merged, p.Experiments)
		opts.Experiments = merged
	}
	if p.CustomModePrompts != nil {
		opts.CustomModePrompts = p.CustomModePrompts
	}
	if p.CustomModes != nil {
		opts.CustomModes = p.CustomModes
	}
	return opts
}
