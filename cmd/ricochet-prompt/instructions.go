package main

import (
	"github.com/spf13/cobra"

	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/prompts"
)

var instructionsFlags struct {
	mode               string
	modeInstructions   string
	globalInstructions string
	language           string
	render             bool
}

var instructionsCmd = &cobra.Command{
	Use:   "instructions",
	Short: "Print only the user's custom instructions block",
	Long: `Print the custom instructions block: language preference, global
instructions, mode-specific instructions and rule files, in that order.
Prints nothing when every part is empty.`,
	RunE: runInstructions,
}

func init() {
	f := instructionsCmd.Flags()
	f.StringVarP(&instructionsFlags.mode, "mode", "m", "", "Mode slug (default: stored mode)")
	f.StringVar(&instructionsFlags.modeInstructions, "mode-instructions", "", "Mode-specific instructions (default: the mode's own)")
	f.StringVar(&instructionsFlags.globalInstructions, "global-instructions", "", "Global instructions (default: stored)")
	f.StringVarP(&instructionsFlags.language, "language", "l", "", "Language the assistant should use, e.g. es")
	f.BoolVar(&instructionsFlags.render, "render", false, "Render as markdown for the terminal")
}

func runInstructions(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	settings := a.store.Get().Prompt
	flags := cmd.Flags()

	mode := settings.Mode
	if flags.Changed("mode") {
		mode = instructionsFlags.mode
	}
	sel := modes.ResolveRole(mode, a.modes.CustomModes(), settings.CustomModePrompts)

	modeInstructions := sel.CustomInstructions
	if flags.Changed("mode-instructions") {
		modeInstructions = instructionsFlags.modeInstructions
	}
	globalInstructions := settings.CustomInstructions
	if flags.Changed("global-instructions") {
		globalInstructions = instructionsFlags.globalInstructions
	}
	language := settings.Language
	if flags.Changed("language") {
		language = instructionsFlags.language
	}

	out, err := prompts.AddCustomInstructions(cmd.Context(), a.rules, modeInstructions, globalInstructions,
		a.cwd, mode, prompts.InstructionOptions{Language: language})
	if err != nil {
		return err
	}
	if out == "" {
		return nil
	}
	return writeMarkdown(out, instructionsFlags.render)
}
