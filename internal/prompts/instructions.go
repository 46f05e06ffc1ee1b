package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/igoryan-dao/ricochet-prompt/internal/rules"
)

// RuleProvider supplies the rule files for a workspace and mode.
type RuleProvider interface {
	GetRuleSections(ctx context.Context, cwd, mode string) (rules.RuleSet, error)
}

// InstructionOptions carries optional inputs to AddCustomInstructions.
type InstructionOptions struct {
	// Language is a language tag such as "es". Empty means no preference.
	Language string
}

const customInstructionsHeader = `
====

USER'S CUSTOM INSTRUCTIONS

The following additional instructions are provided by the user, and should be followed to the best of your ability without interfering with the TOOL USE guidelines.

`

// AddCustomInstructions builds the user's custom instructions block. Sections
// appear in a fixed order: language preference, global instructions,
// mode-specific instructions, rules. Empty sections are skipped, and when
// every section is empty the result is "".
func AddCustomInstructions(
	ctx context.Context,
	provider RuleProvider,
	modeInstructions, globalInstructions, cwd, mode string,
	opts InstructionOptions,
) (string, error) {
	ruleSet, err := provider.GetRuleSections(ctx, cwd, mode)
	if err != nil {
		return "", err
	}

	var sections []string

	if lang := strings.TrimSpace(opts.Language); lang != "" {
		sections = append(sections, fmt.Sprintf("Language Preference:\nYou should always speak and think in the %q language.", lang))
	}

	if global := strings.TrimSpace(globalInstructions); global != "" {
		sections = append(sections, "Global Instructions:\n"+global)
	}

	if modeSpecific := strings.TrimSpace(modeInstructions); modeSpecific != "" {
		sections = append(sections, "Mode-specific Instructions:\n"+modeSpecific)
	}

	var ruleBlocks []string
	if r := strings.TrimSpace(ruleSet.ModeRules); r != "" {
		ruleBlocks = append(ruleBlocks, r)
	}
	if r := strings.TrimSpace(ruleSet.GenericRules); r != "" {
		ruleBlocks = append(ruleBlocks, r)
	}
	if len(ruleBlocks) > 0 {
		sections = append(sections, "Rules:\n\n"+strings.Join(ruleBlocks, "\n\n"))
	}

	joined := strings.Join(sections, "\n\n")
	if joined == "" {
		return "", nil
	}
	return customInstructionsHeader + joined, nil
}
