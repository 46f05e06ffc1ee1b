package prompts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/igoryan-dao/ricochet-prompt/internal/mcp"
	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/paths"
	"github.com/igoryan-dao/ricochet-prompt/internal/sysinfo"
	"github.com/igoryan-dao/ricochet-prompt/internal/tools"
)

// ServerLister reports the MCP servers known to the host.
type ServerLister interface {
	Servers() []mcp.ServerInfo
}

// Options are the per-request inputs to Build.
type Options struct {
	Cwd                      string
	Mode                     string
	SupportsComputerUse      bool
	DiffEnabled              bool
	FuzzyMatchThreshold      float64
	BrowserViewportSize      string
	CustomModePrompts        map[string]modes.PromptComponent
	CustomModes              []modes.Mode
	GlobalCustomInstructions string
	Language                 string
	Experiments              tools.Experiments
	EnableMcpServerCreation  bool
}

// Builder assembles system prompts.
type Builder struct {
	rules RuleProvider
	env   sysinfo.Environment
	mcp   ServerLister
	diff  tools.DiffStrategy
	log   zerolog.Logger
}

type BuilderOption func(*Builder)

// WithMcp enables the MCP servers section for modes with the mcp group.
func WithMcp(servers ServerLister) BuilderOption {
	return func(b *Builder) { b.mcp = servers }
}

// WithDiffStrategy fixes the diff strategy instead of deriving it from the
// request's experiments.
func WithDiffStrategy(d tools.DiffStrategy) BuilderOption {
	return func(b *Builder) { b.diff = d }
}

func WithLogger(log zerolog.Logger) BuilderOption {
	return func(b *Builder) { b.log = log }
}

// NewBuilder creates a Builder. env defaults to the local machine.
func NewBuilder(rules RuleProvider, env sysinfo.Environment, opts ...BuilderOption) *Builder {
	if env == nil {
		env = sysinfo.Local{}
	}
	b := &Builder{
		rules: rules,
		env:   env,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the full system prompt for opts.Mode.
func (b *Builder) Build(ctx context.Context, opts Options) (string, error) {
	sel := modes.ResolveRole(opts.Mode, opts.CustomModes, opts.CustomModePrompts)
	mode := sel.Mode

	ruleMode := opts.Mode
	if ruleMode == "" {
		ruleMode = mode.Slug
	}

	custom, err := AddCustomInstructions(ctx, b.rules, sel.CustomInstructions, opts.GlobalCustomInstructions,
		opts.Cwd, ruleMode, InstructionOptions{Language: opts.Language})
	if err != nil {
		return "", err
	}
	custom = strings.TrimLeft(custom, "\n")

	override, err := readSystemPromptOverride(opts.Cwd, ruleMode)
	if err != nil {
		return "", err
	}
	if override != "" {
		b.log.Debug().Str("mode", ruleMode).Msg("using system prompt override file")
		return joinSections(sel.RoleDefinition, override, custom), nil
	}

	var diff tools.DiffStrategy
	if opts.DiffEnabled {
		diff = b.diff
		if diff == nil {
			diff = tools.NewDiffStrategy(opts.Experiments, opts.FuzzyMatchThreshold)
		}
	}

	mcpEnabled := b.mcp != nil && mode.HasGroup(modes.GroupMCP)
	args := tools.Args{
		Cwd:                 opts.Cwd,
		SupportsComputerUse: opts.SupportsComputerUse,
		BrowserViewportSize: opts.BrowserViewportSize,
		DiffStrategy:        diff,
		McpEnabled:          mcpEnabled,
	}

	var mcpSection string
	if mcpEnabled {
		if mcpSection, err = mcpServersSection(b.mcp.Servers(), opts.EnableMcpServerCreation); err != nil {
			return "", fmt.Errorf("render mcp servers section: %w", err)
		}
	}

	capabilities, err := render(capabilitiesTemplate, map[string]any{
		"cwd":                 opts.Cwd,
		"supportsComputerUse": opts.SupportsComputerUse,
		"viewport":            viewportOrDefault(opts.BrowserViewportSize),
		"mcpEnabled":          mcpEnabled,
	})
	if err != nil {
		return "", fmt.Errorf("render capabilities section: %w", err)
	}

	modesList, err := modesSection(opts.CustomModes)
	if err != nil {
		return "", fmt.Errorf("render modes section: %w", err)
	}

	restricted := fileRestrictions(mode)
	rulesSection, err := render(rulesTemplate, map[string]any{
		"cwd":                 opts.Cwd,
		"editingInstructions": editingInstructions(mode, diff, opts.Experiments),
		"restrictedEdits":     restricted != nil,
		"fileRestrictions":    restricted,
		"supportsComputerUse": opts.SupportsComputerUse,
		"mcpEnabled":          mcpEnabled,
	})
	if err != nil {
		return "", fmt.Errorf("render rules section: %w", err)
	}

	systemInfo, err := render(systemInfoTemplate, map[string]any{
		"os":    b.env.OSName(),
		"shell": b.env.Shell(),
		"home":  b.env.HomeDir(),
		"cwd":   opts.Cwd,
	})
	if err != nil {
		return "", fmt.Errorf("render system information section: %w", err)
	}

	return joinSections(
		sel.RoleDefinition,
		GetSharedToolUse(),
		tools.DescriptionsForMode(mode, args, opts.Experiments),
		GetToolUseGuidelines(),
		mcpSection,
		capabilities,
		modesList,
		rulesSection,
		systemInfo,
		GetObjective(),
		custom,
	), nil
}

// readSystemPromptOverride returns the trimmed content of the mode's
// override file, or "" when there is none.
func readSystemPromptOverride(cwd, mode string) (string, error) {
	data, err := os.ReadFile(paths.GetSystemPromptOverride(cwd, mode))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read system prompt override: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func viewportOrDefault(size string) string {
	if size == "" {
		return "900x600"
	}
	return size
}

func joinSections(sections ...string) string {
	var out []string
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}
