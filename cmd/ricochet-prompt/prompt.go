package main

import (
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/igoryan-dao/ricochet-prompt/internal/format"
	"github.com/igoryan-dao/ricochet-prompt/internal/prompts"
	"github.com/igoryan-dao/ricochet-prompt/internal/server"
	"github.com/igoryan-dao/ricochet-prompt/internal/sysinfo"
	"github.com/igoryan-dao/ricochet-prompt/internal/tokens"
	"github.com/igoryan-dao/ricochet-prompt/internal/tools"
)

var promptFlags struct {
	mode        string
	language    string
	browser     bool
	diff        bool
	viewport    string
	experiments []string
	withMcp     bool
	render      bool
	stats       bool
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the full system prompt for a mode",
	RunE:  runPrompt,
}

func init() {
	f := promptCmd.Flags()
	f.StringVarP(&promptFlags.mode, "mode", "m", "", "Mode slug (default: stored mode)")
	f.StringVarP(&promptFlags.language, "language", "l", "", "Language the assistant should use, e.g. es")
	f.BoolVar(&promptFlags.browser, "browser", false, "Advertise the browser_action tool")
	f.BoolVar(&promptFlags.diff, "diff", true, "Advertise the apply_diff tool")
	f.StringVar(&promptFlags.viewport, "viewport", "", "Browser viewport size, e.g. 1280x800")
	f.StringSliceVarP(&promptFlags.experiments, "experiment", "x", nil, "Experiment flag as name=bool, repeatable")
	f.BoolVar(&promptFlags.withMcp, "mcp", false, "Connect configured MCP servers and list them in the prompt")
	f.BoolVar(&promptFlags.render, "render", false, "Render as markdown for the terminal")
	f.BoolVar(&promptFlags.stats, "stats", false, "Print size and token estimate to stderr")
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp()
	if err != nil {
		return err
	}

	opts := server.OptionsFromSettings(a.store.Get().Prompt, a.cwd, a.modes.CustomModes())
	flags := cmd.Flags()
	if flags.Changed("mode") {
		opts.Mode = promptFlags.mode
	}
	if flags.Changed("language") {
		opts.Language = promptFlags.language
	}
	if flags.Changed("browser") {
		opts.SupportsComputerUse = promptFlags.browser
	}
	if flags.Changed("diff") {
		opts.DiffEnabled = promptFlags.diff
	}
	if flags.Changed("viewport") {
		opts.BrowserViewportSize = promptFlags.viewport
	}
	if len(promptFlags.experiments) > 0 {
		exp, err := parseExperiments(opts.Experiments, promptFlags.experiments)
		if err != nil {
			return err
		}
		opts.Experiments = exp
	}

	builderOpts := []prompts.BuilderOption{prompts.WithLogger(a.log)}
	if promptFlags.withMcp {
		hub, err := a.startHub(ctx)
		if err != nil {
			return err
		}
		defer hub.Close()
		builderOpts = append(builderOpts, prompts.WithMcp(hub))
	}

	builder := prompts.NewBuilder(a.rules, sysinfo.Local{}, builderOpts...)
	out, err := builder.Build(ctx, opts)
	if err != nil {
		return err
	}

	if err := writeMarkdown(out, promptFlags.render); err != nil {
		return err
	}
	if promptFlags.stats {
		format.SetupColor(os.Stderr)
		s := tokens.Measure(out)
		fmt.Fprintln(os.Stderr, format.RenderStats(s.Chars, s.Tokens))
	}
	return nil
}

func parseExperiments(base tools.Experiments, flags []string) (tools.Experiments, error) {
	out := maps.Clone(base)
	if out == nil {
		out = tools.Experiments{}
	}
	for _, f := range flags {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			value = "true"
		}
		name = strings.TrimSpace(name)
		if !tools.KnownExperiment(name) {
			return nil, fmt.Errorf("unknown experiment %q", name)
		}
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for experiment %s: %w", name, err)
		}
		out[name] = enabled
	}
	return out, nil
}

func writeMarkdown(md string, render bool) error {
	if !render {
		_, err := fmt.Fprintln(os.Stdout, md)
		return err
	}

	var (
		out string
		err error
	)
	if format.IsTerminal(os.Stdout) {
		out, err = format.RenderMarkdown(md, 0)
	} else {
		out, err = format.RenderMarkdownPlain(md, 0)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}
