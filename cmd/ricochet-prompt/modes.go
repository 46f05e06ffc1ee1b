package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/igoryan-dao/ricochet-prompt/internal/config"
	"github.com/igoryan-dao/ricochet-prompt/internal/format"
	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/tools"
)

var modesJSON bool

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List built-in and custom modes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		all := a.modes.AllModes()

		if modesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(all)
		}

		format.SetupColor(os.Stdout)
		experiments := tools.Experiments(a.store.Get().Prompt.Experiments)
		rows := make([]format.ModeRow, 0, len(all))
		for _, m := range all {
			rows = append(rows, modeRow(m, experiments))
		}
		fmt.Println(format.RenderModes(rows))
		return nil
	},
}

var setModeCmd = &cobra.Command{
	Use:   "set <slug>",
	Short: "Store the default mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.modes.SetMode(args[0]); err != nil {
			return err
		}
		return a.store.Update(func(s *config.Settings) { s.Prompt.Mode = args[0] })
	},
}

var canEditCmd = &cobra.Command{
	Use:   "can-edit <slug> <path>",
	Short: "Check whether a mode may edit a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		mode, ok := modes.FindMode(args[0], a.modes.CustomModes())
		if !ok {
			return fmt.Errorf("%w: %s", modes.ErrModeNotFound, args[0])
		}
		allowed, reason := editVerdict(mode, args[1])
		fmt.Fprintln(cmd.OutOrStdout(), reason)
		if !allowed {
			return fmt.Errorf("%s may not edit %s", mode.Slug, args[1])
		}
		return nil
	},
}

func init() {
	modesCmd.Flags().BoolVar(&modesJSON, "json", false, "Print modes as JSON")
	modesCmd.AddCommand(setModeCmd, canEditCmd)
}

// editVerdict explains whether mode may edit path.
func editVerdict(mode modes.Mode, path string) (bool, string) {
	if !mode.HasGroup(modes.GroupEdit) {
		return false, fmt.Sprintf("%s has no edit tools", mode.Slug)
	}
	if !modes.CanEditFile(mode, filepath.ToSlash(path)) {
		patterns := make([]string, 0, len(mode.FileRestrictions))
		for _, r := range mode.FileRestrictions {
			patterns = append(patterns, r.Regex)
		}
		return false, fmt.Sprintf("%s only edits files matching %s", mode.Slug, strings.Join(patterns, ", "))
	}
	return true, fmt.Sprintf("%s may edit %s", mode.Slug, path)
}

func modeRow(m modes.Mode, experiments tools.Experiments) format.ModeRow {
	summary := m.RoleDefinition
	if r := []rune(summary); len(r) > 100 {
		summary = string(r[:97]) + "..."
	}
	var access []string
	for _, c := range tools.CategoriesForMode(m, experiments) {
		access = append(access, string(c))
	}
	return format.ModeRow{
		Slug:     m.Slug,
		Name:     m.Name,
		Source:   m.Source,
		Groups:   m.ToolGroups,
		ReadOnly: tools.IsReadOnlyMode(m, experiments),
		Access:   access,
		Summary:  summary,
	}
}
