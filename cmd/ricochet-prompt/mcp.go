package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/igoryan-dao/ricochet-prompt/internal/format"
	"github.com/igoryan-dao/ricochet-prompt/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP servers listed in the system prompt",
}

var mcpConnect bool

var mcpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured MCP servers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		format.SetupColor(os.Stdout)

		if !mcpConnect {
			settings, err := a.mcpManager().LoadSettings()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(settings.McpServers))
			for name := range settings.McpServers {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				cfg := settings.McpServers[name]
				line := format.SlugStyle.Render(name) + "  " + strings.TrimSpace(cfg.Command+" "+strings.Join(cfg.Args, " "))
				if cfg.Disabled {
					line += "  " + format.MetaStyle.Render("(disabled)")
				}
				fmt.Println(line)
			}
			return nil
		}

		hub, err := a.startHub(cmd.Context())
		if err != nil {
			return err
		}
		defer hub.Close()

		for _, s := range hub.Servers() {
			status := format.OKStyle.Render(s.Status)
			if s.Status != mcp.StatusConnected {
				status = format.ErrorStyle.Render(s.Status + ": " + s.Error)
			}
			fmt.Printf("%s  %s  %s\n", format.SlugStyle.Render(s.Name), status,
				format.MetaStyle.Render(fmt.Sprintf("%d tools, %d resources", len(s.Tools), len(s.Resources))))
		}
		return nil
	},
}

var mcpEnv []string

var mcpAddCmd = &cobra.Command{
	Use:   "add <name> <command> [args...]",
	Short: "Register a stdio MCP server",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		env := make(map[string]string, len(mcpEnv))
		for _, kv := range mcpEnv {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid env %q, want KEY=VALUE", kv)
			}
			env[k] = v
		}
		return a.mcpManager().AddServer(args[0], mcp.McpServerConfig{
			Command: args[1],
			Args:    args[2:],
			Env:     env,
		})
	},
}

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an MCP server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.mcpManager().RemoveServer(args[0])
	},
}

func init() {
	mcpListCmd.Flags().BoolVar(&mcpConnect, "connect", false, "Connect to each server and report its status")
	mcpAddCmd.Flags().StringArrayVarP(&mcpEnv, "env", "e", nil, "Environment variable KEY=VALUE, repeatable")
	mcpCmd.AddCommand(mcpListCmd, mcpAddCmd, mcpRemoveCmd)
}
