package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/igoryan-dao/ricochet-prompt/internal/config"
	"github.com/igoryan-dao/ricochet-prompt/internal/logging"
	"github.com/igoryan-dao/ricochet-prompt/internal/mcp"
	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/paths"
	"github.com/igoryan-dao/ricochet-prompt/internal/rules"
)

var (
	cwdFlag    string
	globalFlag string
)

var rootCmd = &cobra.Command{
	Use:           "ricochet-prompt",
	Short:         "Assemble Ricochet system prompts and custom instructions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cwdFlag, "cwd", "C", "", "Workspace directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&globalFlag, "global-dir", "", "Global settings directory (default: $RICOCHET_HOME or ~/.ricochet)")
	rootCmd.AddCommand(promptCmd, instructionsCmd, modesCmd, serveCmd, mcpCmd, installCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds the collaborators shared by the subcommands.
type app struct {
	cwd       string
	globalDir string
	store     *config.Store
	modes     *modes.Manager
	rules     *rules.Manager
	log       zerolog.Logger
}

func newApp() (*app, error) {
	cwd := cwdFlag
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cwd = wd
	}
	globalDir := globalFlag
	if globalDir == "" {
		globalDir = paths.GetGlobalDir()
	}

	log := logging.Init(globalDir, cwd)
	store, err := config.NewStore(globalDir)
	if err != nil {
		return nil, err
	}

	return &app{
		cwd:       cwd,
		globalDir: globalDir,
		store:     store,
		modes:     modes.NewManager(cwd, globalDir, log),
		rules:     rules.NewManager(log),
		log:       log,
	}, nil
}

// startHub connects the configured MCP servers. The caller closes the hub.
func (a *app) startHub(ctx context.Context) (*mcp.Hub, error) {
	settings := a.store.Get().MCP
	dir := settings.SettingsDir
	if dir == "" {
		dir = a.globalDir
	}

	hub := mcp.NewHub(mcp.NewManager(dir), a.log)
	if settings.ConnectTimeoutSeconds > 0 {
		hub.SetConnectTimeout(time.Duration(settings.ConnectTimeoutSeconds) * time.Second)
	}
	if err := hub.Start(ctx); err != nil {
		return nil, err
	}
	return hub, nil
}

func (a *app) mcpManager() *mcp.Manager {
	if dir := a.store.Get().MCP.SettingsDir; dir != "" {
		return mcp.NewManager(dir)
	}
	return mcp.NewManager(a.globalDir)
}
