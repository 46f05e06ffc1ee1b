package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/igoryan-dao/ricochet-prompt/internal/config"
	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/prompts"
	"github.com/igoryan-dao/ricochet-prompt/internal/server"
	"github.com/igoryan-dao/ricochet-prompt/internal/sysinfo"
)

var (
	serveMCP    bool
	serveListen string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer prompt requests on stdio",
	Long: `Answer prompt requests on stdio. By default requests are newline-delimited
JSON messages from an IDE extension; with --mcp the same operations are
offered as an MCP server. With --listen the extension protocol is served
over a WebSocket at ws://<addr>/ws instead of stdio.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp()
		if err != nil {
			return err
		}
		settings := a.store.Get()

		trackMode(a.modes, a.store, a.log)
		a.modes.StartWatcher(ctx)

		builderOpts := []prompts.BuilderOption{prompts.WithLogger(a.log)}
		if settings.MCP.Enabled {
			hub, err := a.startHub(ctx)
			if err != nil {
				a.log.Warn().Err(err).Msg("MCP hub unavailable")
			} else {
				defer hub.Close()
				builderOpts = append(builderOpts, prompts.WithMcp(hub))
			}
		}

		builder := prompts.NewBuilder(a.rules, sysinfo.Local{}, builderOpts...)
		handler := server.NewHandler(a.cwd, builder, a.rules, a.store, a.modes, a.log)

		if serveListen != "" {
			return server.NewWebSocketServer(handler).ListenAndServe(ctx, serveListen)
		}
		if serveMCP {
			a.log.Info().Str("cwd", a.cwd).Msg("serving MCP on stdio")
			return server.NewMCPServer(handler).ServeStdio()
		}
		a.log.Info().Str("cwd", a.cwd).Msg("serving on stdio")
		return server.Serve(ctx, os.Stdin, os.Stdout, handler)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "Speak the Model Context Protocol instead of the extension protocol")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Serve the extension protocol over WebSocket on this address (e.g. 127.0.0.1:7420)")
	serveCmd.MarkFlagsMutuallyExclusive("mcp", "listen")
}

// trackMode activates the configured mode and persists later mode switches.
// The initial mode may come from RICOCHET_MODE; it is applied before the
// callback is registered so the override never reaches settings.json.
func trackMode(m *modes.Manager, store *config.Store, log zerolog.Logger) {
	if err := m.SetMode(store.Get().Prompt.Mode); err != nil {
		log.Warn().Err(err).Msg("configured mode is unavailable, using default")
	}
	m.SetOnModeChange(func(slug string) {
		if err := store.Update(func(s *config.Settings) { s.Prompt.Mode = slug }); err != nil {
			log.Error().Err(err).Msg("failed to persist mode")
		}
	})
}
