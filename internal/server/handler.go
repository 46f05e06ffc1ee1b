package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/igoryan-dao/ricochet-prompt/internal/config"
	"github.com/igoryan-dao/ricochet-prompt/internal/modes"
	"github.com/igoryan-dao/ricochet-prompt/internal/prompts"
	"github.com/igoryan-dao/ricochet-prompt/internal/protocol"
	"github.com/igoryan-dao/ricochet-prompt/internal/tokens"
	"github.com/igoryan-dao/ricochet-prompt/internal/tools"
)

// ResponseWriter interface allows different transports to send responses
type ResponseWriter interface {
	Send(msg interface{}) error
}

// Handler answers prompt requests from an IDE extension.
type Handler struct {
	Cwd      string
	Builder  *prompts.Builder
	Rules    prompts.RuleProvider
	Settings *config.Store
	Modes    *modes.Manager
	log      zerolog.Logger
}

// NewHandler creates a handler for the workspace cwd.
func NewHandler(
	cwd string,
	builder *prompts.Builder,
	rules prompts.RuleProvider,
	settings *config.Store,
	modesManager *modes.Manager,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		Cwd:      cwd,
		Builder:  builder,
		Rules:    rules,
		Settings: settings,
		Modes:    modesManager,
		log:      log.With().Str("component", "server").Logger(),
	}
}

// HandleMessage processes a single RPC message. Requests without an ID get
// a generated one so the response can still be correlated in logs.
func (h *Handler) HandleMessage(ctx context.Context, msg protocol.RPCMessage, writer ResponseWriter) {
	if msg.ID == nil {
		msg.ID = uuid.NewString()
	}
	log := h.log.With().Str("type", msg.Type).Str("id", protocol.IDString(msg.ID)).Logger()
	log.Debug().Msg("handling request")

	respType, payload, err := h.dispatch(ctx, msg)
	if err != nil {
		log.Warn().Err(err).Msg("request failed")
		h.send(writer, protocol.RPCMessage{ID: msg.ID, Type: protocol.TypeError, Error: err.Error()})
		return
	}
	h.send(writer, protocol.RPCMessage{ID: msg.ID, Type: respType, Payload: protocol.EncodeRPC(payload)})
}

// send writes msg and logs a failed write. The peer is usually gone by then,
// so there is nobody left to report the error to.
func (h *Handler) send(writer ResponseWriter, msg protocol.RPCMessage) {
	if err := writer.Send(msg); err != nil {
		h.log.Error().Err(err).Str("type", msg.Type).Str("id", protocol.IDString(msg.ID)).Msg("failed to send response")
	}
}

var errUnknownType = errors.New("unknown message type")

func (h *Handler) dispatch(ctx context.Context, msg protocol.RPCMessage) (string, interface{}, error) {
	switch msg.Type {
	case protocol.TypeBuildSystemPrompt:
		var p protocol.BuildSystemPromptParams
		if err := decode(msg.Payload, &p); err != nil {
			return "", nil, err
		}
		opts := applyParams(h.baseOptions(), p)
		prompt, err := h.Builder.Build(ctx, opts)
		if err != nil {
			return "", nil, err
		}
		return protocol.TypeSystemPrompt, protocol.SystemPromptResult{
			Mode:   opts.Mode,
			Prompt: prompt,
			Stats:  tokens.Measure(prompt),
		}, nil

	case protocol.TypeComposeInstructions:
		var p protocol.ComposeInstructionsParams
		if err := decode(msg.Payload, &p); err != nil {
			return "", nil, err
		}
		if p.Cwd == "" {
			p.Cwd = h.Cwd
		}
		if p.Mode == "" {
			p.Mode = h.activeMode()
		}
		out, err := prompts.AddCustomInstructions(ctx, h.Rules, p.ModeInstructions, p.GlobalInstructions,
			p.Cwd, p.Mode, prompts.InstructionOptions{Language: p.Language})
		if err != nil {
			return "", nil, err
		}
		return protocol.TypeInstructions, protocol.InstructionsResult{Instructions: out}, nil

	case protocol.TypeListModes:
		result := protocol.ModesResult{Active: h.activeMode()}
		if h.Modes != nil {
			result.Modes = h.Modes.AllModes()
		} else {
			result.Modes = modes.AllModes(nil)
		}
		experiments := h.baseOptions().Experiments
		result.Access = make(map[string][]tools.ToolCategory, len(result.Modes))
		for _, m := range result.Modes {
			result.Access[m.Slug] = tools.CategoriesForMode(m, experiments)
		}
		return protocol.TypeModes, result, nil

	case protocol.TypeSetMode:
		var p protocol.SetModeParams
		if err := decode(msg.Payload, &p); err != nil {
			return "", nil, err
		}
		if h.Modes == nil {
			return "", nil, errors.New("modes manager not initialized")
		}
		if err := h.Modes.SetMode(p.Mode); err != nil {
			return "", nil, err
		}
		return protocol.TypeModeChanged, protocol.SetModeParams{Mode: p.Mode}, nil

	case protocol.TypeEstimateTokens:
		var p protocol.EstimateTokensParams
		if err := decode(msg.Payload, &p); err != nil {
			return "", nil, err
		}
		return protocol.TypeTokenEstimate, tokens.Measure(p.Text), nil

	case protocol.TypeGetSettings:
		if h.Settings == nil {
			return "", nil, errors.New("settings store not initialized")
		}
		return protocol.TypeSettingsLoaded, h.Settings.Get(), nil

	default:
		return "", nil, fmt.Errorf("%w: %q", errUnknownType, msg.Type)
	}
}

// baseOptions merges stored settings, the active mode and the workspace's
// custom modes.
func (h *Handler) baseOptions() prompts.Options {
	settings := config.Defaults()
	if h.Settings != nil {
		settings = h.Settings.Get()
	}
	var custom []modes.Mode
	if h.Modes != nil {
		custom = h.Modes.CustomModes()
	}
	opts := OptionsFromSettings(settings.Prompt, h.Cwd, custom)
	opts.Mode = h.activeMode()
	return opts
}

func (h *Handler) activeMode() string {
	if h.Modes != nil {
		return h.Modes.GetActiveMode().Slug
	}
	if h.Settings != nil {
		return h.Settings.Get().Prompt.Mode
	}
	return modes.DefaultMode().Slug
}

func decode(payload json.RawMessage, v interface{}) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
