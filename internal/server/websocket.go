package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/igoryan-dao/ricochet-prompt/internal/protocol"
)

// WebSocketPath is where WebSocketServer accepts connections.
const WebSocketPath = "/ws"

// wsWriter implements ResponseWriter with one JSON text frame per message.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) Send(msg interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(msg)
}

// WebSocketServer serves the same message protocol as Serve to hosts that
// connect over a WebSocket instead of stdio.
type WebSocketServer struct {
	handler  *Handler
	upgrader websocket.Upgrader
}

func NewWebSocketServer(h *Handler) *WebSocketServer {
	return &WebSocketServer{
		handler: h,
		upgrader: websocket.Upgrader{
			// Hosts are local editors, not browsers.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and answers messages until the peer
// disconnects or the request context ends.
func (s *WebSocketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.handler.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	writer := &wsWriter{conn: conn}
	s.handler.send(writer, protocol.RPCMessage{
		Type:    protocol.TypeReady,
		Payload: protocol.EncodeRPC(map[string]string{"version": Version}),
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.handler.log.Debug().Err(err).Msg("websocket read failed")
			}
			return
		}

		var msg protocol.RPCMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.handler.log.Warn().Err(err).Msg("failed to parse message")
			s.handler.send(writer, protocol.RPCMessage{Type: protocol.TypeError, Error: "invalid message: " + err.Error()})
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handler.HandleMessage(ctx, msg, writer)
		}()
	}
}

// ListenAndServe serves WebSocketPath on addr until ctx is done.
func (s *WebSocketServer) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(WebSocketPath, s)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.handler.log.Info().Str("addr", addr).Str("path", WebSocketPath).Msg("websocket server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
