package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/igoryan-dao/ricochet-prompt/internal/protocol"
)

// Version is reported in the ready message.
const Version = "0.1.0"

const maxMessageSize = 1024 * 1024

// StdioWriter implements ResponseWriter as newline-delimited JSON.
type StdioWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewStdioWriter(w io.Writer) *StdioWriter {
	return &StdioWriter{enc: json.NewEncoder(w)}
}

func (w *StdioWriter) Send(msg interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(msg)
}

// Serve reads requests from r until EOF or ctx is done, answering each on
// its own goroutine. It returns after every in-flight request has been
// answered.
func Serve(ctx context.Context, r io.Reader, w io.Writer, h *Handler) error {
	writer := NewStdioWriter(w)
	h.send(writer, protocol.RPCMessage{
		Type:    protocol.TypeReady,
		Payload: protocol.EncodeRPC(map[string]string{"version": Version}),
	})

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxMessageSize)

	var wg sync.WaitGroup
	defer wg.Wait()

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg protocol.RPCMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			h.log.Warn().Err(err).Msg("failed to parse message")
			h.send(writer, protocol.RPCMessage{Type: protocol.TypeError, Error: "invalid message: " + err.Error()})
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			h.HandleMessage(ctx, msg, writer)
		}()
	}

	return scanner.Err()
}
