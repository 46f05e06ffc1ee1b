package protocol

import (
	"encoding/json"
	"fmt"
)

// RPCMessage is one newline-delimited JSON message. Requests carry an ID and
// a Type; responses echo the ID.
type RPCMessage struct {
	ID      interface{}     `json:"id,omitempty"`      // string or number
	Type    string          `json:"type"`              // e.g. "build_system_prompt"
	Payload json.RawMessage `json:"payload,omitempty"` // Typed payload
	Error   string          `json:"error,omitempty"`
}

// EncodeRPC encodes any payload into a RawMessage for inclusion in an RPCMessage
func EncodeRPC(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

// IDString renders an ID the way it appears in logs. Numbers decode as
// float64 from JSON.
func IDString(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}
