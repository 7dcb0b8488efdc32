package server

import "encoding/json"

// Message is the websocket envelope. A client sends TypeTrace with a scene
// as payload; every such message is a retrace request.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

const (
	TypeWelcome = "welcome"
	TypeTrace   = "scene.trace"
	TypeResult  = "trace.result"
	TypeError   = "error"
)
