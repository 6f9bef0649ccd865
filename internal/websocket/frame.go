package websocket

import "encoding/json"

// Frame types exchanged over the chat socket.
const (
	FrameConnectionEstablished = "connection_established"
	FrameMessage               = "message"
	FrameTyping                = "typing"
	FrameFeedback              = "feedback"
	FrameBotTyping             = "bot_typing"
	FrameError                 = "error"
)

// Frame is the envelope for every websocket payload, both directions.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// OutboundFrame marshals arbitrary data under a frame type.
func OutboundFrame(frameType string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Type: frameType, Data: raw})
}
