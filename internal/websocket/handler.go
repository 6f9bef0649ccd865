package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs wires one websocket connection into the hub and greets it with
// the session's recent history.
func ServeWs(hub *Hub, c *websocket.Conn, userID, sessionID uuid.UUID, turns TurnRunner) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		UserID:    userID,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		turns:     turns,
	}
	client.Hub.register <- client

	go client.writePump()

	history, err := turns.GetChatHistory(context.Background(), userID, sessionID)
	if err != nil {
		client.sendError("Failed to load history")
	} else {
		if payload, err := OutboundFrame(FrameConnectionEstablished, map[string]interface{}{
			"session_id": sessionID,
			"history":    history,
		}); err == nil {
			client.Send <- payload
		}
	}

	client.readPump() // Run readPump in current goroutine (handler)
}
