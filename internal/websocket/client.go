package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-travelmate-be/internal/dto"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	turnTimeout = 30 * time.Second
)

// TurnRunner is the slice of the chat service the socket needs. Satisfied
// by service.IChatService.
type TurnRunner interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	SendFeedback(ctx context.Context, userId uuid.UUID, req *dto.SendFeedbackRequest) (*dto.SendFeedbackResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// UserID associated with this connection
	UserID uuid.UUID

	// SessionID this socket is bound to
	SessionID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	turns TurnRunner
}

// readPump pumps inbound frames from the websocket connection into turn
// handling.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error for user %s: %v", c.UserID, err)
			}
			break
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.sendError("Malformed frame")
			continue
		}

		switch frame.Type {
		case FrameMessage:
			c.handleMessage(frame.Data)
		case FrameFeedback:
			c.handleFeedback(frame.Data)
		case FrameTyping:
			// Presence signal only, nothing to do server-side.
		default:
			c.sendError("Unknown frame type: " + frame.Type)
		}
	}
}

func (c *Client) handleMessage(data json.RawMessage) {
	var inbound struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &inbound); err != nil || inbound.Message == "" {
		c.sendError("Message frame requires a non-empty message")
		return
	}

	c.Hub.Send(c.UserID, FrameBotTyping, map[string]interface{}{
		"session_id": c.SessionID,
	})

	ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
	defer cancel()

	res, err := c.turns.SendChat(ctx, c.UserID, &dto.SendChatRequest{
		ChatSessionId: c.SessionID,
		Message:       inbound.Message,
	})
	if err != nil {
		c.sendError("Failed to process message")
		return
	}

	c.Hub.Send(c.UserID, FrameMessage, res)
}

func (c *Client) handleFeedback(data json.RawMessage) {
	var req dto.SendFeedbackRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendError("Malformed feedback frame")
		return
	}
	req.ChatSessionId = c.SessionID

	ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
	defer cancel()

	res, err := c.turns.SendFeedback(ctx, c.UserID, &req)
	if err != nil {
		c.sendError("Failed to record feedback")
		return
	}

	c.Hub.Send(c.UserID, FrameFeedback, res)
}

func (c *Client) sendError(message string) {
	payload, err := OutboundFrame(FrameError, map[string]string{"message": message})
	if err != nil {
		return
	}
	select {
	case c.Send <- payload:
	default:
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued frames to the current websocket message.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
