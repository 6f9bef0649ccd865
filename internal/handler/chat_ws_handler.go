package handler

import (
	"strings"

	internalWS "ai-travelmate-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ChatWsHandler upgrades chat clients onto the websocket hub.
type ChatWsHandler struct {
	hub    *internalWS.Hub
	turns  internalWS.TurnRunner
	jwtKey []byte
}

func NewChatWsHandler(hub *internalWS.Hub, turns internalWS.TurnRunner, jwtSecret string) *ChatWsHandler {
	return &ChatWsHandler{hub: hub, turns: turns, jwtKey: []byte(jwtSecret)}
}

// ServeWs authenticates the client and hands the connection to the hub.
// The token may arrive as a query parameter (browser WebSocket clients
// cannot set headers) or as a standard Bearer header.
func (h *ChatWsHandler) ServeWs(c *fiber.Ctx) error {
	tokenString := c.Query("token")
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing authentication token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return h.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Malformed user ID in token")
	}

	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session ID")
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			internalWS.ServeWs(h.hub, conn, userID, sessionID, h.turns)
		})(c)
	}

	return fiber.ErrUpgradeRequired
}

func (h *ChatWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/chat/:sessionId", h.ServeWs)
}
