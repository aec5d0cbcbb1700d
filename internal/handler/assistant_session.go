/**
* Name:        assistant_session.go
* Description: WebSocket conversation session
* Workflow:    token check, upgrade, per-message orchestrated turns
 */
package handler

import (
	"context"
	"log"
	"net/http"

	"NexusAssistant_VoiceProject/internal/auth"
	"NexusAssistant_VoiceProject/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type sessionMessage struct {
	Message          string `json:"message"`
	IsVoiceActivated bool   `json:"isVoiceActivated"`
}

// HandleAssistantSession godoc
// @Summary      WebSocket assistant session
// @Description  Not a standard HTTP API: connect with the ws:// scheme. Authentication uses the 'token' query parameter since WebSocket clients cannot set headers reliably.
// @Tags         WebSocket
// @Param        token query string true "JWT issued at login"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} handler.ErrorResponse
// @Router       /ws/assistant [get]
func (h *Handler) HandleAssistantSession(c *gin.Context) {
	tokenString := c.Query("token")

	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	user, err := h.Store.GetUser(claims.UserID)
	if err != nil {
		log.Printf("HandleAssistantSession(): failed to get user for websocket: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("HandleAssistantSession(): failed to upgrade to WebSocket: user %s, %v", user.Username, err)
		return
	}

	h.runAssistantSession(conn, user)
}

func (h *Handler) runAssistantSession(conn *websocket.Conn, user models.User) {
	defer conn.Close()

	sessionID := uuid.New().String()
	log.Printf("runAssistantSession(): session %s started for user: %s", sessionID, user.Username)

ReadLoop:
	for {
		var msg sessionMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("runAssistantSession(): error reading message from user %s: %v", user.Username, err)
			break ReadLoop
		}

		if msg.Message == "" {
			continue
		}

		result := h.Orchestrator.ProcessMessage(context.Background(), user, msg.Message, msg.IsVoiceActivated)
		if err := conn.WriteJSON(result); err != nil {
			log.Printf("runAssistantSession(): error sending response to user %s: %v", user.Username, err)
			break ReadLoop
		}
	}
	log.Printf("runAssistantSession(): session %s ended for user: %s", sessionID, user.Username)
}
