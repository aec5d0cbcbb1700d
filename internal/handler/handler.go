/**
* Name:        handler.go
* Description: Shared handler state and helpers
* Workflow:    constructed once in main, methods registered as gin routes
 */
package handler

import (
	"net/http"

	"NexusAssistant_VoiceProject/internal/biometric"
	"NexusAssistant_VoiceProject/internal/llm"
	"NexusAssistant_VoiceProject/internal/models"
	"NexusAssistant_VoiceProject/internal/nexus"
	"NexusAssistant_VoiceProject/internal/storage"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"error description"`
}

// Handler carries every injected dependency. Transcriber and
// Synthesizer may be nil when no Google credentials are configured; the
// corresponding endpoints then answer 503.
type Handler struct {
	Store         *storage.Store
	Authenticator *biometric.Authenticator
	Orchestrator  *nexus.Orchestrator
	Transcriber   *llm.Transcriber
	Synthesizer   *llm.Synthesizer
}

// currentUser resolves the authenticated user set by the auth
// middleware. Writes the error response itself on failure.
func (h *Handler) currentUser(c *gin.Context) (models.User, bool) {
	userID := c.GetInt("userID")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return models.User{}, false
	}

	user, err := h.Store.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return models.User{}, false
	}
	return user, true
}
