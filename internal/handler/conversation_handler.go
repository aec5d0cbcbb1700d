/**
* Name:        conversation_handler.go
* Description: Conversation turn and history endpoints
* Workflow:    utterance in, orchestrated turn out, logs queryable
 */
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ConversationRequest struct {
	Message          string `json:"message"`
	IsVoiceActivated bool   `json:"isVoiceActivated"`
}

// Converse godoc
// @Summary      One assistant conversation turn
// @Description  Classifies the utterance, runs a system command when one is recognized, generates the assistant reply and appends the turn to the log.
// @Tags         Nexus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.ConversationRequest true "user utterance"
// @Success      200 {object} nexus.TurnResult
// @Router       /api/nexus/conversation [post]
func (h *Handler) Converse(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message required"})
		return
	}

	result := h.Orchestrator.ProcessMessage(c.Request.Context(), user, req.Message, req.IsVoiceActivated)
	c.JSON(http.StatusOK, result)
}

// GetConversations godoc
// @Summary      Conversation history
// @Description  Returns the user's recent turns in chronological order.
// @Tags         Nexus
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "max turns (default 20)"
// @Success      200 {object} object{conversations=[]models.Conversation}
// @Router       /api/conversations [get]
func (h *Handler) GetConversations(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	conversations, err := h.Store.GetConversationHistory(user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GetSystemCommands godoc
// @Summary      System command records
// @Description  Returns the user's recognized command phrases with their execution outcomes, newest first.
// @Tags         Nexus
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} object{commands=[]models.SystemCommand}
// @Router       /api/commands [get]
func (h *Handler) GetSystemCommands(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	commands, err := h.Store.GetSystemCommands(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"commands": commands})
}
