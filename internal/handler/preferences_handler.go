package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PreferencesRequest struct {
	Preferences json.RawMessage `json:"preferences"`
}

// GetPreferences returns the user's preference blob, or an empty object
// if nothing was ever written.
func (h *Handler) GetPreferences(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	prefs, err := h.Store.GetUserPreferences(user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, gin.H{"preferences": gin.H{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs.Preferences})
}

// UpdatePreferences replaces the whole blob; there is no merging.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Preferences) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preferences required"})
		return
	}

	prefs, err := h.Store.UpdateUserPreferences(user.ID, req.Preferences)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs.Preferences})
}
