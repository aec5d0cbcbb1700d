/**
* Name:        user_handler.go
* Description: Password account endpoints
* Workflow:    signup, login, profile lookup
 */
package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"NexusAssistant_VoiceProject/internal/auth"
	"NexusAssistant_VoiceProject/internal/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Username string `json:"username" example:"new_user"`
	Password string `json:"password" example:"password123"`
	FullName string `json:"full_name" example:"New User"`
}

type LoginRequest struct {
	Username string `json:"username" example:"creator"`
	Password string `json:"password" example:"password123"`
}

// Signup godoc
// @Summary      Create a user account
// @Description  Registers a new standard-access user. Creator privileges are never granted here.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.SignupRequest true "signup request"
// @Success      200 {object} models.User
// @Failure      400 {object} handler.ErrorResponse
// @Router       /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var credentials SignupRequest
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if strings.TrimSpace(credentials.Username) == "" || strings.TrimSpace(credentials.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and Password cannot be empty"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user, err := h.Store.CreateUser(credentials.Username, string(hashedPassword), credentials.FullName)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		} else {
			log.Printf("[ERROR] Failed to create user (database error): %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user (database error)"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary      Password login
// @Description  Authenticates with username and password and issues a JWT session token.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.LoginRequest true "login request"
// @Success      200 {object} object{token=string}
// @Failure      401 {object} handler.ErrorResponse
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var credentials LoginRequest
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if credentials.Username == "" || credentials.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	user, err := h.Store.GetUserByUsername(credentials.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("[ERROR] GetUserByUsername failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := auth.GenerateToken(user.ID, user.Username, user.IsCreator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// Profile godoc
// @Summary      Current user profile
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.User
// @Router       /api/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}
