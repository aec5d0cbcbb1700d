/**
* Name:        biometric_handler.go
* Description: Biometric authentication and enrollment endpoints
* Workflow:    live sample in, 1:N scan, JWT out on match
 */
package handler

import (
	"log"
	"net/http"

	"NexusAssistant_VoiceProject/internal/auth"
	"NexusAssistant_VoiceProject/internal/biometric"

	"github.com/gin-gonic/gin"
)

type BiometricAuthRequest struct {
	AudioData string `json:"audioData"`
	FaceData  string `json:"faceData"`
	Method    string `json:"method" example:"voice"`
}

type EnrollRequest struct {
	AudioData string `json:"audioData"`
	FaceData  string `json:"faceData"`
}

// AuthenticateBiometric godoc
// @Summary      Biometric login
// @Description  Scans all enrolled profiles against the live sample. Method is voice, face or combined; combined requires both modalities to agree on the same user.
// @Tags         Biometric
// @Accept       json
// @Produce      json
// @Param        request body handler.BiometricAuthRequest true "live samples"
// @Success      200 {object} object{success=bool,user=models.User,confidence=number,method=string,token=string}
// @Failure      401 {object} object{success=bool,confidence=number,method=string}
// @Router       /auth/biometric [post]
func (h *Handler) AuthenticateBiometric(c *gin.Context) {
	var req BiometricAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	method := req.Method
	if method == "" {
		switch {
		case req.AudioData != "" && req.FaceData != "":
			method = biometric.MethodCombined
		case req.FaceData != "":
			method = biometric.MethodFace
		default:
			method = biometric.MethodVoice
		}
	}

	var result biometric.AuthResult
	switch method {
	case biometric.MethodVoice:
		if req.AudioData == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Audio data required"})
			return
		}
		result = h.Authenticator.AuthenticateByVoice(c.Request.Context(), req.AudioData)
	case biometric.MethodFace:
		if req.FaceData == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Face data required"})
			return
		}
		result = h.Authenticator.AuthenticateByFace(c.Request.Context(), req.FaceData)
	case biometric.MethodCombined:
		if req.AudioData == "" || req.FaceData == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Audio and face data required"})
			return
		}
		result = h.Authenticator.AuthenticateCombined(c.Request.Context(), req.AudioData, req.FaceData)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid method"})
		return
	}

	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}

	tokenString, err := auth.GenerateToken(result.User.ID, result.User.Username, result.User.IsCreator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	log.Printf("AuthenticateBiometric(): user %s authenticated by %s (confidence %.2f)",
		result.User.Username, result.Method, result.Confidence)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"user":       result.User,
		"confidence": result.Confidence,
		"method":     result.Method,
		"is_creator": result.IsCreator,
		"token":      tokenString,
	})
}

// EnrollBiometric godoc
// @Summary      Enroll biometric samples
// @Description  Stores a new biometric profile for the authenticated user. Re-enrollment adds another profile rather than replacing the first.
// @Tags         Biometric
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.EnrollRequest true "samples to enroll"
// @Success      200 {object} models.BiometricProfile
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/biometric/enroll [post]
func (h *Handler) EnrollBiometric(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profile, err := h.Authenticator.Enroll(c.Request.Context(), user.ID, req.AudioData, req.FaceData)
	if err != nil {
		log.Printf("EnrollBiometric(): enrollment failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enrollment failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}
