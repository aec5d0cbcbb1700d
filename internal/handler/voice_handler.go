/**
* Name:        voice_handler.go
* Description: Speech endpoints
* Workflow:    base64 audio -> text (STT), text -> base64 audio (TTS)
 */
package handler

import (
	"encoding/base64"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TranscribeRequest struct {
	AudioData string `json:"audioData"` // base64-encoded LINEAR16 16kHz mono
}

type SpeakRequest struct {
	Text string `json:"text"`
}

// Transcribe godoc
// @Summary      Transcribe an audio clip
// @Tags         Voice
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.TranscribeRequest true "base64 audio"
// @Success      200 {object} object{transcription=string}
// @Failure      500 {object} handler.ErrorResponse "transcription failed"
// @Router       /api/voice/transcribe [post]
func (h *Handler) Transcribe(c *gin.Context) {
	if h.Transcriber == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Transcription service unavailable"})
		return
	}

	var req TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AudioData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio data required"})
		return
	}

	audioBytes, err := base64.StdEncoding.DecodeString(req.AudioData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid audio encoding"})
		return
	}

	transcription, err := h.Transcriber.Transcribe(c.Request.Context(), audioBytes)
	if err != nil {
		log.Printf("Transcribe(): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transcription failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcription": transcription})
}

// Speak godoc
// @Summary      Synthesize a spoken reply
// @Tags         Voice
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.SpeakRequest true "text to speak"
// @Success      200 {object} object{audioData=string} "base64 LINEAR16 audio"
// @Router       /api/voice/speak [post]
func (h *Handler) Speak(c *gin.Context) {
	if h.Synthesizer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Speech synthesis unavailable"})
		return
	}

	var req SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text required"})
		return
	}

	audio, err := h.Synthesizer.SynthesizeSpeech(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("Speak(): %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Speech synthesis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"audioData": base64.StdEncoding.EncodeToString(audio)})
}
