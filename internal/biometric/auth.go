package biometric

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"NexusAssistant_VoiceProject/internal/models"
	"NexusAssistant_VoiceProject/internal/storage"
)

// Match thresholds; a best score must strictly exceed these.
const (
	voiceMatchThreshold = 0.7
	faceMatchThreshold  = 0.8
)

// Authentication modalities.
const (
	MethodVoice    = "voice"
	MethodFace     = "face"
	MethodCombined = "combined"
)

// VoiceAnalyzer extracts a characteristics string from an encoded audio
// sample. The LLM client implements it in production.
type VoiceAnalyzer interface {
	AnalyzeVoiceprint(ctx context.Context, audioData string) (characteristics string, confidence float64, err error)
}

// AuthResult reports the outcome of one authentication attempt. A
// failed attempt carries confidence 0 and no user.
type AuthResult struct {
	Success    bool         `json:"success"`
	User       *models.User `json:"user,omitempty"`
	Confidence float64      `json:"confidence"`
	Method     string       `json:"method"`
	IsCreator  bool         `json:"is_creator"`
}

// Authenticator runs 1:N scans of all active biometric profiles against
// a live sample. Every attempt is independent; there is no lockout or
// rate limiting at this layer.
type Authenticator struct {
	store    *storage.Store
	analyzer VoiceAnalyzer
}

func NewAuthenticator(store *storage.Store, analyzer VoiceAnalyzer) *Authenticator {
	return &Authenticator{store: store, analyzer: analyzer}
}

// AuthenticateByVoice analyzes the live audio sample and scans every
// active voiceprint for the best match above the voice threshold.
func (a *Authenticator) AuthenticateByVoice(ctx context.Context, audioData string) AuthResult {
	characteristics, _, err := a.analyzer.AnalyzeVoiceprint(ctx, audioData)
	if err != nil {
		log.Printf("AuthenticateByVoice(): voice analysis failed: %v", err)
		return failedResult(MethodVoice)
	}

	return a.scan(MethodVoice, voiceMatchThreshold, func(p models.BiometricProfile) float64 {
		if p.Voiceprint == "" {
			return 0
		}
		return VoiceSimilarity(characteristics, p.Voiceprint)
	})
}

// AuthenticateByFace scans every active face encoding for the best
// match above the face threshold.
func (a *Authenticator) AuthenticateByFace(ctx context.Context, faceData string) AuthResult {
	return a.scan(MethodFace, faceMatchThreshold, func(p models.BiometricProfile) float64 {
		if p.FaceEncoding == "" {
			return 0
		}
		return FaceSimilarity(faceData, p.FaceEncoding)
	})
}

// AuthenticateCombined succeeds only when voice and face both succeed
// and resolve to the same user. Combined confidence is the mean of the
// two; any asymmetry fails with confidence 0.
func (a *Authenticator) AuthenticateCombined(ctx context.Context, audioData, faceData string) AuthResult {
	voiceAuth := a.AuthenticateByVoice(ctx, audioData)
	faceAuth := a.AuthenticateByFace(ctx, faceData)

	if voiceAuth.Success && faceAuth.Success && voiceAuth.User.ID == faceAuth.User.ID {
		return AuthResult{
			Success:    true,
			User:       voiceAuth.User,
			Confidence: (voiceAuth.Confidence + faceAuth.Confidence) / 2,
			Method:     MethodCombined,
			IsCreator:  voiceAuth.IsCreator,
		}
	}
	return failedResult(MethodCombined)
}

// scan iterates profiles in creation order tracking the strict maximum,
// so the first profile reaching the top score wins ties. A profile that
// cannot be scored counts as 0 and never aborts the scan.
func (a *Authenticator) scan(method string, threshold float64, score func(models.BiometricProfile) float64) AuthResult {
	profiles, err := a.store.ActiveBiometricProfiles()
	if err != nil {
		log.Printf("Authenticator.scan(): failed to load profiles: %v", err)
		return failedResult(method)
	}

	var best *models.BiometricProfile
	bestScore := 0.0
	for i := range profiles {
		s := score(profiles[i])
		if best == nil || s > bestScore {
			best = &profiles[i]
			bestScore = s
		}
	}

	if best == nil || bestScore <= threshold {
		return failedResult(method)
	}

	user, err := a.store.GetUser(best.UserID)
	if err != nil {
		log.Printf("Authenticator.scan(): matched profile %d has no user: %v", best.ID, err)
		return failedResult(method)
	}
	return AuthResult{
		Success:    true,
		User:       &user,
		Confidence: bestScore,
		Method:     method,
		IsCreator:  user.IsCreator,
	}
}

func failedResult(method string) AuthResult {
	return AuthResult{Success: false, Confidence: 0, Method: method}
}

// Enroll creates a biometric profile for the user. A voice sample is
// first run through the analyzer to derive the stored characteristics.
// Both samples are optional; a profile with empty fields simply never
// matches. Enrollment always inserts, it never updates an earlier
// profile.
func (a *Authenticator) Enroll(ctx context.Context, userID int, audioData, faceData string) (models.BiometricProfile, error) {
	var voiceprint string
	if audioData != "" {
		characteristics, _, err := a.analyzer.AnalyzeVoiceprint(ctx, audioData)
		if err != nil {
			return models.BiometricProfile{}, fmt.Errorf("voice analysis failed: %w", err)
		}
		voiceprint = characteristics
	}

	if faceData != "" {
		if err := validateFaceEncoding(faceData); err != nil {
			return models.BiometricProfile{}, err
		}
	}

	return a.store.CreateBiometricProfile(userID, voiceprint, faceData)
}

// validateFaceEncoding enforces the feature-count cap on encodings that
// parse. Unparseable input is stored as-is; the scorers treat it as a
// never-matching profile.
func validateFaceEncoding(faceData string) error {
	var vec []float64
	if err := json.Unmarshal([]byte(faceData), &vec); err != nil {
		return nil
	}
	if len(vec) > models.MaxFaceEncodingFeatures {
		return errors.New("face encoding exceeds the feature limit")
	}
	return nil
}
