package models

import "time"

// Maximum number of features accepted in a face encoding vector.
const MaxFaceEncodingFeatures = 128

// Biometric enrollment record. Voiceprint holds encoded voice
// characteristics, FaceEncoding a JSON array of numeric features.
// Profiles are soft-deleted via IsActive, never removed.
type BiometricProfile struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Voiceprint   string    `json:"voiceprint"`
	FaceEncoding string    `json:"face_encoding"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
