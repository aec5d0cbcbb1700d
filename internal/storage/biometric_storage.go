package storage

import (
	"database/sql"

	"NexusAssistant_VoiceProject/internal/models"
)

// CreateBiometricProfile always inserts a new row. Re-enrollment
// therefore appends a second profile for the same user instead of
// updating the first one; scans consider all active rows and ties
// resolve to the earliest-created profile.
func (s *Store) CreateBiometricProfile(userID int, voiceprint, faceEncoding string) (models.BiometricProfile, error) {
	createdAt := now()

	res, err := s.db.Exec(
		"INSERT INTO biometric_profiles(user_id, voiceprint, face_encoding, is_active, created_at, updated_at) VALUES(?, ?, ?, 1, ?, ?)",
		userID, voiceprint, faceEncoding, createdAt, createdAt,
	)
	if err != nil {
		return models.BiometricProfile{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.BiometricProfile{}, err
	}
	return models.BiometricProfile{
		ID:           int(id),
		UserID:       userID,
		Voiceprint:   voiceprint,
		FaceEncoding: faceEncoding,
		IsActive:     true,
		CreatedAt:    parseTime(createdAt),
		UpdatedAt:    parseTime(createdAt),
	}, nil
}

// ActiveBiometricProfiles returns every active profile in creation
// order. The authenticator depends on this ordering for its tie-break.
func (s *Store) ActiveBiometricProfiles() ([]models.BiometricProfile, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, voiceprint, face_encoding, is_active, created_at, updated_at
		FROM biometric_profiles
		WHERE is_active = 1
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.BiometricProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetBiometricProfile returns the earliest active profile for the user,
// or sql.ErrNoRows if none exists.
func (s *Store) GetBiometricProfile(userID int) (models.BiometricProfile, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, voiceprint, face_encoding, is_active, created_at, updated_at
		FROM biometric_profiles
		WHERE user_id = ? AND is_active = 1
		ORDER BY id ASC
		LIMIT 1
	`, userID)
	if err != nil {
		return models.BiometricProfile{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.BiometricProfile{}, err
		}
		return models.BiometricProfile{}, sql.ErrNoRows
	}
	return scanProfile(rows)
}

// DeactivateBiometricProfiles soft-deletes every profile of the user.
// Rows stay on disk but are excluded from authentication scans.
func (s *Store) DeactivateBiometricProfiles(userID int) error {
	_, err := s.db.Exec(
		"UPDATE biometric_profiles SET is_active = 0, updated_at = ? WHERE user_id = ?",
		now(), userID,
	)
	return err
}

func scanProfile(rows *sql.Rows) (models.BiometricProfile, error) {
	var p models.BiometricProfile
	var nullVoice, nullFace sql.NullString
	var createdStr, updatedStr string

	if err := rows.Scan(&p.ID, &p.UserID, &nullVoice, &nullFace, &p.IsActive, &createdStr, &updatedStr); err != nil {
		return p, err
	}
	if nullVoice.Valid {
		p.Voiceprint = nullVoice.String
	}
	if nullFace.Valid {
		p.FaceEncoding = nullFace.String
	}
	p.CreatedAt = parseTime(createdStr)
	p.UpdatedAt = parseTime(updatedStr)
	return p, nil
}
