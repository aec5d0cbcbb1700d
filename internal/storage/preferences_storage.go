package storage

import (
	"encoding/json"

	"NexusAssistant_VoiceProject/internal/models"
)

// GetUserPreferences returns the user's preference blob, or
// sql.ErrNoRows from the underlying scan if none was ever written.
func (s *Store) GetUserPreferences(userID int) (models.UserPreferences, error) {
	row := s.db.QueryRow(
		"SELECT id, user_id, preferences, created_at, updated_at FROM user_preferences WHERE user_id = ?", userID)

	var p models.UserPreferences
	var prefsStr, createdStr, updatedStr string
	if err := row.Scan(&p.ID, &p.UserID, &prefsStr, &createdStr, &updatedStr); err != nil {
		return p, err
	}
	p.Preferences = json.RawMessage(prefsStr)
	p.CreatedAt = parseTime(createdStr)
	p.UpdatedAt = parseTime(updatedStr)
	return p, nil
}

// UpdateUserPreferences creates the row on first write and replaces the
// whole blob on every later one. No merging.
func (s *Store) UpdateUserPreferences(userID int, preferences json.RawMessage) (models.UserPreferences, error) {
	ts := now()

	_, err := s.db.Exec(`
		INSERT INTO user_preferences(user_id, preferences, created_at, updated_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET preferences = excluded.preferences, updated_at = excluded.updated_at
	`, userID, string(preferences), ts, ts)
	if err != nil {
		return models.UserPreferences{}, err
	}

	return s.GetUserPreferences(userID)
}
