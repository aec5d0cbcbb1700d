package storage

import (
	"database/sql"
	"encoding/json"

	"NexusAssistant_VoiceProject/internal/models"
)

func (s *Store) CreateConversation(userID int, message, response string, voiceActivated bool, context json.RawMessage) (models.Conversation, error) {
	createdAt := now()

	res, err := s.db.Exec(
		"INSERT INTO conversations(user_id, message, response, is_voice_activated, context, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		userID, message, response, voiceActivated, string(context), createdAt,
	)
	if err != nil {
		return models.Conversation{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Conversation{}, err
	}
	return models.Conversation{
		ID:               int(id),
		UserID:           userID,
		Message:          message,
		Response:         response,
		IsVoiceActivated: voiceActivated,
		Context:          context,
		CreatedAt:        parseTime(createdAt),
	}, nil
}

// GetConversationHistory returns the user's most recent turns in
// chronological order, at most limit entries.
func (s *Store) GetConversationHistory(userID, limit int) ([]models.Conversation, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, message, response, is_voice_activated, context, created_at
		FROM conversations
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var c models.Conversation
		var nullContext sql.NullString
		var createdStr string

		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &c.Response, &c.IsVoiceActivated, &nullContext, &createdStr); err != nil {
			return nil, err
		}
		if nullContext.Valid && nullContext.String != "" {
			c.Context = json.RawMessage(nullContext.String)
		}
		c.CreatedAt = parseTime(createdStr)
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query walks newest-first for the LIMIT; flip back to chronological.
	for i, j := 0, len(conversations)-1; i < j; i, j = i+1, j-1 {
		conversations[i], conversations[j] = conversations[j], conversations[i]
	}
	return conversations, nil
}
