package models

import (
	"encoding/json"
	"time"
)

// One turn of the assistant conversation log. Context carries the
// emotion tag, whether a system command was triggered and its outcome.
type Conversation struct {
	ID               int             `json:"id"`
	UserID           int             `json:"user_id"`
	Message          string          `json:"message"`
	Response         string          `json:"response"`
	IsVoiceActivated bool            `json:"is_voice_activated"`
	Context          json.RawMessage `json:"context"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Recognized system command phrase issued by a user. Executed and
// Result are attached after the executor ran (or refused) it.
type SystemCommand struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Command   string    `json:"command"`
	Executed  bool      `json:"executed"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Per-user preference blob. At most one row per user; replaced as a
// whole on every write.
type UserPreferences struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	Preferences json.RawMessage `json:"preferences"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
