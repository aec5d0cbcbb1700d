package models

import "time"

// Registered user. IsCreator marks the elevated privilege tier with
// unrestricted access to system commands.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	IsCreator    bool      `json:"is_creator"`
	CreatedAt    time.Time `json:"created_at"`
}
