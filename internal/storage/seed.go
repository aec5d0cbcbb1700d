package storage

import (
	"database/sql"
	"errors"
	"log"

	"NexusAssistant_VoiceProject/internal/models"
)

// EnsureCreator seeds the single default creator-flagged account. Safe
// to call on every startup; an existing account is left untouched.
func (s *Store) EnsureCreator(username, passwordHash, fullName string) (models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, err
	}

	user, err = s.CreateUser(username, passwordHash, fullName)
	if err != nil {
		return models.User{}, err
	}
	if err := s.PromoteToCreator(user.ID); err != nil {
		return models.User{}, err
	}
	user.IsCreator = true

	log.Printf("EnsureCreator(): seeded creator account %q (id %d)", username, user.ID)
	return user, nil
}
