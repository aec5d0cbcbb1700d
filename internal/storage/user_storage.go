package storage

import (
	"database/sql"
	"errors"

	"NexusAssistant_VoiceProject/internal/models"

	"modernc.org/sqlite"
)

var ErrUsernameExists = errors.New("username already exists")

func (s *Store) CreateUser(username, passwordHash, fullName string) (models.User, error) {
	createdAt := now()

	res, err := s.db.Exec(
		"INSERT INTO users(username, password_hash, full_name, is_creator, created_at) VALUES(?, ?, ?, 0, ?)",
		username, passwordHash, fullName, createdAt,
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) {
			if sqliteErr.Code() == 2067 { // SQLITE_CONSTRAINT_UNIQUE
				return models.User{}, ErrUsernameExists
			}
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		ID:        int(id),
		Username:  username,
		FullName:  fullName,
		CreatedAt: parseTime(createdAt),
	}, nil
}

func (s *Store) GetUser(id int) (models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, username, password_hash, full_name, is_creator, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *Store) GetUserByUsername(username string) (models.User, error) {
	row := s.db.QueryRow(
		"SELECT id, username, password_hash, full_name, is_creator, created_at FROM users WHERE username = ?", username)
	return scanUser(row)
}

// PromoteToCreator raises the privilege flag. Demotion is not supported.
func (s *Store) PromoteToCreator(userID int) error {
	_, err := s.db.Exec("UPDATE users SET is_creator = 1 WHERE id = ?", userID)
	return err
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var nullName sql.NullString
	var createdStr string

	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&nullName,
		&user.IsCreator,
		&createdStr,
	); err != nil {
		return user, err
	}

	if nullName.Valid {
		user.FullName = nullName.String
	}
	user.CreatedAt = parseTime(createdStr)
	return user, nil
}
