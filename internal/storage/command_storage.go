package storage

import (
	"database/sql"

	"NexusAssistant_VoiceProject/internal/models"
)

// CreateSystemCommand records a recognized command phrase before it is
// executed. The outcome is attached later via MarkCommandExecuted.
func (s *Store) CreateSystemCommand(userID int, command string) (models.SystemCommand, error) {
	createdAt := now()

	res, err := s.db.Exec(
		"INSERT INTO system_commands(user_id, command, executed, created_at) VALUES(?, ?, 0, ?)",
		userID, command, createdAt,
	)
	if err != nil {
		return models.SystemCommand{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.SystemCommand{}, err
	}
	return models.SystemCommand{
		ID:        int(id),
		UserID:    userID,
		Command:   command,
		CreatedAt: parseTime(createdAt),
	}, nil
}

func (s *Store) MarkCommandExecuted(id int, executed bool, result string) error {
	_, err := s.db.Exec(
		"UPDATE system_commands SET executed = ?, result = ? WHERE id = ?",
		executed, result, id,
	)
	return err
}

// GetSystemCommands returns the user's command records, newest first.
func (s *Store) GetSystemCommands(userID int) ([]models.SystemCommand, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, command, executed, result, created_at
		FROM system_commands
		WHERE user_id = ?
		ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commands []models.SystemCommand
	for rows.Next() {
		var cmd models.SystemCommand
		var nullResult sql.NullString
		var createdStr string

		if err := rows.Scan(&cmd.ID, &cmd.UserID, &cmd.Command, &cmd.Executed, &nullResult, &createdStr); err != nil {
			return nil, err
		}
		if nullResult.Valid {
			cmd.Result = nullResult.String
		}
		cmd.CreatedAt = parseTime(createdStr)
		commands = append(commands, cmd)
	}
	return commands, rows.Err()
}
