package storage

import (
	"database/sql"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// timeFormat is used for every timestamp column. SQLite stores times as
// text, so parsing must match what the writers produce.
const timeFormat = time.RFC3339Nano

// Store owns the database handle. It is created once in main and passed
// to every component that needs it; there is no package-level instance.
//
// The pool is capped at a single connection, which serializes all reads
// and writes. With the default in-memory DSN that also keeps every
// caller on the same database.
type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("storage.Open(): database ready (dsn: %s)", dsn)
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"username" TEXT NOT NULL UNIQUE,
			"password_hash" TEXT NOT NULL,
			"full_name" TEXT,
			"is_creator" INTEGER NOT NULL DEFAULT 0,
			"created_at" TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS biometric_profiles (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"user_id" INTEGER NOT NULL,
			"voiceprint" TEXT,
			"face_encoding" TEXT,
			"is_active" INTEGER NOT NULL DEFAULT 1,
			"created_at" TEXT NOT NULL,
			"updated_at" TEXT NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS conversations (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"user_id" INTEGER NOT NULL,
			"message" TEXT NOT NULL,
			"response" TEXT NOT NULL,
			"is_voice_activated" INTEGER NOT NULL DEFAULT 0,
			"context" TEXT,
			"created_at" TEXT NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS system_commands (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"user_id" INTEGER NOT NULL,
			"command" TEXT NOT NULL,
			"executed" INTEGER NOT NULL DEFAULT 0,
			"result" TEXT,
			"created_at" TEXT NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			"id" INTEGER PRIMARY KEY AUTOINCREMENT,
			"user_id" INTEGER NOT NULL UNIQUE,
			"preferences" TEXT NOT NULL,
			"created_at" TEXT NOT NULL,
			"updated_at" TEXT NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(timeFormat)
}

func parseTime(v string) time.Time {
	t, _ := time.Parse(timeFormat, v)
	return t
}
