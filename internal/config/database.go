package config

import (
	"fmt"

	_ "github.com/glebarez/go-sqlite" // pure-Go SQLite driver
	"github.com/jmoiron/sqlx"
)

// SetupDatabase opens the SQLite database and prepares the schema
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite allows a single writer; serialize access through one
	// connection rather than racing on SQLITE_BUSY
	db.SetMaxOpenConns(1)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create credentials table; it holds exactly one row, overwritten
	// in place on credential change
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS credentials (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			username TEXT NOT NULL,
			password TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create history table (append-only card-generation log)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			round_number INTEGER NOT NULL,
			number1 INTEGER NOT NULL,
			number2 INTEGER NOT NULL,
			number3 INTEGER NOT NULL,
			number4 INTEGER NOT NULL,
			number5 INTEGER NOT NULL,
			system_time TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Index for the per-user max-round lookup
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_history_user_round
		ON history(username, round_number)
	`)
	return err
}
