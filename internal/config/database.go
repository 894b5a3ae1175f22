package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database.
//
// Dates are stored reversed (YYYY-MM-DD) so the lexical order of the text
// column equals chronological order; amounts are stored as their signed
// textual form, the sign being what classifies spending vs income.
func createTables(db *sqlx.DB) error {
	// Create users table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create transactions table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			transaction_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			amount TEXT NOT NULL,
			PRIMARY KEY (user_id, transaction_id)
		)
	`)
	if err != nil {
		return err
	}

	// Create transaction_tags table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transaction_tags (
			user_id INTEGER NOT NULL,
			transaction_id INTEGER NOT NULL,
			tag TEXT NOT NULL,
			tag_position INTEGER NOT NULL,
			PRIMARY KEY (user_id, transaction_id, tag),
			FOREIGN KEY (user_id, transaction_id)
				REFERENCES transactions(user_id, transaction_id)
				ON DELETE CASCADE
		)
	`)
	if err != nil {
		return err
	}

	return nil
}
