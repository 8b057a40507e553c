package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and ensures
// the schema exists. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			timestamp DATETIME NOT NULL,
			merchant_id TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			amount REAL NOT NULL,
			currency TEXT NOT NULL,
			country TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			processor TEXT NOT NULL,
			status TEXT NOT NULL,
			decline_reason TEXT,
			decline_category TEXT,
			is_recoverable INTEGER NOT NULL DEFAULT 0,
			is_returning_customer INTEGER NOT NULL DEFAULT 0,
			bin TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_country ON transactions(country)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_payment_method ON transactions(payment_method)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_processor ON transactions(processor)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp)`,

		`CREATE TABLE IF NOT EXISTS feed_imports (
			file_hash TEXT PRIMARY KEY,
			record_count INTEGER NOT NULL,
			imported_at DATETIME NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	return nil
}
