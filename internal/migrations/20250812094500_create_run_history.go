package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateRunHistory, downCreateRunHistory)
}

func upCreateRunHistory(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE run_history (
		id SERIAL PRIMARY KEY,
		account VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		stories_processed INTEGER NOT NULL DEFAULT 0,
		date_range VARCHAR,
		source VARCHAR,
		error TEXT,
		duration_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX run_history_account_created_at_idx ON run_history (account, created_at DESC);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreateRunHistory(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE run_history;
	`)
	if err != nil {
		return err
	}
	return nil
}
