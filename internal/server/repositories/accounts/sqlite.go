package accounts

import (
	"database/sql"
)

// SQLiteRepository is the embedded SQLite table backend (modernc.org/sqlite).
type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: sqlQueries{
		selectAccounts: `SELECT username, password FROM accounts`,
		selectHistory: `SELECT username, position, type, input, result, created_at
		 FROM history_entries
		 ORDER BY username, position`,
		upsertAccount: `INSERT INTO accounts (username, password) VALUES (?, ?)
		 ON CONFLICT(username) DO UPDATE SET password = excluded.password`,
		deleteHistory: `DELETE FROM history_entries WHERE username = ?`,
		insertHistory: `INSERT INTO history_entries (username, position, type, input, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	}}}
}
