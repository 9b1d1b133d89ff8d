package accounts

import (
	"database/sql"
)

// PostgresRepository is the PostgreSQL table backend (pgx stdlib driver).
type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: sqlQueries{
		selectAccounts: `SELECT username, password FROM accounts`,
		selectHistory: `SELECT username, position, type, input, result, created_at
		 FROM history_entries
		 ORDER BY username, position`,
		upsertAccount: `INSERT INTO accounts (username, password)
		 VALUES ($1, $2)
		 ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password`,
		deleteHistory: `DELETE FROM history_entries WHERE username = $1`,
		insertHistory: `INSERT INTO history_entries (username, position, type, input, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
	}}}
}
