package accounts

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/studymate/internal/dbx"
	"github.com/dmitrijs2005/studymate/internal/server/models"
)

// sqlQueries holds the dialect-specific statements of a SQL backend.
type sqlQueries struct {
	selectAccounts string
	selectHistory  string
	upsertAccount  string
	deleteHistory  string
	insertHistory  string
}

// sqlRepository maps the table onto accounts and history_entries. Save
// upserts every account and replaces its history inside one transaction, so
// accounts missing from a soft-failed Load are never dropped.
type sqlRepository struct {
	db *sql.DB
	q  sqlQueries
}

func (r *sqlRepository) Load(ctx context.Context) (models.Table, error) {
	t := models.Table{}

	rows, err := r.db.QueryContext(ctx, r.q.selectAccounts)
	if err != nil {
		return models.Table{}, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, password string
		if err := rows.Scan(&name, &password); err != nil {
			return models.Table{}, fmt.Errorf("db error: %w", err)
		}
		t[name] = models.NewAccount(password)
	}
	if err := rows.Err(); err != nil {
		return models.Table{}, fmt.Errorf("db error: %w", err)
	}

	hrows, err := r.db.QueryContext(ctx, r.q.selectHistory)
	if err != nil {
		return models.Table{}, fmt.Errorf("db error: %w", err)
	}
	defer hrows.Close()

	for hrows.Next() {
		var (
			name   string
			pos    int
			e      models.HistoryEntry
			typ    string
			result string
		)
		if err := hrows.Scan(&name, &pos, &typ, &e.Input, &result, &e.Timestamp); err != nil {
			return models.Table{}, fmt.Errorf("db error: %w", err)
		}
		acc, ok := t[name]
		if !ok {
			continue
		}
		e.Type = models.ActivityType(typ)
		e.Result = compactJSON(result)
		acc.History = append(acc.History, e)
		t[name] = acc
	}
	if err := hrows.Err(); err != nil {
		return models.Table{}, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *sqlRepository) Save(ctx context.Context, t models.Table) error {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, name := range names {
			acc := t[name]

			if _, err := tx.ExecContext(ctx, r.q.upsertAccount, name, acc.Password); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			if _, err := tx.ExecContext(ctx, r.q.deleteHistory, name); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			for pos, e := range acc.History {
				_, err := tx.ExecContext(ctx, r.q.insertHistory,
					name, pos, string(e.Type), e.Input, string(e.Result), e.Timestamp)
				if err != nil {
					return fmt.Errorf("db error: %w", err)
				}
			}
		}
		return nil
	})
}

func compactJSON(s string) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return json.RawMessage(s)
	}
	return buf.Bytes()
}
