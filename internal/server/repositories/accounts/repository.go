// Package accounts persists the account table. Every backend loads and saves
// the table as a whole; the account service owns the read-modify-write cycle.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/studymate/internal/server/models"
)

// Repository loads and saves the whole account table.
//
// Load returns an empty, non-nil table when nothing has been stored yet.
// When stored data cannot be read or parsed it returns an empty table
// together with the error, so callers may fail soft.
type Repository interface {
	Load(ctx context.Context) (models.Table, error)
	Save(ctx context.Context, t models.Table) error
}

// encodeTable renders the persisted JSON layout used by the file and S3
// backends: one object keyed by username, indented with four spaces.
func encodeTable(t models.Table) ([]byte, error) {
	if t == nil {
		t = models.Table{}
	}
	b, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode table: %w", err)
	}
	return b, nil
}

func decodeTable(b []byte) (models.Table, error) {
	t := models.Table{}
	if err := json.Unmarshal(b, &t); err != nil {
		return models.Table{}, fmt.Errorf("decode table: %w", err)
	}
	if t == nil {
		// literal null
		t = models.Table{}
	}
	return t, nil
}
