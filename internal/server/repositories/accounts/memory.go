package accounts

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/studymate/internal/server/models"
)

// MemoryRepository keeps the table in process memory. Load and Save copy the
// table so callers never share history slices with the stored state.
type MemoryRepository struct {
	mu    sync.RWMutex
	table models.Table
	// SaveErr, when set, is returned by Save without storing anything.
	SaveErr error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{table: models.Table{}}
}

func (r *MemoryRepository) Load(ctx context.Context) (models.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Clone(), nil
}

func (r *MemoryRepository) Save(ctx context.Context, t models.Table) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table = t.Clone()
	return nil
}
