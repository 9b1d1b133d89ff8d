package accounts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/studymate/internal/filex"
	"github.com/dmitrijs2005/studymate/internal/server/models"
)

// FileRepository stores the table as one JSON document on local disk.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path reports where the table is stored.
func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) Load(ctx context.Context) (models.Table, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Table{}, nil
		}
		return models.Table{}, fmt.Errorf("file error: %w", err)
	}

	t, err := decodeTable(b)
	if err != nil {
		return models.Table{}, fmt.Errorf("file error: %s: %w", r.path, err)
	}
	return t, nil
}

// Save replaces the whole file. The write goes through a temp file and a
// rename, so a crash leaves either the previous or the new table.
func (r *FileRepository) Save(ctx context.Context, t models.Table) error {
	b, err := encodeTable(t)
	if err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(r.path, b, 0o600); err != nil {
		return fmt.Errorf("file error: %w", err)
	}
	return nil
}
