// Package repomanager opens the account table backend selected in the
// configuration: it dials the database, runs the embedded goose migrations
// or builds the S3 client, and hands back a ready accounts.Repository.
package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/studymate/internal/filex"
	sc "github.com/dmitrijs2005/studymate/internal/server/config"
	"github.com/dmitrijs2005/studymate/internal/server/migrations"
	"github.com/dmitrijs2005/studymate/internal/server/repositories/accounts"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

var ErrUnknownBackend = errors.New("unknown store backend")

var (
	sqlOpen = sql.Open

	// gooseUpContext is a seam for testing goose.UpContext.
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}

	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) accounts.ObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Store bundles the opened repository with whatever must be released on
// shutdown.
type Store struct {
	Repository accounts.Repository
	Backend    string
	closer     func() error
}

// Close releases the underlying connection, if any.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Open builds the repository for c.StoreBackend.
func Open(ctx context.Context, c *sc.Config) (*Store, error) {
	switch c.StoreBackend {
	case sc.StoreFile, "":
		path, err := filex.ResolveWritablePath(c.UsersFile)
		if err != nil {
			return nil, fmt.Errorf("file store: %w", err)
		}
		return &Store{Repository: accounts.NewFileRepository(path), Backend: sc.StoreFile}, nil

	case sc.StoreMemory:
		return &Store{Repository: accounts.NewMemoryRepository(), Backend: sc.StoreMemory}, nil

	case sc.StoreSQLite:
		db, err := openDB(ctx, "sqlite", c.SQLitePath, "sqlite3", migrations.SQLite, "sqlite")
		if err != nil {
			return nil, err
		}
		return &Store{Repository: accounts.NewSQLiteRepository(db), Backend: sc.StoreSQLite, closer: db.Close}, nil

	case sc.StorePostgres:
		db, err := openDB(ctx, "pgx", c.DatabaseDSN, "postgres", migrations.Postgres, "postgres")
		if err != nil {
			return nil, err
		}
		return &Store{Repository: accounts.NewPostgresRepository(db), Backend: sc.StorePostgres, closer: db.Close}, nil

	case sc.StoreS3:
		client, err := newS3Client(ctx, c)
		if err != nil {
			return nil, err
		}
		return &Store{Repository: accounts.NewS3Repository(client, c.S3Bucket, c.S3ObjectKey), Backend: sc.StoreS3}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.StoreBackend)
}

func openDB(ctx context.Context, driver, dsn, dialect string, fsys fs.FS, dir string) (*sql.DB, error) {
	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db, dialect, fsys, dir); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return db, nil
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func RunMigrations(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, dir string) error {
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, dir)
}

func newS3Client(ctx context.Context, c *sc.Config) (accounts.ObjectAPI, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 config error: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}
