package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/cryptox"
	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/server/models"
	"github.com/dmitrijs2005/studymate/internal/server/repositories/accounts"
)

// AccountService owns the account table: credentials plus each user's
// bounded activity history. The table is read fresh for every operation and
// written back whole after every mutation.
//
// Storage failures never reach callers. A failed load yields an empty table
// (logged at WARN) and a failed save is logged at ERROR and dropped.
type AccountService struct {
	repo   accounts.Repository
	logger logging.Logger
	scheme cryptox.Scheme

	// mu serialises load-modify-save cycles within this process.
	mu  sync.Mutex
	now func() time.Time
}

func NewAccountService(repo accounts.Repository, logger logging.Logger, scheme cryptox.Scheme) *AccountService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &AccountService{
		repo:   repo,
		logger: logger,
		scheme: scheme,
		now:    time.Now,
	}
}

// Load returns the current table, or an empty one when the backing store is
// missing or unreadable.
func (s *AccountService) Load(ctx context.Context) models.Table {
	t, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "account table unreadable, using empty table", "error", err)
		return models.Table{}
	}
	if t == nil {
		return models.Table{}
	}
	return t
}

// Save writes t in full. Errors are logged and swallowed.
func (s *AccountService) Save(ctx context.Context, t models.Table) {
	if err := s.repo.Save(ctx, t); err != nil {
		s.logger.Error(ctx, "account table not saved", "error", err)
	}
}

// Authenticate reports whether username exists and credential matches the
// stored one.
func (s *AccountService) Authenticate(ctx context.Context, username, credential string) bool {
	acc, ok := s.Load(ctx)[username]
	if !ok {
		return false
	}
	return cryptox.VerifyCredential(acc.Password, credential)
}

// Register creates username with an empty history. An existing account is
// left untouched and common.ErrorAlreadyExists is returned.
func (s *AccountService) Register(ctx context.Context, username, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.Load(ctx)
	if _, ok := t[username]; ok {
		return common.ErrorAlreadyExists
	}

	t[username] = models.NewAccount(cryptox.HashCredential(s.scheme, credential))
	s.Save(ctx, t)

	s.logger.Info(ctx, "account registered", "username", username)
	return nil
}

// AppendHistory records an activity for username. Empty or unknown usernames
// are ignored.
func (s *AccountService) AppendHistory(ctx context.Context, username string, t models.ActivityType, input string, result any) {
	if username == "" {
		return
	}

	entry, err := models.NewHistoryEntry(t, input, result, s.now())
	if err != nil {
		s.logger.Error(ctx, "history entry not recorded", "username", username, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.Load(ctx)
	acc, ok := table[username]
	if !ok {
		return
	}

	table[username] = acc.WithEntry(entry)
	s.Save(ctx, table)
}

// ReadHistory returns username's history, newest first. Unknown users get an
// empty slice.
func (s *AccountService) ReadHistory(ctx context.Context, username string) []models.HistoryEntry {
	acc, ok := s.Load(ctx)[username]
	if !ok || acc.History == nil {
		return []models.HistoryEntry{}
	}
	return acc.History
}
