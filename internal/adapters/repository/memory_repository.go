package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

var (
	_ domain.LedgerRepository = (*InMemoryLedgerRepository)(nil)
	_ domain.UserRepository   = (*InMemoryUserRepository)(nil)
)

// InMemoryLedgerRepository keeps ledgers in their storage form so a Load never
// aliases a Ledger handed to an earlier Save.
type InMemoryLedgerRepository struct {
	store map[string]map[string][]string

	mu sync.RWMutex
}

func NewInMemoryLedgerRepository() *InMemoryLedgerRepository {
	return &InMemoryLedgerRepository{
		store: make(map[string]map[string][]string),
	}
}

func (r *InMemoryLedgerRepository) Load(ctx context.Context, username string) (domain.Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.ParseLedger(r.store[username]), nil
}

func (r *InMemoryLedgerRepository) Save(ctx context.Context, username string, ledger domain.Ledger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[username] = ledger.Raw()
	return nil
}

type InMemoryUserRepository struct {
	store map[string]domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[user.Username]; ok {
		return domain.ErrUserAlreadyExists
	}

	r.store[user.Username] = *user
	return nil
}

func (r *InMemoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}
