package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sq-invest/crm-service/internal/domain"
)

// memoryAccountRepository keeps accounts in process, in insertion order.
// It is used when no Postgres DSN is configured.
type memoryAccountRepository struct {
	mu       sync.RWMutex
	accounts []domain.Account
	now      func() time.Time
}

// NewMemoryAccountRepository instantiates an in-process repository.
func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccountRepository{now: time.Now}
}

func (r *memoryAccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.ID == account.ID || existing.Username == account.Username {
			return ErrDuplicateAccount
		}
	}
	ts := r.now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = ts
	}
	account.UpdatedAt = ts
	r.accounts = append(r.accounts, cloneAccount(*account))
	return nil
}

func (r *memoryAccountRepository) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, existing := range r.accounts {
		if existing.ID == account.ID {
			idx = i
			continue
		}
		if existing.Username == account.Username {
			return ErrDuplicateAccount
		}
	}
	if idx < 0 {
		return pgx.ErrNoRows
	}
	account.CreatedAt = r.accounts[idx].CreatedAt
	account.UpdatedAt = r.now().UTC()
	r.accounts[idx] = cloneAccount(*account)
	return nil
}

func (r *memoryAccountRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.accounts {
		if existing.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	return r.find(func(a domain.Account) bool { return a.ID == id })
}

func (r *memoryAccountRepository) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	return r.find(func(a domain.Account) bool { return a.Username == username })
}

func (r *memoryAccountRepository) List(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, cloneAccount(a))
	}
	return out, nil
}

func (r *memoryAccountRepository) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			ts := at
			r.accounts[i].LastLogin = &ts
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memoryAccountRepository) find(match func(domain.Account) bool) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if match(a) {
			out := cloneAccount(a)
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func cloneAccount(a domain.Account) domain.Account {
	out := a
	out.Permissions = a.Permissions.Clone()
	if a.LastLogin != nil {
		ts := *a.LastLogin
		out.LastLogin = &ts
	}
	return out
}
