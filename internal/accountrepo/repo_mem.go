// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/awesomegic/gic-bank/internal/domain"
)

// RepoMem is the process-wide in-memory account registry. The mutex guards
// the map only; each account serializes its own postings.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewRepoMem returns an empty account registry.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[string]*domain.Account),
	}
}

// Create registers an empty ledger under the given account ID.
func (r *RepoMem) Create(ctx context.Context, accountID string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[accountID]; ok {
		return nil, domain.ErrAccountAlreadyExists
	}

	account := domain.NewAccount(accountID)
	r.accounts[accountID] = account

	return account, nil
}

// GetOrCreate returns the ledger for the given account ID, registering an
// empty one first if the ID is unknown.
func (r *RepoMem) GetOrCreate(ctx context.Context, accountID string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account, ok := r.accounts[accountID]; ok {
		return account, nil
	}

	account := domain.NewAccount(accountID)
	r.accounts[accountID] = account

	return account, nil
}

// Get returns the ledger for the given account ID.
func (r *RepoMem) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// List returns all registered ledgers ordered by account ID.
func (r *RepoMem) List(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		out = append(out, account)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountID < out[j].AccountID
	})

	return out, nil
}
