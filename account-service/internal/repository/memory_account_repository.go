package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/eaglebank/accounts/shared/models"
)

// MemoryAccountRepository keeps accounts in process memory. Records are
// copied on the way in and out so callers never alias stored state.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[string]*models.Account)}
}

func (r *MemoryAccountRepository) Create(_ context.Context, account *models.Account) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.ID]; exists {
		return "", fmt.Errorf("failed to create account: id %s already exists", account.ID)
	}
	r.accounts[account.ID] = account.Clone()
	return account.ID, nil
}

func (r *MemoryAccountRepository) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return account.Clone(), nil
}

func (r *MemoryAccountRepository) Update(_ context.Context, id string, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[id]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	stored.Status = account.Status
	stored.SuspensionReason = account.SuspensionReason
	stored.UpdatedAt = account.UpdatedAt
	return stored.Clone(), nil
}
