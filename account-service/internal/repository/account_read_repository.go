package repository

import (
	"context"
	"errors"
	"time"

	"github.com/eaglebank/accounts/shared/models"
	sharedredis "github.com/eaglebank/accounts/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const accountKeyPrefix = "account:"

// AccountStore is the persistence contract the cache decorates.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) (string, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Update(ctx context.Context, id string, account *models.Account) (*models.Account, error)
}

// CachedAccountRepository serves reads from Redis and falls back to the
// wrapped store, warming the cache on every cold read. Writes go to the
// store first and then refresh the cache. Cache failures never fail a call.
type CachedAccountRepository struct {
	store AccountStore
	cache *sharedredis.JSONCache[models.Account]
}

func NewCachedAccountRepository(store AccountStore, redisClient *goredis.Client, ttl time.Duration) *CachedAccountRepository {
	return &CachedAccountRepository{
		store: store,
		cache: sharedredis.NewJSONCache[models.Account](redisClient, accountKeyPrefix, ttl),
	}
}

func (r *CachedAccountRepository) Create(ctx context.Context, account *models.Account) (string, error) {
	id, err := r.store.Create(ctx, account)
	if err != nil {
		return "", err
	}
	if id != "" {
		cached := account.Clone()
		cached.ID = id
		r.cache.Set(ctx, id, cached)
	}
	return id, nil
}

func (r *CachedAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if account, ok := r.cache.Get(ctx, id); ok {
		return account, nil
	}

	account, err := r.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			r.cache.Delete(ctx, id)
		}
		return nil, err
	}

	r.cache.Set(ctx, id, account)
	return account, nil
}

func (r *CachedAccountRepository) Update(ctx context.Context, id string, account *models.Account) (*models.Account, error) {
	updated, err := r.store.Update(ctx, id, account)
	if err != nil {
		// The row may have changed or vanished; drop the entry so the next
		// read goes to the store.
		r.cache.Delete(ctx, id)
		return nil, err
	}
	r.cache.Set(ctx, id, updated)
	return updated, nil
}
