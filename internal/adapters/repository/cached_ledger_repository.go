package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

var _ domain.LedgerRepository = (*CachedLedgerRepository)(nil)

const ledgerCacheTTL = 30 * time.Minute

// CachedLedgerRepository is a read-through Redis cache in front of another
// ledger store. Redis failures are logged and fall through to the store.
type CachedLedgerRepository struct {
	next  domain.LedgerRepository
	cache *redis.Client
}

func NewCachedLedgerRepository(next domain.LedgerRepository, cache *redis.Client) *CachedLedgerRepository {
	return &CachedLedgerRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedLedgerRepository) cacheKey(username string) string {
	return fmt.Sprintf("ledger:%s", username)
}

func (r *CachedLedgerRepository) invalidate(ctx context.Context, username string) {
	if err := r.cache.Del(ctx, r.cacheKey(username)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", username, err)
	}
}

func (r *CachedLedgerRepository) Load(ctx context.Context, username string) (domain.Ledger, error) {
	key := r.cacheKey(username)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var raw map[string][]string
		if err := json.Unmarshal([]byte(val), &raw); err == nil {
			return domain.ParseLedger(raw), nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", username)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	ledger, err := r.next.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(ledger.Raw()); err == nil {
		if setErr := r.cache.Set(ctx, key, data, ledgerCacheTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return ledger, nil
}

func (r *CachedLedgerRepository) Save(ctx context.Context, username string, ledger domain.Ledger) error {
	// Invalidate on both sides of the write so a concurrent Load cannot
	// repopulate the key with the old ledger after we return.
	r.invalidate(ctx, username)
	if err := r.next.Save(ctx, username, ledger); err != nil {
		return err
	}
	r.invalidate(ctx, username)
	return nil
}
