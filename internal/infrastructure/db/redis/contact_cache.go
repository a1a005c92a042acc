package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/contacts-api/internal/api/metrics"
	"github.com/99minutos/contacts-api/internal/core/domain"
	"github.com/99minutos/contacts-api/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// cacheClient is the subset of *redis.Client the cache uses.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedContactRepository wraps a ContactRepository with a read-through cache
// for single-contact lookups.
// Key format: contact:<contactId>
//
// The wrapped repository stays the source of truth: Redis failures are logged
// and the call falls through to it.
type CachedContactRepository struct {
	next   ports.ContactRepository
	client cacheClient
	ttl    time.Duration
	log    zerolog.Logger
}

var _ ports.ContactRepository = (*CachedContactRepository)(nil)

// NewCachedContactRepository decorates next with a cache backed by client.
func NewCachedContactRepository(next ports.ContactRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedContactRepository {
	return newCachedContactRepository(next, client, ttl, log)
}

func newCachedContactRepository(next ports.ContactRepository, client cacheClient, ttl time.Duration, log zerolog.Logger) *CachedContactRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedContactRepository{next: next, client: client, ttl: ttl, log: log}
}

func (r *CachedContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	return r.next.Create(ctx, c)
}

func (r *CachedContactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	return r.next.List(ctx)
}

// FindByContactID serves from Redis when possible and populates it on a miss.
// Not-found results are not cached.
func (r *CachedContactRepository) FindByContactID(ctx context.Context, contactID string) (*domain.Contact, error) {
	key := r.key(contactID)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var c domain.Contact
		jsonErr := json.Unmarshal(raw, &c)
		if jsonErr == nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return &c, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		r.log.Warn().Err(jsonErr).Str("contact_id", contactID).Msg("discarding corrupt cache entry")
	case errors.Is(err, redis.Nil):
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		r.log.Warn().Err(err).Str("contact_id", contactID).Msg("cache read failed, falling back to store")
	}

	c, err := r.next.FindByContactID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(c); err == nil {
		if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			r.log.Warn().Err(err).Str("contact_id", contactID).Msg("cache write failed")
		}
	}
	return c, nil
}

// Update writes through to the store and then drops the cached copy.
func (r *CachedContactRepository) Update(ctx context.Context, contactID string, u domain.ContactUpdate) (*domain.Contact, error) {
	c, err := r.next.Update(ctx, contactID, u)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, contactID)
	return c, nil
}

func (r *CachedContactRepository) Delete(ctx context.Context, contactID string) error {
	if err := r.next.Delete(ctx, contactID); err != nil {
		return err
	}
	r.invalidate(ctx, contactID)
	return nil
}

func (r *CachedContactRepository) invalidate(ctx context.Context, contactID string) {
	if err := r.client.Del(ctx, r.key(contactID)).Err(); err != nil {
		r.log.Warn().Err(err).Str("contact_id", contactID).Msg("cache invalidation failed")
	}
}

func (r *CachedContactRepository) key(contactID string) string {
	return fmt.Sprintf("contact:%s", contactID)
}
