package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache holds the per-user booking list in redis. Entries are refreshed after
// every write rather than invalidated, so the next read never pays a miss for
// a list the user is about to look at. A nil redis client disables caching
// and every call becomes a no-op.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a booking cache. redis may be nil.
func NewCache(redis *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: redis, ttl: ttl}
}

type cachedList struct {
	Bookings []Booking `json:"bookings"`
	Total    int       `json:"total"`
}

func listKey(userID uuid.UUID) string {
	return fmt.Sprintf("bookings:user:%s", userID)
}

// GetList returns the cached first page of a user's bookings, or ok=false on
// a miss or any redis failure.
func (c *Cache) GetList(ctx context.Context, userID uuid.UUID) ([]Booking, int, bool) {
	if c == nil || c.redis == nil {
		return nil, 0, false
	}
	raw, err := c.redis.Get(ctx, listKey(userID)).Result()
	if err == redis.Nil {
		return nil, 0, false
	}
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("booking cache read failed")
		return nil, 0, false
	}
	var entry cachedList
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, 0, false
	}
	return entry.Bookings, entry.Total, true
}

// SetList stores the first page of a user's bookings.
func (c *Cache) SetList(ctx context.Context, userID uuid.UUID, bookings []Booking, total int) {
	if c == nil || c.redis == nil {
		return
	}
	raw, err := json.Marshal(cachedList{Bookings: bookings, Total: total})
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, listKey(userID), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("booking cache write failed")
	}
}

// Invalidate drops a user's cached booking list. Used when a refresh would
// race a concurrent write.
func (c *Cache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, listKey(userID)).Err(); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("booking cache invalidate failed")
	}
}
