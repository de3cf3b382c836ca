package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	cache := NewCache(client, 5*time.Minute)
	ctx := context.Background()
	userID := uuid.New()

	sample := []Booking{
		{ID: uuid.New(), BookingNumber: "RF12345678ABCD", Status: StatusConfirmed, Total: 1190000},
		{ID: uuid.New(), BookingNumber: "RF87654321WXYZ", Status: StatusPending, Total: 650000},
	}

	t.Run("SetAndGetList", func(t *testing.T) {
		cache.SetList(ctx, userID, sample, 7)

		got, total, ok := cache.GetList(ctx, userID)
		require.True(t, ok)
		assert.Equal(t, 7, total)
		require.Len(t, got, 2)
		assert.Equal(t, sample[0].BookingNumber, got[0].BookingNumber)
		assert.Equal(t, sample[1].Total, got[1].Total)
	})

	t.Run("MissForUnknownUser", func(t *testing.T) {
		_, _, ok := cache.GetList(ctx, uuid.New())
		assert.False(t, ok)
	})

	t.Run("ExpiresAfterTTL", func(t *testing.T) {
		cache.SetList(ctx, userID, sample, 7)
		s.FastForward(5*time.Minute + time.Second)

		_, _, ok := cache.GetList(ctx, userID)
		assert.False(t, ok)
	})

	t.Run("Invalidate", func(t *testing.T) {
		cache.SetList(ctx, userID, sample, 7)
		cache.Invalidate(ctx, userID)

		_, _, ok := cache.GetList(ctx, userID)
		assert.False(t, ok)
	})

	t.Run("CorruptEntryIsAMiss", func(t *testing.T) {
		require.NoError(t, s.Set(listKey(userID), "not-json"))
		_, _, ok := cache.GetList(ctx, userID)
		assert.False(t, ok)
	})

	t.Run("NilClientIsNoop", func(t *testing.T) {
		disabled := NewCache(nil, time.Minute)
		disabled.SetList(ctx, userID, sample, 7)
		_, _, ok := disabled.GetList(ctx, userID)
		assert.False(t, ok)
		disabled.Invalidate(ctx, userID)
	})
}
