package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEntryKeyCarriesVersion(t *testing.T) {
	a := NewAvailability(nil, 0, zap.NewNop())

	assert.Equal(t, DefaultTTL, a.ttl)
	assert.Equal(t, "interview_scheduler:availability:version", a.versionKey())
	assert.Equal(t, "interview_scheduler:availability:v0:c=1;e=2,3", a.entryKey(0, "c=1;e=2,3"))
	assert.NotEqual(t, a.entryKey(1, "c=1;e="), a.entryKey(2, "c=1;e="))
}

func TestSetRejectsForeignToken(t *testing.T) {
	a := NewAvailability(nil, time.Minute, zap.NewNop())

	err := a.Set(context.Background(), "other:v1:c=1;e=", []string{"2026-10-19 11:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foreign token")
}

func TestNewRedisClientFailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// порт 1 заведомо закрыт
	client, err := NewRedisClient(ctx, Config{Addr: "127.0.0.1:1"})
	assert.Nil(t, client)
	require.Error(t, err)
	assert.NotErrorIs(t, err, redis.Nil)
}
