package trap

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamtrap-lab/internal/domain/models"
	"scamtrap-lab/internal/infrastructure/cache"
	"scamtrap-lab/pkg/logger"
)

func TestMemoryStoreLastWriteWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	first := models.TrapHit{IP: "1.1.1.1", Timestamp: time.Now().UTC()}
	second := models.TrapHit{IP: "2.2.2.2", DeviceInfo: json.RawMessage(`{"userAgent":"x"}`), Timestamp: time.Now().UTC()}
	require.NoError(t, s.Record(ctx, first))
	require.NoError(t, s.Record(ctx, second))

	got, err = s.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2.2.2.2", got.IP)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(cache.NewRedisWithClient(client, "scamtrap:", logger.NewDefault()))
	ctx := context.Background()

	got, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	hit := models.TrapHit{
		IP:         "203.0.113.9",
		DeviceInfo: json.RawMessage(`{"userAgent":"Mozilla/5.0"}`),
		Timestamp:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Record(ctx, hit))

	got, err = s.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, hit.IP, got.IP)
	assert.JSONEq(t, string(hit.DeviceInfo), string(got.DeviceInfo))
}
