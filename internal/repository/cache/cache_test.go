package cache_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/config"
	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/metrics"
	"github.com/quadrago-discovery/internal/repository/cache"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, repository.CacheRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewCacheRepository(cache.NewRedisFromClient(client, zap.NewNop()))
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	r, err := cache.NewRedis(&config.RedisConfig{Host: mr.Host(), Port: port, PoolSize: 4}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, r.Health(context.Background()))

	mr.Close()
	assert.Error(t, r.Health(context.Background()))
	assert.NoError(t, r.Close())

	_, err = cache.NewRedis(&config.RedisConfig{Host: "127.0.0.1", Port: port}, zap.NewNop())
	assert.Error(t, err)
}

func TestCacheRepository(t *testing.T) {
	ctx := context.Background()
	mr, repo := newTestCache(t)

	t.Run("get miss returns nil", func(t *testing.T) {
		val, err := repo.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("set get with ttl", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))
		val, err := repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), val)

		exists, err := repo.Exists(ctx, "k")
		require.NoError(t, err)
		assert.True(t, exists)

		mr.FastForward(2 * time.Minute)
		exists, err = repo.Exists(ctx, "k")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("hash fields", func(t *testing.T) {
		require.NoError(t, repo.SetField(ctx, "h", "f1", []byte("a"), time.Minute))
		val, err := repo.GetField(ctx, "h", "f1")
		require.NoError(t, err)
		assert.Equal(t, []byte("a"), val)

		miss, err := repo.GetField(ctx, "h", "f2")
		require.NoError(t, err)
		assert.Nil(t, miss)

		assert.Equal(t, time.Minute, mr.TTL("h"))
	})

	t.Run("delete by pattern", func(t *testing.T) {
		for _, k := range []string{"p:1", "p:2", "p:3", "other"} {
			require.NoError(t, repo.Set(ctx, k, []byte("x"), 0))
		}
		n, err := repo.DeleteByPattern(ctx, "p:*")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.True(t, mr.Exists("other"))
		assert.False(t, mr.Exists("p:1"))
	})

	t.Run("delete many", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "d1", []byte("x"), 0))
		require.NoError(t, repo.Set(ctx, "d2", []byte("x"), 0))
		require.NoError(t, repo.Delete(ctx, "d1", "d2"))
		require.NoError(t, repo.Delete(ctx))
		assert.False(t, mr.Exists("d1"))
		assert.False(t, mr.Exists("d2"))
	})

	t.Run("server down", func(t *testing.T) {
		mr.SetError("ERR simulated failure")
		defer mr.SetError("")
		_, err := repo.Get(ctx, "k")
		assert.Error(t, err)
	})
}

// MockAvailabilityRepository is a mock of AvailabilityRepository
type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) GetAvailability(
	ctx context.Context,
	centerID string,
	date domain.Date,
	start domain.ClockTime,
	durationMinutes int,
) ([]domain.Slot, error) {
	args := m.Called(ctx, centerID, date, start, durationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Slot), args.Error(1)
}

func TestAvailabilityCache(t *testing.T) {
	ctx := context.Background()
	date := domain.Date{Year: 2024, Month: 3, Day: 15}
	nine := domain.ClockTime{Hour: 9}
	slots := []domain.Slot{{
		ID: "s1", CenterID: "c1", FacilityID: "f1", Date: date, Start: nine,
		DurationMinutes: 60, Price: 20, IsAvailable: true,
	}}

	t.Run("miss then hit", func(t *testing.T) {
		mr, repo := newTestCache(t)
		inner := &MockAvailabilityRepository{}
		inner.On("GetAvailability", mock.Anything, "c1", date, nine, 60).Return(slots, nil).Once()

		c := cache.NewAvailabilityCache(inner, repo, time.Minute, metrics.NewDiscovery(), zap.NewNop())

		first, err := c.GetAvailability(ctx, "c1", date, nine, 60)
		require.NoError(t, err)
		assert.Equal(t, slots, first)

		second, err := c.GetAvailability(ctx, "c1", date, nine, 60)
		require.NoError(t, err)
		assert.Equal(t, slots, second)

		inner.AssertNumberOfCalls(t, "GetAvailability", 1)
		assert.True(t, mr.Exists(cache.AvailabilityKey("c1", date)))
	})

	t.Run("errors are not cached", func(t *testing.T) {
		_, repo := newTestCache(t)
		inner := &MockAvailabilityRepository{}
		inner.On("GetAvailability", mock.Anything, "c1", date, nine, 60).Return(nil, errors.New("down")).Once()
		inner.On("GetAvailability", mock.Anything, "c1", date, nine, 60).Return(slots, nil).Once()

		c := cache.NewAvailabilityCache(inner, repo, time.Minute, nil, zap.NewNop())

		_, err := c.GetAvailability(ctx, "c1", date, nine, 60)
		assert.Error(t, err)
		got, err := c.GetAvailability(ctx, "c1", date, nine, 60)
		require.NoError(t, err)
		assert.Equal(t, slots, got)
	})

	t.Run("redis failure falls through to source", func(t *testing.T) {
		mr, repo := newTestCache(t)
		mr.SetError("ERR simulated failure")
		inner := &MockAvailabilityRepository{}
		inner.On("GetAvailability", mock.Anything, "c1", date, nine, 60).Return(slots, nil)

		c := cache.NewAvailabilityCache(inner, repo, time.Minute, nil, zap.NewNop())

		got, err := c.GetAvailability(ctx, "c1", date, nine, 60)
		require.NoError(t, err)
		assert.Equal(t, slots, got)
	})

	t.Run("invalidate one date or all", func(t *testing.T) {
		mr, repo := newTestCache(t)
		inner := &MockAvailabilityRepository{}
		inner.On("GetAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(slots, nil)

		c := cache.NewAvailabilityCache(inner, repo, time.Minute, nil, zap.NewNop())
		other := domain.Date{Year: 2024, Month: 3, Day: 16}
		for _, d := range []domain.Date{date, other} {
			_, err := c.GetAvailability(ctx, "c1", d, nine, 60)
			require.NoError(t, err)
		}
		_, err := c.GetAvailability(ctx, "c2", date, nine, 60)
		require.NoError(t, err)

		n, err := c.Invalidate(ctx, "c1", &date)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.False(t, mr.Exists(cache.AvailabilityKey("c1", date)))
		assert.True(t, mr.Exists(cache.AvailabilityKey("c1", other)))

		n, err = c.Invalidate(ctx, "c1", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.True(t, mr.Exists(cache.AvailabilityKey("c2", date)))
	})

	t.Run("field depends on start and duration", func(t *testing.T) {
		assert.NotEqual(t, cache.AvailabilityField(nine, 60), cache.AvailabilityField(nine, 90))
		assert.Equal(t, cache.AvailabilityField(nine, 60), cache.AvailabilityField(domain.ClockTime{Hour: 9}, 60))
	})
}
