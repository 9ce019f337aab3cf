package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/metrics"
)

const availabilityKeyPrefix = "availability:"

// AvailabilityCache - кеширующий декоратор над AvailabilityRepository.
// Ключ - центр и дата (hash), поле - хеш времени начала и длительности.
// Ошибки кеша не ломают запрос: ответ берётся из источника.
type AvailabilityCache struct {
	inner   repository.AvailabilityRepository
	cache   repository.CacheRepository
	ttl     time.Duration
	metrics *metrics.Discovery
	logger  *zap.Logger
}

func NewAvailabilityCache(
	inner repository.AvailabilityRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	m *metrics.Discovery,
	logger *zap.Logger,
) *AvailabilityCache {
	return &AvailabilityCache{
		inner:   inner,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

// AvailabilityKey - ключ hash-а для центра и даты
func AvailabilityKey(centerID string, date domain.Date) string {
	return availabilityKeyPrefix + centerID + ":" + date.String()
}

// AvailabilityField - поле hash-а для времени начала и длительности
func AvailabilityField(start domain.ClockTime, durationMinutes int) string {
	return strconv.FormatUint(xxhash.Sum64String(start.String()+"/"+strconv.Itoa(durationMinutes)), 16)
}

func (c *AvailabilityCache) GetAvailability(
	ctx context.Context,
	centerID string,
	date domain.Date,
	start domain.ClockTime,
	durationMinutes int,
) ([]domain.Slot, error) {
	key := AvailabilityKey(centerID, date)
	field := AvailabilityField(start, durationMinutes)

	data, err := c.cache.GetField(ctx, key, field)
	switch {
	case err != nil:
		c.metrics.ObserveCache(metrics.CacheError)
		c.logger.Warn("Availability cache read failed, querying source", zap.String("key", key), zap.Error(err))
	case data != nil:
		var slots []domain.Slot
		if err := json.Unmarshal(data, &slots); err == nil {
			c.metrics.ObserveCache(metrics.CacheHit)
			return slots, nil
		}
		c.metrics.ObserveCache(metrics.CacheError)
		c.logger.Warn("Corrupted availability cache entry", zap.String("key", key), zap.String("field", field))
	default:
		c.metrics.ObserveCache(metrics.CacheMiss)
	}

	slots, err := c.inner.GetAvailability(ctx, centerID, date, start, durationMinutes)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(slots)
	if err != nil {
		c.logger.Warn("Failed to marshal slots for cache", zap.Error(err))
		return slots, nil
	}
	if err := c.cache.SetField(ctx, key, field, payload, c.ttl); err != nil {
		c.logger.Warn("Failed to store availability in cache", zap.String("key", key), zap.Error(err))
	}

	return slots, nil
}

// Invalidate удаляет закешированную доступность центра: за одну дату или за все даты
func (c *AvailabilityCache) Invalidate(ctx context.Context, centerID string, date *domain.Date) (int, error) {
	if date != nil {
		key := AvailabilityKey(centerID, *date)
		exists, err := c.cache.Exists(ctx, key)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, nil
		}
		if err := c.cache.Delete(ctx, key); err != nil {
			return 0, err
		}
		c.metrics.Invalidated(1)
		return 1, nil
	}

	n, err := c.cache.DeleteByPattern(ctx, availabilityKeyPrefix+centerID+":*")
	c.metrics.Invalidated(n)
	return n, err
}
