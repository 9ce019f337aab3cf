package discovery

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/metrics"
)

const (
	defaultResolverConcurrency = 8
	defaultQueryTimeout        = 3 * time.Second
)

// ResolveStats - итоги одного построения индекса доступности
type ResolveStats struct {
	Queried   int
	Available int
	Failed    int
	Duration  time.Duration
}

// AvailabilityResolver строит AvailabilityIndex, опрашивая провайдера по каждому центру
type AvailabilityResolver struct {
	repo         repository.AvailabilityRepository
	logger       *zap.Logger
	concurrency  int
	queryTimeout time.Duration
	metrics      *metrics.Discovery
	tracer       trace.Tracer
}

type ResolverOption func(*AvailabilityResolver)

// WithConcurrency ограничивает число одновременных запросов к провайдеру
func WithConcurrency(n int) ResolverOption {
	return func(r *AvailabilityResolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithQueryTimeout задаёт таймаут одного запроса по центру
func WithQueryTimeout(d time.Duration) ResolverOption {
	return func(r *AvailabilityResolver) {
		if d > 0 {
			r.queryTimeout = d
		}
	}
}

func WithResolverMetrics(m *metrics.Discovery) ResolverOption {
	return func(r *AvailabilityResolver) {
		r.metrics = m
	}
}

// NewAvailabilityResolver - создание нового AvailabilityResolver
func NewAvailabilityResolver(
	repo repository.AvailabilityRepository,
	logger *zap.Logger,
	opts ...ResolverOption,
) *AvailabilityResolver {
	r := &AvailabilityResolver{
		repo:         repo,
		logger:       logger,
		concurrency:  defaultResolverConcurrency,
		queryTimeout: defaultQueryTimeout,
		tracer:       otel.Tracer("github.com/quadrago-discovery/internal/discovery"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve опрашивает провайдера по всем центрам параллельно и дожидается всех ответов.
// Ошибка по одному центру означает "недоступен" и не прерывает остальные запросы.
func (r *AvailabilityResolver) Resolve(
	ctx context.Context,
	centers []domain.Center,
	key domain.AvailabilityKey,
) (*domain.AvailabilityIndex, ResolveStats) {
	ctx, span := r.tracer.Start(ctx, "discovery.ResolveAvailability", trace.WithAttributes(
		attribute.String("availability.key", key.String()),
		attribute.Int("availability.centers", len(centers)),
	))
	defer span.End()

	started := time.Now()
	available := make([]bool, len(centers))
	failed := make([]bool, len(centers))

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i := range centers {
		i := i
		centerID := centers[i].ID
		g.Go(func() error {
			if ctx.Err() != nil {
				failed[i] = true
				return nil
			}

			qctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
			defer cancel()

			slots, err := r.repo.GetAvailability(qctx, centerID, key.Date, key.Start, key.DurationMinutes)
			if err != nil {
				// Логируем, но продолжаем - центр считается недоступным
				r.logger.Warn("Availability query failed, treating center as unavailable",
					zap.String("center_id", centerID),
					zap.String("key", key.String()),
					zap.Error(err))
				failed[i] = true
				r.metrics.ObserveQuery(metrics.QueryFailed)
				return nil
			}

			if domain.AnyAvailable(slots) {
				available[i] = true
				r.metrics.ObserveQuery(metrics.QueryAvailable)
			} else {
				r.metrics.ObserveQuery(metrics.QueryUnavailable)
			}
			return nil
		})
	}
	_ = g.Wait()

	index := domain.NewAvailabilityIndex(key)
	stats := ResolveStats{Queried: len(centers)}
	for i := range centers {
		if available[i] {
			index.Add(centers[i].ID)
			stats.Available++
		}
		if failed[i] {
			stats.Failed++
		}
	}
	stats.Duration = time.Since(started)
	r.metrics.ObserveResolution(stats.Duration)

	span.SetAttributes(
		attribute.Int("availability.available", stats.Available),
		attribute.Int("availability.failed", stats.Failed),
	)

	r.logger.Debug("Availability index resolved",
		zap.String("key", key.String()),
		zap.Int("queried", stats.Queried),
		zap.Int("available", stats.Available),
		zap.Int("failed", stats.Failed),
		zap.Duration("took", stats.Duration))

	return index, stats
}
