package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/worker"
)

const (
	defaultBatchSize = 50
	errorPause       = time.Second
	emptyQueueSleep  = 500 * time.Millisecond
	retryBackoff     = 100 * time.Millisecond
)

// Invalidator удаляет закешированную доступность центра (nil date - все даты)
type Invalidator interface {
	Invalidate(ctx context.Context, centerID string, date *domain.Date) (int, error)
}

// InvalidationWorker читает stream:availability:changed и сбрасывает кеш доступности
type InvalidationWorker struct {
	*worker.BaseWorker
	streamRepo  repository.StreamRepository
	invalidator Invalidator
	batchSize   int64
	readTimeout time.Duration
	maxRetries  int
}

// NewInvalidationWorker создает новый InvalidationWorker
func NewInvalidationWorker(
	streamRepo repository.StreamRepository,
	invalidator Invalidator,
	consumerGroup string,
	batchSize int64,
	readTimeout time.Duration,
	maxRetries int,
	logger *zap.Logger,
) *InvalidationWorker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &InvalidationWorker{
		BaseWorker:  worker.NewBaseWorker("availability-invalidation", consumerGroup, logger),
		streamRepo:  streamRepo,
		invalidator: invalidator,
		batchSize:   batchSize,
		readTimeout: readTimeout,
		maxRetries:  maxRetries,
	}
}

// Start запускает воркер
func (w *InvalidationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting availability invalidation worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int64("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamAvailabilityChanged, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Error("Failed to process batch", zap.Error(err))
				w.Wait(ctx, errorPause)
				continue
			}
			// Без блокирующего чтения пустой стрим опрашиваем с паузой
			if processed == 0 && w.readTimeout <= 0 {
				w.Wait(ctx, emptyQueueSleep)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает одну пачку событий; возвращает число прочитанных сообщений.
// Битые сообщения подтверждаются, чтобы не застревать в pending.
func (w *InvalidationWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamAvailabilityChanged,
		w.ConsumerGroup(),
		w.ConsumerName(),
		w.batchSize,
		w.readTimeout,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ackIDs := make([]string, 0, len(messages))
	removed, failed := 0, 0

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ackIDs = append(ackIDs, msg.ID)
			failed++
			continue
		}

		n, err := w.invalidate(ctx, event)
		if err != nil {
			// Кеш истечёт по TTL, сообщение подтверждаем
			logger.Error("Failed to invalidate availability cache",
				zap.String("message_id", msg.ID),
				zap.String("center_id", event.CenterID),
				zap.Error(err))
			failed++
		}
		removed += n
		ackIDs = append(ackIDs, msg.ID)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamAvailabilityChanged, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	w.RecordBatch(len(messages)-failed, failed)
	logger.Info("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("failed", failed),
		zap.Int("keys_removed", removed))

	return len(messages), nil
}

func (w *InvalidationWorker) invalidate(ctx context.Context, event *domain.AvailabilityChangedEvent) (int, error) {
	var date *domain.Date
	if d, ok := event.DateScope(); ok {
		date = &d
	}

	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		n, err := w.invalidator.Invalidate(ctx, event.CenterID, date)
		if err == nil {
			return n, nil
		}
		lastErr = err
		if attempt < w.maxRetries {
			if !w.Wait(ctx, retryBackoff*time.Duration(attempt)) {
				break
			}
		}
	}
	return 0, lastErr
}

func parseMessage(msg domain.StreamMessage) (*domain.AvailabilityChangedEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("empty payload")
	}
	var event domain.AvailabilityChangedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if event.CenterID == "" {
		return nil, fmt.Errorf("event without center_id")
	}
	return &event, nil
}
