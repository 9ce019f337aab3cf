package worker

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Stats - счётчики обработанных воркером сообщений
type Stats struct {
	Batches   int64
	Processed int64
	Failed    int64
}

// BaseWorker содержит общую логику consumer-воркеров Redis Streams:
// сигнал остановки, имя consumer-а и счётчики
type BaseWorker struct {
	name          string
	logger        *zap.Logger
	consumerGroup string
	consumerName  string

	stopOnce sync.Once
	stopChan chan struct{}

	batches   atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64
}

// NewBaseWorker создает новый BaseWorker. Имя consumer-а уникально для процесса (host-pid).
func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "worker"
	}

	return &BaseWorker{
		name:          name,
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
		consumerGroup: consumerGroup,
		consumerName:  fmt.Sprintf("%s-%d", hostname, os.Getpid()),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop сигнализирует воркеру завершиться; повторный вызов безопасен
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopChan)
	})
	return nil
}

// IsStopped проверяет, был ли вызван Stop
func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Wait ждёт d; возвращает false, если раньше пришёл Stop или отменён ctx
func (w *BaseWorker) Wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-w.stopChan:
		return false
	case <-ctx.Done():
		return false
	}
}

// RecordBatch учитывает пачку: processed успешно, failed с ошибкой
func (w *BaseWorker) RecordBatch(processed, failed int) {
	w.batches.Add(1)
	w.processed.Add(int64(processed))
	w.failed.Add(int64(failed))
}

func (w *BaseWorker) Stats() Stats {
	return Stats{
		Batches:   w.batches.Load(),
		Processed: w.processed.Load(),
		Failed:    w.failed.Load(),
	}
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

// ConsumerName возвращает имя consumer-а внутри группы
func (w *BaseWorker) ConsumerName() string {
	return w.consumerName
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
