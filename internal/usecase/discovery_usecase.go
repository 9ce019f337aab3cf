package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/discovery"
	"github.com/quadrago-discovery/internal/usecase/dto"
)

// DiscoveryUseCase - stateless поиск: одноразовый движок на запрос
type DiscoveryUseCase struct {
	factory *EngineFactory
	logger  *zap.Logger
	tracer  trace.Tracer
}

func NewDiscoveryUseCase(factory *EngineFactory, logger *zap.Logger) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		factory: factory,
		logger:  logger,
		tracer:  otel.Tracer("github.com/quadrago-discovery/internal/usecase"),
	}
}

// Search применяет фильтры из query string к каталогу. Ответ содержит каноничный query и ETag.
func (uc *DiscoveryUseCase) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "usecase.DiscoverySearch")
	defer span.End()

	engine, _ := uc.factory.New(query)
	defer engine.Close()

	snap := engine.Load(ctx)
	if snap.Error != nil {
		span.RecordError(snap.Error)
		span.SetStatus(codes.Error, snap.Error.Code)
		return nil, snap.Error
	}

	span.SetAttributes(
		attribute.String("discovery.query", snap.Query),
		attribute.Int("discovery.results", snap.Total),
	)

	uc.logger.Debug("Discovery search",
		zap.String("query", snap.Query),
		zap.Int("results", snap.Total))

	return &dto.SearchResponse{
		SnapshotResponse: dto.ConvertSnapshot(snap),
		ETag:             discovery.Fingerprint(snap.Criteria),
	}, nil
}
