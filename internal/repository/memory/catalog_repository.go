package memory

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/pkg/errors"
)

type catalogRepository struct {
	mu      sync.RWMutex
	centers []domain.Center
	sports  []domain.Sport
	byID    map[string]int
	logger  *zap.Logger
}

// NewCatalogRepository создает каталог в памяти из переданных данных
func NewCatalogRepository(centers []domain.Center, sports []domain.Sport, logger *zap.Logger) repository.CatalogRepository {
	byID := make(map[string]int, len(centers))
	for i, c := range centers {
		byID[c.ID] = i
	}
	return &catalogRepository{
		centers: slices.Clone(centers),
		sports:  slices.Clone(sports),
		byID:    byID,
		logger:  logger,
	}
}

// NewSeededCatalogRepository - каталог с демо-данными
func NewSeededCatalogRepository(logger *zap.Logger) repository.CatalogRepository {
	return NewCatalogRepository(SeedCenters(), SeedSports(), logger)
}

// GetCenters возвращает копию каталога; вызывающий может менять срез
func (r *catalogRepository) GetCenters(ctx context.Context) ([]domain.Center, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.logger.Debug("Serving catalog from memory", zap.Int("centers", len(r.centers)))
	return slices.Clone(r.centers), nil
}

func (r *catalogRepository) GetSports(ctx context.Context) ([]domain.Sport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.sports), nil
}

func (r *catalogRepository) GetCenter(ctx context.Context, id string) (*domain.Center, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, errors.ErrCenterNotFound
	}
	c := r.centers[i]
	return &c, nil
}
