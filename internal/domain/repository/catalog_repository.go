package repository

import (
	"context"

	"github.com/quadrago-discovery/internal/domain"
)

// CatalogRepository - источник каталога центров и справочника видов спорта
type CatalogRepository interface {
	// GetCenters возвращает весь каталог в порядке релевантности
	GetCenters(ctx context.Context) ([]domain.Center, error)

	// GetSports возвращает справочник видов спорта
	GetSports(ctx context.Context) ([]domain.Sport, error)

	// GetCenter возвращает центр по ID
	GetCenter(ctx context.Context, id string) (*domain.Center, error)
}
