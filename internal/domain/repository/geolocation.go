package repository

import (
	"context"

	"github.com/quadrago-discovery/internal/domain"
)

// GeolocationProvider возвращает текущую позицию пользователя.
// Может вернуть ошибку (отказ, нет поддержки) или не ответить до отмены ctx.
type GeolocationProvider interface {
	CurrentPosition(ctx context.Context) (domain.Point, error)
}
