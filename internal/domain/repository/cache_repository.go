package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет ключи из кеша
	Delete(ctx context.Context, keys ...string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetField получает поле hash-ключа, nil при промахе
	GetField(ctx context.Context, key, field string) ([]byte, error)

	// SetField сохраняет поле hash-ключа и продлевает TTL всего ключа
	SetField(ctx context.Context, key, field string, value []byte, ttl time.Duration) error

	// DeleteByPattern удаляет ключи по шаблону (SCAN + DEL), возвращает количество
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}
