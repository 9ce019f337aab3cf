// Package session хранит долгоживущие discovery-движки между HTTP-запросами.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/discovery"
	"github.com/quadrago-discovery/internal/metrics"
	"github.com/quadrago-discovery/internal/pkg/errors"
)

const DefaultTTL = 30 * time.Minute

// Session - движок фильтрации и его адресная строка
type Session struct {
	ID        string
	Engine    *discovery.Engine
	Navigator *discovery.MemoryNavigator
	CreatedAt time.Time
}

// Store - in-memory хранилище сессий со скользящим TTL; истёкшие сессии закрываются
type Store struct {
	items   *cache.Cache
	ttl     time.Duration
	metrics *metrics.Discovery
	logger  *zap.Logger
}

func NewStore(ttl time.Duration, m *metrics.Discovery, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cleanup := ttl / 2
	if cleanup < 50*time.Millisecond {
		cleanup = 50 * time.Millisecond
	}

	s := &Store{
		items:   cache.New(ttl, cleanup),
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
	s.items.OnEvicted(s.onEvicted)
	return s
}

// Create регистрирует движок под новым идентификатором
func (s *Store) Create(engine *discovery.Engine, nav *discovery.MemoryNavigator) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Engine:    engine,
		Navigator: nav,
		CreatedAt: time.Now(),
	}
	s.items.Set(sess.ID, sess, cache.DefaultExpiration)
	s.metrics.SessionOpened()

	s.logger.Debug("Session created", zap.String("session_id", sess.ID))
	return sess
}

// Get возвращает сессию и продлевает её TTL
func (s *Store) Get(id string) (*Session, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	sess := v.(*Session)
	// Set не вызывает OnEvicted, поэтому продление безопасно
	s.items.Set(id, sess, cache.DefaultExpiration)
	return sess, nil
}

// Delete закрывает и удаляет сессию
func (s *Store) Delete(id string) error {
	if _, ok := s.items.Get(id); !ok {
		return errors.ErrSessionNotFound
	}
	s.items.Delete(id)
	return nil
}

func (s *Store) Count() int {
	return s.items.ItemCount()
}

// Close закрывает все сессии (при остановке сервера)
func (s *Store) Close() {
	for id := range s.items.Items() {
		s.items.Delete(id)
	}
}

func (s *Store) onEvicted(id string, v interface{}) {
	sess, ok := v.(*Session)
	if !ok {
		return
	}
	sess.Engine.Close()
	s.metrics.SessionClosed()
	s.logger.Debug("Session closed", zap.String("session_id", id))
}
