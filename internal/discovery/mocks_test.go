package discovery_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/quadrago-discovery/internal/domain"
)

// MockCatalogRepository is a mock of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetCenters(ctx context.Context) ([]domain.Center, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Center), args.Error(1)
}

func (m *MockCatalogRepository) GetSports(ctx context.Context) ([]domain.Sport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sport), args.Error(1)
}

func (m *MockCatalogRepository) GetCenter(ctx context.Context, id string) (*domain.Center, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Center), args.Error(1)
}

// MockAvailabilityRepository is a mock of AvailabilityRepository
type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) GetAvailability(
	ctx context.Context,
	centerID string,
	date domain.Date,
	start domain.ClockTime,
	durationMinutes int,
) ([]domain.Slot, error) {
	args := m.Called(ctx, centerID, date, start, durationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Slot), args.Error(1)
}

// gatedAvailability отвечает "свободно" для центров из available ("id" или "id@HH:MM"),
// а для времени начала из gates ждёт закрытия канала. Используется для проверки гонок.
type gatedAvailability struct {
	mu        sync.Mutex
	available map[string]bool
	gates     map[string]chan struct{}
	started   chan string
	calls     int
}

func newGatedAvailability(available ...string) *gatedAvailability {
	g := &gatedAvailability{
		available: make(map[string]bool),
		gates:     make(map[string]chan struct{}),
		started:   make(chan string, 64),
	}
	for _, id := range available {
		g.available[id] = true
	}
	return g
}

func (g *gatedAvailability) gate(start string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[start] = ch
	return ch
}

func (g *gatedAvailability) GetAvailability(
	ctx context.Context,
	centerID string,
	date domain.Date,
	start domain.ClockTime,
	durationMinutes int,
) ([]domain.Slot, error) {
	g.mu.Lock()
	g.calls++
	gate := g.gates[start.String()]
	available := g.available[centerID] || g.available[centerID+"@"+start.String()]
	g.mu.Unlock()

	g.started <- start.String()
	if gate != nil {
		<-gate
	}

	return []domain.Slot{{
		ID:              centerID + "-" + start.String(),
		CenterID:        centerID,
		Date:            date,
		Start:           start,
		DurationMinutes: durationMinutes,
		IsAvailable:     available,
	}}, nil
}

func (g *gatedAvailability) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// stubLocator - провайдер геолокации с фиксированным ответом
type stubLocator struct {
	point domain.Point
	err   error
	block bool
}

func (s stubLocator) CurrentPosition(ctx context.Context) (domain.Point, error) {
	if s.block {
		<-ctx.Done()
		return domain.Point{}, ctx.Err()
	}
	return s.point, s.err
}
