package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
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

// stubLocator resolves every query to a fixed point
type stubLocator struct {
	point domain.Point
	err   error
}

func (s stubLocator) Locator(string) repository.GeolocationProvider {
	return s
}

func (s stubLocator) CurrentPosition(context.Context) (domain.Point, error) {
	return s.point, s.err
}
