package repository

import (
	"context"

	"github.com/quadrago-discovery/internal/domain"
)

// AvailabilityRepository - источник слотов для центра на дату/время/длительность
type AvailabilityRepository interface {
	GetAvailability(
		ctx context.Context,
		centerID string,
		date domain.Date,
		start domain.ClockTime,
		durationMinutes int,
	) ([]domain.Slot, error)
}
