package memory

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/pkg/errors"
)

// DefaultBookedRatio - доля слотов, помеченных занятыми генератором
const DefaultBookedRatio = 0.35

type availabilityRepository struct {
	catalog     repository.CatalogRepository
	seed        int64
	bookedRatio float64
	logger      *zap.Logger
}

// NewAvailabilityRepository создает генератор слотов поверх каталога. Ответ детерминирован
// для (seed, центр, площадка, дата, время, длительность) и учитывает часы работы центра.
func NewAvailabilityRepository(catalog repository.CatalogRepository, seed int64, logger *zap.Logger) repository.AvailabilityRepository {
	return &availabilityRepository{
		catalog:     catalog,
		seed:        seed,
		bookedRatio: DefaultBookedRatio,
		logger:      logger,
	}
}

func (r *availabilityRepository) GetAvailability(
	ctx context.Context,
	centerID string,
	date domain.Date,
	start domain.ClockTime,
	durationMinutes int,
) ([]domain.Slot, error) {
	if durationMinutes <= 0 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"duration": "must be positive",
		})
	}

	center, err := r.catalog.GetCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}

	hours, ok := center.HoursOn(date)
	if !ok || !hours.Covers(start, durationMinutes) {
		return []domain.Slot{}, nil
	}

	facilities := center.Facilities
	if len(facilities) == 0 {
		// Центр без площадок бронируется целиком по базовой цене
		facilities = []domain.Facility{{ID: center.ID + "-main", HourlyPrice: center.BasePrice}}
	}

	slots := make([]domain.Slot, 0, len(facilities))
	for _, f := range facilities {
		slots = append(slots, domain.Slot{
			ID:              fmt.Sprintf("%s:%s:%s:%d", f.ID, date, start, durationMinutes),
			CenterID:        center.ID,
			FacilityID:      f.ID,
			Date:            date,
			Start:           start,
			DurationMinutes: durationMinutes,
			Price:           f.HourlyPrice * float64(durationMinutes) / 60,
			IsAvailable:     !r.booked(f.ID, date, start, durationMinutes),
		})
	}

	r.logger.Debug("Generated slots",
		zap.String("center_id", centerID),
		zap.String("date", date.String()),
		zap.String("start", start.String()),
		zap.Int("slots", len(slots)))

	return slots, nil
}

func (r *availabilityRepository) booked(facilityID string, date domain.Date, start domain.ClockTime, duration int) bool {
	h := xxhash.New()
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], uint64(r.seed))
	_, _ = h.Write(seed[:])
	_, _ = h.WriteString(facilityID)
	_, _ = h.WriteString(date.String())
	_, _ = h.WriteString(start.String())
	_, _ = fmt.Fprintf(h, "/%d", duration)

	bucket := float64(h.Sum64()%10000) / 10000
	return bucket < r.bookedRatio
}
