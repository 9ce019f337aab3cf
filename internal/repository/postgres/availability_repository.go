package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/pkg/errors"
)

type availabilityRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAvailabilityRepository создает новый экземпляр AvailabilityRepository
func NewAvailabilityRepository(db *DB) repository.AvailabilityRepository {
	return &availabilityRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type slotRow struct {
	ID              string    `db:"id"`
	CenterID        string    `db:"center_id"`
	FacilityID      string    `db:"facility_id"`
	SlotDate        time.Time `db:"slot_date"`
	StartTime       string    `db:"start_time"`
	DurationMinutes int       `db:"duration_minutes"`
	Price           float64   `db:"price"`
	IsAvailable     bool      `db:"is_available"`
}

func slotsQuery(centerID string, date domain.Date, start domain.ClockTime, durationMinutes int) squirrel.SelectBuilder {
	return psql.
		Select("id", "center_id", "facility_id", "slot_date", "start_time", "duration_minutes", "price", "is_available").
		From("slots").
		Where(squirrel.Eq{
			"center_id":        centerID,
			"slot_date":        date.String(),
			"start_time":       start.String(),
			"duration_minutes": durationMinutes,
		}).
		OrderBy("facility_id")
}

// GetAvailability возвращает слоты центра для даты, времени начала и длительности
func (r *availabilityRepository) GetAvailability(
	ctx context.Context,
	centerID string,
	date domain.Date,
	start domain.ClockTime,
	durationMinutes int,
) ([]domain.Slot, error) {
	query, args, err := slotsQuery(centerID, date, start, durationMinutes).ToSql()
	if err != nil {
		return nil, errors.ErrDatabaseError
	}

	var rows []slotRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to get availability",
			zap.String("center_id", centerID),
			zap.String("date", date.String()),
			zap.String("start", start.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	slots := make([]domain.Slot, 0, len(rows))
	for _, row := range rows {
		parsedStart, err := domain.ParseClock(row.StartTime)
		if err != nil {
			r.logger.Warn("Skipping slot with malformed start time",
				zap.String("slot_id", row.ID),
				zap.String("start_time", row.StartTime))
			continue
		}
		slots = append(slots, domain.Slot{
			ID:              row.ID,
			CenterID:        row.CenterID,
			FacilityID:      row.FacilityID,
			Date:            domain.DateOf(row.SlotDate),
			Start:           parsedStart,
			DurationMinutes: row.DurationMinutes,
			Price:           row.Price,
			IsAvailable:     row.IsAvailable,
		})
	}

	return slots, nil
}
