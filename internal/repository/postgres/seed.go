package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/quadrago-discovery/internal/domain"
)

const seedBatchSize = 500

// SeedCatalog записывает каталог в базу; существующие строки не перезаписываются
func SeedCatalog(ctx context.Context, db *DB, centers []domain.Center, sports []domain.Sport) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sportsInsert := psql.Insert("sports").Columns("id", "name", "icon").Suffix("ON CONFLICT (id) DO NOTHING")
	for _, s := range sports {
		sportsInsert = sportsInsert.Values(s.ID, s.Name, s.Icon)
	}
	if len(sports) > 0 {
		if err := execInsert(ctx, tx, sportsInsert); err != nil {
			return fmt.Errorf("seed sports: %w", err)
		}
	}

	for rank, c := range centers {
		inserts := []squirrel.InsertBuilder{
			psql.Insert("centers").
				Columns("id", "name", "street", "city", "state", "zip", "lat", "lon", "base_price", "rank").
				Values(c.ID, c.Name, c.Address.Street, c.Address.City, c.Address.State, c.Address.Zip,
					c.Location.Lat, c.Location.Lon, c.BasePrice, rank).
				Suffix("ON CONFLICT (id) DO NOTHING"),
		}

		if len(c.Sports) > 0 {
			b := psql.Insert("center_sports").Columns("center_id", "sport_id", "position").Suffix("ON CONFLICT DO NOTHING")
			for i, s := range c.Sports {
				b = b.Values(c.ID, s.ID, i)
			}
			inserts = append(inserts, b)
		}
		if len(c.Amenities) > 0 {
			b := psql.Insert("center_amenities").Columns("center_id", "amenity", "position").Suffix("ON CONFLICT DO NOTHING")
			for i, a := range c.Amenities {
				b = b.Values(c.ID, a, i)
			}
			inserts = append(inserts, b)
		}
		if len(c.OpeningHours) > 0 {
			b := psql.Insert("center_hours").Columns("center_id", "weekday", "open_time", "close_time", "closed").Suffix("ON CONFLICT DO NOTHING")
			for day, h := range c.OpeningHours {
				b = b.Values(c.ID, day, h.Open.String(), h.Close.String(), h.Closed)
			}
			inserts = append(inserts, b)
		}
		if len(c.Facilities) > 0 {
			b := psql.Insert("facilities").Columns("id", "center_id", "name", "sport_id", "hourly_price").Suffix("ON CONFLICT (id) DO NOTHING")
			for _, f := range c.Facilities {
				b = b.Values(f.ID, c.ID, f.Name, f.SportID, f.HourlyPrice)
			}
			inserts = append(inserts, b)
		}

		for _, ins := range inserts {
			if err := execInsert(ctx, tx, ins); err != nil {
				return fmt.Errorf("seed center %s: %w", c.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	db.logger.Info("Catalog seeded")
	return nil
}

// SeedSlots записывает слоты пачками; повторный запуск обновляет доступность
func SeedSlots(ctx context.Context, db *DB, slots []domain.Slot) (int, error) {
	written := 0
	for from := 0; from < len(slots); from += seedBatchSize {
		to := min(from+seedBatchSize, len(slots))

		b := psql.Insert("slots").
			Columns("id", "center_id", "facility_id", "slot_date", "start_time", "duration_minutes", "price", "is_available").
			Suffix("ON CONFLICT (id) DO UPDATE SET is_available = EXCLUDED.is_available, price = EXCLUDED.price")
		for _, s := range slots[from:to] {
			b = b.Values(s.ID, s.CenterID, s.FacilityID, s.Date.String(), s.Start.String(), s.DurationMinutes, s.Price, s.IsAvailable)
		}

		if err := execInsert(ctx, db.DB, b); err != nil {
			return written, fmt.Errorf("seed slots batch at %d: %w", from, err)
		}
		written += to - from
	}
	return written, nil
}

func execInsert(ctx context.Context, exec sqlx.ExecerContext, b squirrel.InsertBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, query, args...)
	return err
}
