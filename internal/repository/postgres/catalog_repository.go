package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/pkg/errors"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type catalogRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewCatalogRepository создает новый экземпляр CatalogRepository
func NewCatalogRepository(db *DB) repository.CatalogRepository {
	return &catalogRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type centerRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Street    string  `db:"street"`
	City      string  `db:"city"`
	State     string  `db:"state"`
	Zip       string  `db:"zip"`
	Lat       float64 `db:"lat"`
	Lon       float64 `db:"lon"`
	BasePrice float64 `db:"base_price"`
}

type centerSportRow struct {
	CenterID string `db:"center_id"`
	domain.SportRef
}

type amenityRow struct {
	CenterID string `db:"center_id"`
	Amenity  string `db:"amenity"`
}

type hoursRow struct {
	CenterID  string `db:"center_id"`
	Weekday   string `db:"weekday"`
	OpenTime  string `db:"open_time"`
	CloseTime string `db:"close_time"`
	Closed    bool   `db:"closed"`
}

type facilityRow struct {
	CenterID string `db:"center_id"`
	domain.Facility
}

// GetCenters возвращает каталог в порядке rank
func (r *catalogRepository) GetCenters(ctx context.Context) ([]domain.Center, error) {
	return r.loadCenters(ctx, nil)
}

// GetCenter возвращает центр по ID
func (r *catalogRepository) GetCenter(ctx context.Context, id string) (*domain.Center, error) {
	centers, err := r.loadCenters(ctx, squirrel.Eq{"c.id": id})
	if err != nil {
		return nil, err
	}
	if len(centers) == 0 {
		return nil, errors.ErrCenterNotFound
	}
	return &centers[0], nil
}

// GetSports возвращает справочник видов спорта
func (r *catalogRepository) GetSports(ctx context.Context) ([]domain.Sport, error) {
	query, args, err := psql.Select("id", "name", "icon").From("sports").OrderBy("name").ToSql()
	if err != nil {
		return nil, errors.ErrDatabaseError
	}

	var sports []domain.Sport
	if err := r.db.SelectContext(ctx, &sports, query, args...); err != nil {
		r.logger.Error("Failed to get sports", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return sports, nil
}

// loadCenters читает центры и их связанные таблицы; where=nil означает весь каталог
func (r *catalogRepository) loadCenters(ctx context.Context, where squirrel.Sqlizer) ([]domain.Center, error) {
	builder := psql.
		Select("c.id", "c.name", "c.street", "c.city", "c.state", "c.zip", "c.lat", "c.lon", "c.base_price").
		From("centers c").
		OrderBy("c.rank", "c.id")
	if where != nil {
		builder = builder.Where(where)
	}

	var rows []centerRow
	if err := r.selectInto(ctx, &rows, builder); err != nil {
		r.logger.Error("Failed to get centers", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if len(rows) == 0 {
		return []domain.Center{}, nil
	}

	ids := make([]string, len(rows))
	centers := make([]domain.Center, len(rows))
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		index[row.ID] = i
		centers[i] = domain.Center{
			ID:   row.ID,
			Name: row.Name,
			Address: domain.Address{
				Street: row.Street,
				City:   row.City,
				State:  row.State,
				Zip:    row.Zip,
			},
			Location:     domain.Point{Lat: row.Lat, Lon: row.Lon},
			BasePrice:    row.BasePrice,
			Sports:       []domain.SportRef{},
			Amenities:    []string{},
			OpeningHours: map[string]domain.DayHours{},
		}
	}

	if err := r.attachRelations(ctx, ids, centers, index); err != nil {
		r.logger.Error("Failed to get center relations", zap.Int("centers", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return centers, nil
}

func (r *catalogRepository) attachRelations(ctx context.Context, ids []string, centers []domain.Center, index map[string]int) error {
	var sports []centerSportRow
	err := r.selectInto(ctx, &sports, psql.
		Select("cs.center_id", "s.id AS sport_id", "s.name AS sport_name").
		From("center_sports cs").
		Join("sports s ON s.id = cs.sport_id").
		Where(squirrel.Eq{"cs.center_id": ids}).
		OrderBy("cs.center_id", "cs.position"))
	if err != nil {
		return err
	}
	for _, s := range sports {
		c := &centers[index[s.CenterID]]
		c.Sports = append(c.Sports, s.SportRef)
	}

	var amenities []amenityRow
	err = r.selectInto(ctx, &amenities, psql.
		Select("center_id", "amenity").
		From("center_amenities").
		Where(squirrel.Eq{"center_id": ids}).
		OrderBy("center_id", "position"))
	if err != nil {
		return err
	}
	for _, a := range amenities {
		c := &centers[index[a.CenterID]]
		c.Amenities = append(c.Amenities, a.Amenity)
	}

	var hours []hoursRow
	err = r.selectInto(ctx, &hours, psql.
		Select("center_id", "weekday", "open_time", "close_time", "closed").
		From("center_hours").
		Where(squirrel.Eq{"center_id": ids}))
	if err != nil {
		return err
	}
	for _, h := range hours {
		day := domain.DayHours{Closed: h.Closed}
		if !h.Closed {
			open, err := domain.ParseClock(h.OpenTime)
			if err != nil {
				return err
			}
			closing, err := domain.ParseClock(h.CloseTime)
			if err != nil {
				return err
			}
			day.Open, day.Close = open, closing
		}
		centers[index[h.CenterID]].OpeningHours[h.Weekday] = day
	}

	var facilities []facilityRow
	err = r.selectInto(ctx, &facilities, psql.
		Select("center_id", "id", "name", "sport_id", "hourly_price").
		From("facilities").
		Where(squirrel.Eq{"center_id": ids}).
		OrderBy("center_id", "id"))
	if err != nil {
		return err
	}
	for _, f := range facilities {
		c := &centers[index[f.CenterID]]
		c.Facilities = append(c.Facilities, f.Facility)
	}

	return nil
}

func (r *catalogRepository) selectInto(ctx context.Context, dest interface{}, builder squirrel.SelectBuilder) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
