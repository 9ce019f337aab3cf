package usecase

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/pkg/errors"
	"github.com/quadrago-discovery/internal/pkg/utils"
	"github.com/quadrago-discovery/internal/pkg/validator"
	"github.com/quadrago-discovery/internal/session"
	"github.com/quadrago-discovery/internal/usecase/dto"
)

// PlaceLocator строит провайдер позиции по текстовому запросу (геокодер)
type PlaceLocator interface {
	Locator(query string) repository.GeolocationProvider
}

// SessionUseCase - долгоживущие discovery сессии
type SessionUseCase struct {
	store           *session.Store
	factory         *EngineFactory
	locator         PlaceLocator
	defaultRadiusKm float64
	logger          *zap.Logger
}

// NewSessionUseCase создаёт use case; locator может быть nil, тогда поиск места по запросу
// всегда заканчивается уведомлением GEOLOCATION_UNAVAILABLE
func NewSessionUseCase(
	store *session.Store,
	factory *EngineFactory,
	locator PlaceLocator,
	defaultRadiusKm float64,
	logger *zap.Logger,
) *SessionUseCase {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = domain.DefaultRadiusKm
	}
	return &SessionUseCase{
		store:           store,
		factory:         factory,
		locator:         locator,
		defaultRadiusKm: defaultRadiusKm,
		logger:          logger,
	}
}

// Create открывает сессию и загружает каталог. Ошибка загрузки не мешает созданию:
// состояние failed видно в снапшоте, повтор - через Reload.
func (uc *SessionUseCase) Create(ctx context.Context, req dto.CreateSessionRequest) (*dto.SnapshotResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	engine, nav := uc.factory.New(req.Query)
	sess := uc.store.Create(engine, nav)
	snap := engine.Load(ctx)

	uc.logger.Info("Discovery session opened",
		zap.String("session_id", sess.ID),
		zap.String("state", string(snap.State)))

	return withSession(sess.ID, dto.ConvertSnapshot(snap)), nil
}

func (uc *SessionUseCase) Get(id string) (*dto.SnapshotResponse, error) {
	sess, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}
	return withSession(id, dto.ConvertSnapshot(sess.Engine.Snapshot())), nil
}

func (uc *SessionUseCase) Delete(id string) error {
	return uc.store.Delete(id)
}

// Reload повторяет загрузку каталога
func (uc *SessionUseCase) Reload(ctx context.Context, id string) (*dto.SnapshotResponse, error) {
	sess, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}
	return withSession(id, dto.ConvertSnapshot(sess.Engine.Load(ctx))), nil
}

// UpdateFilters применяет частичное изменение фильтров одной мутацией
func (uc *SessionUseCase) UpdateFilters(ctx context.Context, id string, req dto.UpdateFiltersRequest) (*dto.SnapshotResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	sess, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}

	mutate, err := buildMutation(sess.Engine.Criteria(), req)
	if err != nil {
		return nil, err
	}

	return withSession(id, dto.ConvertSnapshot(sess.Engine.Apply(ctx, mutate))), nil
}

func (uc *SessionUseCase) ClearFilters(ctx context.Context, id string) (*dto.SnapshotResponse, error) {
	sess, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}
	return withSession(id, dto.ConvertSnapshot(sess.Engine.ClearFilters(ctx))), nil
}

// SetLocation задаёт точку поиска по координатам или через геокодер
func (uc *SessionUseCase) SetLocation(ctx context.Context, id string, req dto.LocationRequest) (*dto.SnapshotResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	radius := req.RadiusKm
	if radius == 0 {
		radius = uc.defaultRadiusKm
	}
	if !utils.ValidateRadius(radius) {
		return nil, errors.ErrInvalidRadius
	}

	sess, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Lat != nil || req.Lon != nil:
		if req.Lat == nil || req.Lon == nil || !utils.ValidateCoordinates(*req.Lat, *req.Lon) {
			return nil, errors.ErrInvalidCoordinates
		}
		snap := sess.Engine.SetLocation(ctx, domain.Point{Lat: *req.Lat, Lon: *req.Lon}, radius)
		return withSession(id, dto.ConvertSnapshot(snap)), nil

	case req.Query != "":
		var provider repository.GeolocationProvider = unavailableProvider{}
		if uc.locator != nil {
			provider = uc.locator.Locator(req.Query)
		}
		snap := sess.Engine.UseCurrentLocation(ctx, provider, radius)
		return withSession(id, dto.ConvertSnapshot(snap)), nil

	default:
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"location": "lat/lon or query is required",
		})
	}
}

func (uc *SessionUseCase) DismissNotice(id string) (*dto.SnapshotResponse, error) {
	sess, err := uc.store.Get(id)
	if err != nil {
		return nil, err
	}
	return withSession(id, dto.ConvertSnapshot(sess.Engine.DismissNotice())), nil
}

func withSession(id string, resp dto.SnapshotResponse) *dto.SnapshotResponse {
	resp.SessionID = id
	return &resp
}

type unavailableProvider struct{}

func (unavailableProvider) CurrentPosition(context.Context) (domain.Point, error) {
	return domain.Point{}, fmt.Errorf("geocoding is not configured")
}

// buildMutation разбирает запрос и проверяет его против текущих критериев.
// Время слота без выбранной даты отклоняется; min > max не корректируется.
func buildMutation(current domain.FilterCriteria, req dto.UpdateFiltersRequest) (func(*domain.FilterCriteria), error) {
	var (
		date  *domain.Date
		start *domain.ClockTime
	)
	if req.Date != nil {
		d, err := domain.ParseDate(*req.Date)
		if err != nil {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"date": err.Error()})
		}
		date = &d
	}
	if req.StartTime != nil {
		c, err := domain.ParseClock(*req.StartTime)
		if err != nil {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"start_time": err.Error()})
		}
		start = &c
	}

	hasDate := date != nil || (current.When != nil && !req.ClearDate)
	// смена даты сохраняет выбранный слот
	hasSlot := current.IsTimeBound() && !req.ClearDate && !req.ClearSlot
	if (start != nil || req.Duration != nil) && !hasDate {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"start_time": "date must be selected first",
		})
	}
	if req.Duration != nil && start == nil && !hasSlot {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"duration": "start_time must be selected first",
		})
	}

	return func(c *domain.FilterCriteria) {
		if req.Sport != nil {
			c.Sport = *req.Sport
		}

		if req.ClearDate {
			c.When = nil
		}
		if date != nil {
			if c.When == nil {
				c.When = &domain.DateFilter{}
			}
			c.When.Date = *date
		}
		if req.ClearSlot && c.When != nil {
			c.When.Slot = nil
		}
		if (start != nil || req.Duration != nil) && c.When != nil {
			slot := domain.SlotFilter{DurationMinutes: domain.DefaultDurationMinutes}
			if c.When.Slot != nil {
				slot = *c.When.Slot
			}
			if start != nil {
				slot.Start = *start
			}
			if req.Duration != nil {
				slot.DurationMinutes = *req.Duration
			}
			c.When.Slot = &slot
		}

		if req.MinPrice != nil {
			c.Price.Min = *req.MinPrice
		}
		if req.MaxPrice != nil {
			c.Price.Max = *req.MaxPrice
		}

		if req.Amenities != nil {
			c.Amenities = slices.Clone(*req.Amenities)
		}
		if req.ToggleAmenity != nil {
			if i := slices.Index(c.Amenities, *req.ToggleAmenity); i >= 0 {
				c.Amenities = slices.Delete(c.Amenities, i, i+1)
			} else {
				c.Amenities = append(c.Amenities, *req.ToggleAmenity)
			}
		}

		if req.View != nil {
			c.View = domain.View(*req.View)
		}
		if req.SortBy != nil {
			c.SortBy = domain.SortBy(*req.SortBy)
		}
		if req.ShowUnavailable != nil {
			c.ShowUnavailable = *req.ShowUnavailable
		}

		if req.ClearLocation {
			c.Location = nil
		}
	}, nil
}
