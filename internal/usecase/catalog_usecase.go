package usecase

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain"
	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/pkg/errors"
	"github.com/quadrago-discovery/internal/pkg/validator"
	"github.com/quadrago-discovery/internal/usecase/dto"
)

// CatalogUseCase - справочники и прямой просмотр слотов центра
type CatalogUseCase struct {
	catalog      repository.CatalogRepository
	availability repository.AvailabilityRepository
	logger       *zap.Logger
}

func NewCatalogUseCase(
	catalog repository.CatalogRepository,
	availability repository.AvailabilityRepository,
	logger *zap.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		catalog:      catalog,
		availability: availability,
		logger:       logger,
	}
}

func (uc *CatalogUseCase) GetSports(ctx context.Context) ([]domain.Sport, error) {
	sports, err := uc.catalog.GetSports(ctx)
	if err != nil {
		uc.logger.Error("Failed to get sports", zap.Error(err))
		return nil, catalogError(err)
	}
	return sports, nil
}

func (uc *CatalogUseCase) GetCenter(ctx context.Context, id string) (*domain.Center, error) {
	center, err := uc.catalog.GetCenter(ctx, id)
	if err != nil {
		if !stderrors.Is(err, errors.ErrCenterNotFound) {
			uc.logger.Error("Failed to get center", zap.String("center_id", id), zap.Error(err))
		}
		return nil, catalogError(err)
	}
	return center, nil
}

// GetAvailability возвращает слоты центра на дату/время. Длительность по умолчанию - 60 минут.
func (uc *CatalogUseCase) GetAvailability(ctx context.Context, centerID string, req dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"date": err.Error()})
	}
	start, err := domain.ParseClock(req.StartTime)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"startTime": err.Error()})
	}
	duration := req.Duration
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}

	if _, err := uc.GetCenter(ctx, centerID); err != nil {
		return nil, err
	}

	slots, err := uc.availability.GetAvailability(ctx, centerID, date, start, duration)
	if err != nil {
		uc.logger.Warn("Availability provider failed",
			zap.String("center_id", centerID),
			zap.String("date", date.String()),
			zap.Error(err))
		return nil, errors.ErrAvailability.WithDetails(map[string]interface{}{
			"cause": err.Error(),
		})
	}

	return &dto.AvailabilityResponse{
		CenterID:        centerID,
		Date:            date,
		StartTime:       start,
		DurationMinutes: duration,
		Available:       domain.AnyAvailable(slots),
		Slots:           slots,
	}, nil
}

// catalogError оставляет AppError как есть, остальное - CATALOG_LOAD_ERROR
func catalogError(err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.ErrCatalogLoad.WithDetails(map[string]interface{}{
		"cause": err.Error(),
	})
}
