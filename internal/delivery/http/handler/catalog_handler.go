package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/pkg/errors"
	"github.com/quadrago-discovery/internal/pkg/utils"
	"github.com/quadrago-discovery/internal/usecase"
	"github.com/quadrago-discovery/internal/usecase/dto"
)

// CatalogHandler - справочник видов спорта, карточка центра и его слоты
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

// NewCatalogHandler - создание нового CatalogHandler
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// GetSports godoc
// @Summary Виды спорта
// @Description Справочник видов спорта для фильтра
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Sport}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/sports [get]
func (h *CatalogHandler) GetSports(c *fiber.Ctx) error {
	sports, err := h.catalogUC.GetSports(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, sports, &utils.Meta{Total: len(sports)})
}

// GetCenter godoc
// @Summary Спортивный центр
// @Description Карточка центра с площадками и часами работы
// @Tags Catalog
// @Produce json
// @Param id path string true "ID центра"
// @Success 200 {object} utils.SuccessResponse{data=domain.Center}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/centers/{id} [get]
func (h *CatalogHandler) GetCenter(c *fiber.Ctx) error {
	center, err := h.catalogUC.GetCenter(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, center, nil)
}

// GetAvailability godoc
// @Summary Слоты центра
// @Description Свободные и занятые слоты всех площадок центра на дату и время
// @Tags Catalog
// @Produce json
// @Param id path string true "ID центра"
// @Param date query string true "Дата (YYYY-MM-DD)"
// @Param startTime query string true "Время начала (HH:MM)"
// @Param duration query int false "Длительность в минутах" default(60)
// @Success 200 {object} utils.SuccessResponse{data=dto.AvailabilityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/centers/{id}/availability [get]
func (h *CatalogHandler) GetAvailability(c *fiber.Ctx) error {
	var req dto.AvailabilityRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"query": err.Error(),
		}))
	}

	resp, err := h.catalogUC.GetAvailability(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, &utils.Meta{Total: len(resp.Slots)})
}
