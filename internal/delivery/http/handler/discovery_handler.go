package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/pkg/utils"
	"github.com/quadrago-discovery/internal/usecase"
)

// DiscoveryHandler - stateless поиск центров по query string
type DiscoveryHandler struct {
	discoveryUC *usecase.DiscoveryUseCase
	logger      *zap.Logger
}

// NewDiscoveryHandler - создание нового DiscoveryHandler
func NewDiscoveryHandler(discoveryUC *usecase.DiscoveryUseCase, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUC: discoveryUC,
		logger:      logger,
	}
}

// SearchCenters godoc
// @Summary Поиск центров
// @Description Применяет фильтры (sport, date, startTime, duration, minPrice, maxPrice, lat, lng, radius, amenities, view, sortBy, showUnavailable) к каталогу. Некорректные значения игнорируются. ETag - отпечаток каноничных фильтров.
// @Tags Discovery
// @Produce json
// @Param sport query string false "ID вида спорта"
// @Param date query string false "Дата (YYYY-MM-DD)"
// @Param startTime query string false "Время начала (HH:MM)"
// @Param duration query int false "Длительность в минутах"
// @Param minPrice query number false "Минимальная цена"
// @Param maxPrice query number false "Максимальная цена"
// @Param lat query number false "Широта"
// @Param lng query number false "Долгота"
// @Param radius query number false "Радиус, км"
// @Param amenities query string false "Удобства через запятую"
// @Param view query string false "list или map"
// @Param sortBy query string false "relevance, distance или price"
// @Param showUnavailable query bool false "Показывать занятые центры"
// @Success 200 {object} utils.SuccessResponse{data=dto.SnapshotResponse}
// @Success 304 "Not Modified"
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/centers [get]
func (h *DiscoveryHandler) SearchCenters(c *fiber.Ctx) error {
	query := string(c.Request().URI().QueryString())

	resp, err := h.discoveryUC.Search(c.UserContext(), query)
	if err != nil {
		return utils.SendError(c, err)
	}

	matched := utils.SetWeakETag(c, resp.ETag)
	// Доступность меняется со временем, поэтому ETag проверяется только для запросов без слота
	if matched && !resp.Criteria.IsTimeBound() {
		return c.SendStatus(fiber.StatusNotModified)
	}

	return utils.SendSuccess(c, resp.SnapshotResponse, &utils.Meta{
		Total: resp.Total,
		Query: resp.Query,
	})
}
