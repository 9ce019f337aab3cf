package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/pkg/errors"
	"github.com/quadrago-discovery/internal/pkg/utils"
	"github.com/quadrago-discovery/internal/usecase"
	"github.com/quadrago-discovery/internal/usecase/dto"
)

// SessionHandler - долгоживущие discovery сессии
type SessionHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

// NewSessionHandler - создание нового SessionHandler
func NewSessionHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Открыть сессию
// @Description Создаёт сессию, восстанавливая фильтры из query string, и загружает каталог
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest false "Начальное состояние фильтров"
// @Success 201 {object} utils.SuccessResponse{data=dto.SnapshotResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, invalidBody(err))
		}
	}

	resp, err := h.sessionUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, resp, snapshotMeta(resp))
}

// Get godoc
// @Summary Состояние сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SnapshotResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	resp, err := h.sessionUC.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return sendSnapshot(c, resp)
}

// Delete godoc
// @Summary Закрыть сессию
// @Tags Sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessionUC.Delete(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateFilters godoc
// @Summary Изменить фильтры
// @Description Частичное изменение фильтров: отсутствующие поля не меняются
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.UpdateFiltersRequest true "Изменения фильтров"
// @Success 200 {object} utils.SuccessResponse{data=dto.SnapshotResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/filters [patch]
func (h *SessionHandler) UpdateFilters(c *fiber.Ctx) error {
	var req dto.UpdateFiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	resp, err := h.sessionUC.UpdateFilters(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return sendSnapshot(c, resp)
}

// ClearFilters godoc
// @Summary Сбросить фильтры
// @Description Возвращает фильтры к значениям по умолчанию, сохраняя режим отображения и сортировку
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SnapshotResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/filters [delete]
func (h *SessionHandler) ClearFilters(c *fiber.Ctx) error {
	resp, err := h.sessionUC.ClearFilters(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return sendSnapshot(c, resp)
}

// SetLocation godoc
// @Summary Задать точку поиска
// @Description Координаты или текстовый запрос (геокодирование). Если место не найдено, фильтр по расстоянию не меняется и выставляется notice.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.LocationRequest true "Точка поиска"
// @Success 200 {object} utils.SuccessResponse{data=dto.SnapshotResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/location [post]
func (h *SessionHandler) SetLocation(c *fiber.Ctx) error {
	var req dto.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	resp, err := h.sessionUC.SetLocation(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return sendSnapshot(c, resp)
}

// DismissNotice godoc
// @Summary Скрыть уведомление
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SnapshotResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/notice [delete]
func (h *SessionHandler) DismissNotice(c *fiber.Ctx) error {
	resp, err := h.sessionUC.DismissNotice(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return sendSnapshot(c, resp)
}

// Reload godoc
// @Summary Повторить загрузку каталога
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SnapshotResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/reload [post]
func (h *SessionHandler) Reload(c *fiber.Ctx) error {
	resp, err := h.sessionUC.Reload(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return sendSnapshot(c, resp)
}

func sendSnapshot(c *fiber.Ctx, resp *dto.SnapshotResponse) error {
	return utils.SendSuccess(c, resp, snapshotMeta(resp))
}

func snapshotMeta(resp *dto.SnapshotResponse) *utils.Meta {
	return &utils.Meta{
		Total:   resp.Total,
		Query:   resp.Query,
		Version: resp.Version,
	}
}

func invalidBody(err error) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"body": err.Error(),
	})
}
