package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quadrago-discovery/internal/pkg/errors"
)

// SuccessResponse - конверт успешного ответа
type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// Meta - сводка по выдаче: число центров, каноничная query string фильтров и версия состояния сессии
type Meta struct {
	Total   int    `json:"total"`
	Query   string `json:"query,omitempty"`
	Version uint64 `json:"version,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendCreated(c *fiber.Ctx, data interface{}, meta *Meta) error {
	c.Status(fiber.StatusCreated)
	return SendSuccess(c, data, meta)
}

// SendError отдаёт AppError с его статусом; прочие ошибки скрываются за 500
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}

// SetWeakETag выставляет W/"tag" и сообщает, совпал ли он с If-None-Match запроса
func SetWeakETag(c *fiber.Ctx, tag string) bool {
	etag := `W/"` + tag + `"`
	c.Set(fiber.HeaderETag, etag)
	return c.Get(fiber.HeaderIfNoneMatch) == etag
}
