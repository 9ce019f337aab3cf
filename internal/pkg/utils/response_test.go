package utils_test

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrago-discovery/internal/pkg/errors"
	"github.com/quadrago-discovery/internal/pkg/utils"
)

func TestSendError(t *testing.T) {
	app := fiber.New()
	app.Get("/known", func(c *fiber.Ctx) error {
		return utils.SendError(c, errors.ErrInvalidRadius.WithDetails(map[string]interface{}{"radius": 0.01}))
	})
	app.Get("/unknown", func(c *fiber.Ctx) error {
		return utils.SendError(c, stderrors.New("pq: connection reset"))
	})

	tests := []struct {
		path     string
		wantCode int
		wantErr  string
	}{
		{path: "/known", wantCode: http.StatusBadRequest, wantErr: "INVALID_RADIUS"},
		{path: "/unknown", wantCode: http.StatusInternalServerError, wantErr: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body utils.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantErr, body.Error.Code)
		})
	}
}

func TestSetWeakETag(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if utils.SetWeakETag(c, "abc123") {
			return c.SendStatus(fiber.StatusNotModified)
		}
		return utils.SendCreated(c, "fresh", &utils.Meta{Total: 1})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `W/"abc123"`, resp.Header.Get("ETag"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", `W/"abc123"`)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}
