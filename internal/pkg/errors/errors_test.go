package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrago-discovery/internal/pkg/errors"
)

func TestWithDetails(t *testing.T) {
	detailed := errors.ErrCenterNotFound.WithDetails(map[string]interface{}{"id": "ctr-404"})

	assert.Nil(t, errors.ErrCenterNotFound.Details, "sentinel is not mutated")
	assert.Equal(t, "ctr-404", detailed.Details["id"])
	assert.Equal(t, http.StatusNotFound, detailed.StatusCode)
	assert.True(t, stderrors.Is(detailed, errors.ErrCenterNotFound))
	assert.False(t, stderrors.Is(detailed, errors.ErrSessionNotFound))
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("load session: %w", errors.ErrSessionNotFound)

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "SESSION_NOT_FOUND", appErr.Code)
	assert.Equal(t, "SESSION_NOT_FOUND: Discovery session not found or expired", appErr.Error())

	_, ok = errors.As(stderrors.New("plain"))
	assert.False(t, ok)
}
