package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/Ramsey-B/arbor/pkg/context"
)

func TestContextPopulatesFromHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/kitchens", nil)
	req.Header.Set(HeaderOrgID, "a9f2e7d4-1b3c-4f5a-8e6d-0c1b2a3d4e5f")
	req.Header.Set(HeaderUserID, "user-1")
	req.Header.Set(HeaderUserRole, "admin")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Context()(func(c echo.Context) error {
		ctx := c.Request().Context()
		assert.Equal(t, "a9f2e7d4-1b3c-4f5a-8e6d-0c1b2a3d4e5f", appctx.GetOrgID(ctx))
		assert.Equal(t, "user-1", appctx.GetUserID(ctx))
		assert.Equal(t, "admin", appctx.GetUserRole(ctx))
		assert.Equal(t, http.MethodGet, appctx.GetMethod(ctx))
		assert.NotEmpty(t, appctx.GetRequestID(ctx))
		return nil
	})

	require.NoError(t, handler(c))
}

func TestContextGeneratesRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got string
	handler := Context()(func(c echo.Context) error {
		got = appctx.GetRequestID(c.Request().Context())
		return nil
	})

	require.NoError(t, handler(c))
	assert.NotEmpty(t, got)
}

func TestContextKeepsProvidedRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Context()(func(c echo.Context) error {
		assert.Equal(t, "req-123", appctx.GetRequestID(c.Request().Context()))
		return nil
	})

	require.NoError(t, handler(c))
}
