package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/domain/healthcheck/mocks"
)

func serve(e *echo.Echo) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestCheck(t *testing.T) {
	req := require.New(t)
	us := &mocks.HealthCheckUsecase{}
	us.On("Check", mock.Anything).Return(nil).Once()
	us.On("Check", mock.Anything).Return(errors.New("dial tcp: connection refused")).Once()

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, us)

	rec := serve(e)
	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`{"healthy":"ok"}`, rec.Body.String())

	rec = serve(e)
	req.Equal(http.StatusInternalServerError, rec.Code)
	req.JSONEq(`{"detail":"dial tcp: connection refused"}`, rec.Body.String())
	us.AssertExpectations(t)
}
