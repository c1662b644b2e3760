package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/delivery"
	hcdomain "github.com/x-xyz/artgallery/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New will initialize the healthcheck/
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	g := e.Group("/health")
	g.GET("", handler.check)
}

// @Summary Health check
// @Description Pings the rpc node
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} delivery.ErrorResponse
// @Router /health [get]
func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	if err := h.healthCheck.Check(context); err != nil {
		return c.JSON(http.StatusInternalServerError, delivery.ErrorResponse{
			Detail: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"healthy": "ok",
	})
}
