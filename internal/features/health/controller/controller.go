package controller

import (
	"net/http"

	"github.com/aouiniamine/bookmarks/internal/features/health/dto"
	"github.com/aouiniamine/bookmarks/internal/features/health/service"
	"github.com/aouiniamine/bookmarks/pkg/response"
	"github.com/labstack/echo/v4"
)

type HealthController struct {
	service service.HealthService
}

func New(svc service.HealthService) *HealthController {
	return &HealthController{
		service: svc,
	}
}

func (h *HealthController) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthController) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /ready [get]
func (h *HealthController) Ready(c echo.Context) error {
	status := h.service.Check(c.Request().Context())
	if !status.Healthy() {
		return response.Unavailable(c, status)
	}

	return response.Success(c, status)
}
