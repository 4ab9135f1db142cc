package controller

import (
	"net/http"

	"github.com/aouiniamine/bookmarks/internal/features/greeting/service"
	"github.com/labstack/echo/v4"
)

type GreetingController struct {
	service service.GreetingService
}

func New(svc service.GreetingService) *GreetingController {
	return &GreetingController{
		service: svc,
	}
}

func (h *GreetingController) RegisterRoutes(e *echo.Echo, m ...echo.MiddlewareFunc) {
	e.Any("/", h.Greet, m...)
}

// Greet godoc
// @Summary Greeting
// @Description Plain text greeting read by the status page.
// @Tags greeting
// @Produce plain
// @Success 200 {string} string "Hello!"
// @Router / [get]
func (h *GreetingController) Greet(c echo.Context) error {
	return c.String(http.StatusOK, h.service.Greet(c.Request().Context()))
}
