package controller

import (
	"errors"
	"net/http"

	"github.com/aouiniamine/bookmarks/internal/features/status/service"
	"github.com/aouiniamine/bookmarks/pkg/response"
	"github.com/labstack/echo/v4"
)

type StatusController struct {
	service service.StatusService
}

func New(svc service.StatusService) *StatusController {
	return &StatusController{
		service: svc,
	}
}

func (h *StatusController) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/views/:id", h.Partial)
	e.GET("/views/:id/state", h.State)
	e.GET("/views/:id/ws", h.Socket)
	e.DELETE("/views/:id", h.Close)
}

// Page mounts a fresh view per load and renders it in its loading state.
func (h *StatusController) Page(c echo.Context) error {
	view, err := h.service.Open(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("open status view: %v", err)
		return c.String(http.StatusInternalServerError, "Failed to open status view")
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Render(http.StatusOK, "index.html", view)
}

func (h *StatusController) Partial(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, service.ErrViewNotFound) {
		return c.HTML(http.StatusNotFound, `<div id="status"><p style="color: red">Error: view not found</p></div>`)
	}
	if err != nil {
		c.Logger().Errorf("load status view: %v", err)
		return c.HTML(http.StatusInternalServerError, `<div id="status"><p style="color: red">Error: failed to load view</p></div>`)
	}

	return c.Render(http.StatusOK, "status.html", view)
}

func (h *StatusController) State(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, service.ErrViewNotFound) {
		return response.NotFound(c, "status view not found")
	}
	if err != nil {
		return response.InternalError(c, "failed to load status view")
	}

	return response.Success(c, view)
}

func (h *StatusController) Close(c echo.Context) error {
	err := h.service.Close(c.Request().Context(), c.Param("id"))
	if errors.Is(err, service.ErrViewNotFound) {
		return response.NotFound(c, "status view not found")
	}
	if err != nil {
		return response.InternalError(c, "failed to close status view")
	}

	return response.NoContent(c)
}
