package health

import (
	"github.com/aouiniamine/bookmarks/internal/features/health/controller"
	"github.com/aouiniamine/bookmarks/internal/features/health/service"
	"github.com/labstack/echo/v4"
)

type Feature struct {
	Controller *controller.HealthController
}

// New takes the dependencies /ready reports on, keyed by the name shown in
// the response.
func New(deps map[string]service.Pinger) *Feature {
	svc := service.New(deps)
	ctrl := controller.New(svc)

	return &Feature{
		Controller: ctrl,
	}
}

func (f *Feature) RegisterRoutes(e *echo.Echo) {
	f.Controller.RegisterRoutes(e)
}
