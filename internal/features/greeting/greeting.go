package greeting

import (
	"github.com/aouiniamine/bookmarks/internal/features/greeting/controller"
	"github.com/aouiniamine/bookmarks/internal/features/greeting/service"
	"github.com/labstack/echo/v4"
)

type Feature struct {
	Controller *controller.GreetingController
	Service    service.GreetingService
}

func New(message string) *Feature {
	svc := service.New(message)
	ctrl := controller.New(svc)

	return &Feature{
		Controller: ctrl,
		Service:    svc,
	}
}

func (f *Feature) RegisterRoutes(e *echo.Echo, m ...echo.MiddlewareFunc) {
	f.Controller.RegisterRoutes(e, m...)
}
