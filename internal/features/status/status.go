package status

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/aouiniamine/bookmarks/internal/features/status/controller"
	"github.com/aouiniamine/bookmarks/internal/features/status/service"
	"github.com/aouiniamine/bookmarks/internal/features/status/store"
	"github.com/aouiniamine/bookmarks/internal/features/status/view"
	"github.com/aouiniamine/bookmarks/internal/metrics"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*
var templatesFS embed.FS

type TemplateRenderer struct {
	templates *template.Template
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func NewRenderer() *TemplateRenderer {
	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html"))
	return &TemplateRenderer{templates: tmpl}
}

type Feature struct {
	Controller *controller.StatusController
	Service    service.StatusService
}

func New(fetcher view.Fetcher, st store.Store, m *metrics.Metrics, ttl time.Duration) *Feature {
	svc := service.New(fetcher, st, m, ttl)
	ctrl := controller.New(svc)

	return &Feature{
		Controller: ctrl,
		Service:    svc,
	}
}

func (f *Feature) RegisterRoutes(e *echo.Echo) {
	e.Renderer = NewRenderer()
	f.Controller.RegisterRoutes(e)
}
