package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aouiniamine/bookmarks/internal/metrics"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type Server struct {
	echo *echo.Echo
	addr string
}

// New builds an echo server exposing m on /metrics. debug surfaces handler
// error details in responses and lowers the log level to DEBUG.
func New(host, port string, m *metrics.Metrics, debug bool) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Debug = debug
	if debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	return &Server{
		echo: e,
		addr: fmt.Sprintf("%s:%s", host, port),
	}
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Addr() string {
	return s.addr
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
