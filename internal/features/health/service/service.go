package service

import (
	"context"
	"sort"
	"time"

	"github.com/aouiniamine/bookmarks/internal/features/health/dto"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthService interface {
	Check(ctx context.Context) *dto.ReadyResponse
}

type healthService struct {
	deps map[string]Pinger
}

func New(deps map[string]Pinger) HealthService {
	return &healthService{
		deps: deps,
	}
}

func (s *healthService) Check(ctx context.Context) *dto.ReadyResponse {
	status := &dto.ReadyResponse{
		Status:   dto.StatusHealthy,
		Services: make(map[string]string, len(s.deps)),
	}

	names := make([]string, 0, len(s.deps))
	for name := range s.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := s.deps[name].Ping(pingCtx)
		cancel()

		if err != nil {
			status.Status = dto.StatusUnhealthy
			status.Services[name] = dto.StatusUnhealthy
		} else {
			status.Services[name] = dto.StatusHealthy
		}
	}

	return status
}
