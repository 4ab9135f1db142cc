package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/aouiniamine/bookmarks/internal/features/status/dto"
	"github.com/aouiniamine/bookmarks/internal/features/status/store"
	"github.com/aouiniamine/bookmarks/internal/features/status/view"
	"github.com/aouiniamine/bookmarks/internal/metrics"
	"github.com/google/uuid"
)

var ErrViewNotFound = errors.New("status view not found")

const defaultPollInterval = 250 * time.Millisecond

type StatusService interface {
	// Open mounts a new view and returns its first rendering.
	Open(ctx context.Context) (*dto.ViewResponse, error)
	Get(ctx context.Context, id string) (*dto.ViewResponse, error)
	// Wait blocks until the view is terminal. Views mounted by another
	// replica are polled from the store.
	Wait(ctx context.Context, id string) (*dto.ViewResponse, error)
	Close(ctx context.Context, id string) error
	// Run closes views older than the TTL until ctx ends.
	Run(ctx context.Context, interval time.Duration)
	Shutdown()
}

type entry struct {
	view      *view.StatusView
	createdAt time.Time
}

type statusService struct {
	fetcher view.Fetcher
	store   store.Store
	metrics *metrics.Metrics
	ttl     time.Duration
	now     func() time.Time

	// poll is how often Wait reloads a view mounted by another replica.
	poll time.Duration

	// base bounds every fetch; handler contexts end before fetches do.
	base       context.Context
	cancelBase context.CancelFunc

	mu    sync.Mutex
	views map[string]*entry
}

var _ StatusService = (*statusService)(nil)

func New(fetcher view.Fetcher, st store.Store, m *metrics.Metrics, ttl time.Duration) StatusService {
	return newService(fetcher, st, m, ttl)
}

func newService(fetcher view.Fetcher, st store.Store, m *metrics.Metrics, ttl time.Duration) *statusService {
	base, cancel := context.WithCancel(context.Background())
	return &statusService{
		fetcher:    fetcher,
		store:      st,
		metrics:    m,
		ttl:        ttl,
		now:        time.Now,
		poll:       defaultPollInterval,
		base:       base,
		cancelBase: cancel,
		views:      make(map[string]*entry),
	}
}

func (s *statusService) Open(ctx context.Context) (*dto.ViewResponse, error) {
	id := uuid.New().String()
	v := view.New(s.fetcher, view.WithOnChange(func(snap view.Snapshot) {
		s.mirror(id, snap)
	}))

	created := s.now()
	s.mu.Lock()
	s.views[id] = &entry{view: v, createdAt: created}
	s.mu.Unlock()

	s.metrics.ViewsMounted.Inc()
	s.metrics.ViewsActive.Inc()
	v.Mount(s.base)

	return toResponse(id, v.Snapshot(), created), nil
}

func (s *statusService) Get(ctx context.Context, id string) (*dto.ViewResponse, error) {
	if e, ok := s.lookup(id); ok {
		return toResponse(id, e.view.Snapshot(), e.createdAt), nil
	}

	snap, err := s.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrViewNotFound
	}
	if err != nil {
		return nil, err
	}
	return toResponse(id, snap, time.Time{}), nil
}

func (s *statusService) Wait(ctx context.Context, id string) (*dto.ViewResponse, error) {
	e, ok := s.lookup(id)
	if !ok {
		return s.waitStored(ctx, id)
	}

	select {
	case <-e.view.Done():
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if e.view.Unmounted() && !e.view.Phase().Terminal() {
		return nil, ErrViewNotFound
	}
	return toResponse(id, e.view.Snapshot(), e.createdAt), nil
}

func (s *statusService) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	e, ok := s.views[id]
	delete(s.views, id)
	s.mu.Unlock()

	if ok {
		e.view.Unmount()
		s.metrics.ViewsActive.Dec()
	} else if _, err := s.store.Load(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrViewNotFound
		}
		return err
	}

	return s.store.Delete(ctx, id)
}

// waitStored reloads a view mounted by another replica until its mirrored
// snapshot is terminal.
func (s *statusService) waitStored(ctx context.Context, id string) (*dto.ViewResponse, error) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		snap, err := s.store.Load(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrViewNotFound
		}
		if err != nil {
			return nil, err
		}
		if snap.Phase.Terminal() {
			return toResponse(id, snap, time.Time{}), nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (s *statusService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.sweep(ctx); n > 0 {
				log.Printf("Closed %d expired status views", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *statusService) Shutdown() {
	s.mu.Lock()
	views := s.views
	s.views = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range views {
		e.view.Unmount()
		s.metrics.ViewsActive.Dec()
	}
	s.cancelBase()
}

func (s *statusService) sweep(ctx context.Context) int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []string
	for id, e := range s.views {
		if e.createdAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()

	for _, id := range expired {
		if err := s.Close(ctx, id); err != nil && !errors.Is(err, ErrViewNotFound) {
			log.Printf("Error closing status view %s: %v", id, err)
		}
	}
	return len(expired)
}

func (s *statusService) lookup(id string) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.views[id]
	return e, ok
}

// mirror runs on the mounting goroutine for the initial snapshot and on the
// fetch goroutine for the terminal one.
func (s *statusService) mirror(id string, snap view.Snapshot) {
	switch snap.Phase {
	case view.PhaseSuccess:
		s.metrics.FetchOutcomes.WithLabelValues("success").Inc()
	case view.PhaseError:
		s.metrics.FetchOutcomes.WithLabelValues("error").Inc()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Save(ctx, id, snap); err != nil {
		log.Printf("Error saving status view %s: %v", id, err)
	}
}

func toResponse(id string, snap view.Snapshot, createdAt time.Time) *dto.ViewResponse {
	r := snap.Render()
	return &dto.ViewResponse{
		ID:        id,
		Phase:     snap.Phase.String(),
		Message:   snap.State.Message,
		Error:     snap.State.Error,
		Heading:   r.Heading,
		Text:      r.Text,
		IsError:   r.IsError,
		Loading:   !snap.Phase.Terminal(),
		CreatedAt: createdAt,
	}
}
