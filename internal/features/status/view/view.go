// Package view holds the status view: the component that reads the configured
// endpoint once when mounted and projects the outcome into a rendering.
package view

import (
	"context"
	"fmt"
	"sync"
)

const (
	Heading        = "Bookmarks App"
	LoadingMessage = "Loading..."
)

// Fetcher performs the single outbound read of a view.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context) (string, error) {
	return f(ctx)
}

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "loading"
	}
}

func (p Phase) Terminal() bool {
	return p != PhaseLoading
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "loading":
		*p = PhaseLoading
	case "success":
		*p = PhaseSuccess
	case "error":
		*p = PhaseError
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// DisplayState is the view's two-field state. Error wins when non-empty.
type DisplayState struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func InitialState() DisplayState {
	return DisplayState{Message: LoadingMessage}
}

// Snapshot is a point-in-time copy of a view, safe to hand to other goroutines.
type Snapshot struct {
	State DisplayState `json:"state"`
	Phase Phase        `json:"phase"`
}

func (s Snapshot) Render() Rendering {
	return Render(s.State)
}

type Option func(*StatusView)

// WithOnChange registers a callback invoked with the initial snapshot on mount
// and once more with the terminal snapshot.
func WithOnChange(fn func(Snapshot)) Option {
	return func(v *StatusView) {
		v.onChange = append(v.onChange, fn)
	}
}

// StatusView owns its DisplayState exclusively. The state changes exactly
// once, when the fetch started by Mount completes.
type StatusView struct {
	fetcher  Fetcher
	onChange []func(Snapshot)

	mu        sync.Mutex
	state     DisplayState
	phase     Phase
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc

	done     chan struct{}
	doneOnce sync.Once
}

func New(fetcher Fetcher, opts ...Option) *StatusView {
	v := &StatusView{
		fetcher: fetcher,
		state:   InitialState(),
		phase:   PhaseLoading,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount starts the view's only fetch. Later calls are no-ops, as are calls
// after Unmount. ctx bounds the fetch, not the call.
func (v *StatusView) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.mounted || v.unmounted {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	ctx, v.cancel = context.WithCancel(ctx)
	snap := v.snapshotLocked()
	v.mu.Unlock()

	v.notify(snap)

	go func() {
		text, err := v.fetcher.Fetch(ctx)
		v.complete(text, err)
	}()
}

// Unmount tears the view down. An outstanding fetch is cancelled and its
// completion is discarded.
func (v *StatusView) Unmount() {
	v.mu.Lock()
	if v.unmounted {
		v.mu.Unlock()
		return
	}
	v.unmounted = true
	if v.cancel != nil {
		v.cancel()
	}
	v.mu.Unlock()

	v.closeDone()
}

func (v *StatusView) complete(text string, err error) {
	v.mu.Lock()
	if v.unmounted || v.phase.Terminal() {
		v.mu.Unlock()
		return
	}
	if err != nil {
		v.state.Error = err.Error()
		if v.state.Error == "" {
			v.state.Error = "request failed"
		}
		v.phase = PhaseError
	} else {
		v.state.Message = text
		v.phase = PhaseSuccess
	}
	v.cancel()
	snap := v.snapshotLocked()
	v.mu.Unlock()

	v.notify(snap)
	v.closeDone()
}

// Done is closed when the view reaches a terminal phase or is unmounted.
func (v *StatusView) Done() <-chan struct{} {
	return v.done
}

func (v *StatusView) State() DisplayState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *StatusView) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

func (v *StatusView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *StatusView) Unmounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.unmounted
}

func (v *StatusView) Render() Rendering {
	return Render(v.State())
}

func (v *StatusView) snapshotLocked() Snapshot {
	return Snapshot{State: v.state, Phase: v.phase}
}

func (v *StatusView) notify(snap Snapshot) {
	for _, fn := range v.onChange {
		fn(snap)
	}
}

func (v *StatusView) closeDone() {
	v.doneOnce.Do(func() { close(v.done) })
}
