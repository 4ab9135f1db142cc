package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aouiniamine/bookmarks/internal/features/status"
	"github.com/aouiniamine/bookmarks/internal/features/status/store"
	"github.com/aouiniamine/bookmarks/internal/features/status/view"
	"github.com/aouiniamine/bookmarks/internal/metrics"
)

var wsPath = regexp.MustCompile(`/views/([0-9a-f-]{36})/ws`)

type gate struct {
	ch   chan struct{}
	text string
	err  error
}

func newGate(text string, err error) *gate {
	return &gate{ch: make(chan struct{}), text: text, err: err}
}

func (g *gate) Fetch(ctx context.Context) (string, error) {
	select {
	case <-g.ch:
		return g.text, g.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func setup(t *testing.T, f view.Fetcher) (*echo.Echo, *status.Feature) {
	t.Helper()
	return replica(t, f, store.NewMemory(time.Minute))
}

func replica(t *testing.T, f view.Fetcher, st store.Store) (*echo.Echo, *status.Feature) {
	t.Helper()
	e := echo.New()
	feature := status.New(f, st, metrics.New(), time.Minute)
	feature.RegisterRoutes(e)
	t.Cleanup(feature.Service.Shutdown)
	return e, feature
}

func do(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func settle(t *testing.T, feature *status.Feature, id string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := feature.Service.Wait(ctx, id)
	require.NoError(t, err)
}

func TestPage_RendersLoading(t *testing.T) {
	g := newGate("pong", nil)
	e, _ := setup(t, g)

	rec := do(e, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Bookmarks App</h1>")
	assert.Contains(t, body, "API says: Loading...")
	assert.NotContains(t, body, "color: red")
	assert.Regexp(t, wsPath, body)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestPage_EachLoadMountsNewView(t *testing.T) {
	e, _ := setup(t, newGate("pong", nil))

	first := wsPath.FindStringSubmatch(do(e, http.MethodGet, "/").Body.String())
	second := wsPath.FindStringSubmatch(do(e, http.MethodGet, "/").Body.String())

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.NotEqual(t, first[1], second[1])
}

func TestPartial_Success(t *testing.T) {
	g := newGate("pong", nil)
	e, feature := setup(t, g)

	resp, err := feature.Service.Open(context.Background())
	require.NoError(t, err)
	close(g.ch)
	settle(t, feature, resp.ID)

	rec := do(e, http.MethodGet, "/views/"+resp.ID)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>API says: pong</p>")
	assert.Contains(t, rec.Body.String(), `data-phase="success"`)
}

func TestPartial_ServerErrorBodyIsMessage(t *testing.T) {
	g := newGate("internal error", nil)
	e, feature := setup(t, g)

	resp, err := feature.Service.Open(context.Background())
	require.NoError(t, err)
	close(g.ch)
	settle(t, feature, resp.ID)

	rec := do(e, http.MethodGet, "/views/"+resp.ID)
	assert.Contains(t, rec.Body.String(), "API says: internal error")
}

func TestPartial_Failure(t *testing.T) {
	g := newGate("", errors.New("connection refused"))
	e, feature := setup(t, g)

	resp, err := feature.Service.Open(context.Background())
	require.NoError(t, err)
	close(g.ch)
	settle(t, feature, resp.ID)

	rec := do(e, http.MethodGet, "/views/"+resp.ID)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<p style="color: red">Error: connection refused</p>`)
	assert.NotContains(t, rec.Body.String(), "API says")
}

func TestPartial_NotFound(t *testing.T) {
	e, _ := setup(t, newGate("pong", nil))

	rec := do(e, http.MethodGet, "/views/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestState_JSON(t *testing.T) {
	g := newGate("pong", nil)
	e, feature := setup(t, g)

	resp, err := feature.Service.Open(context.Background())
	require.NoError(t, err)
	close(g.ch)
	settle(t, feature, resp.ID)

	rec := do(e, http.MethodGet, "/views/"+resp.ID+"/state")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID      string `json:"id"`
			Message string `json:"message"`
			Error   string `json:"error"`
			Phase   string `json:"phase"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, resp.ID, body.Data.ID)
	assert.Equal(t, "pong", body.Data.Message)
	assert.Empty(t, body.Data.Error)
	assert.Equal(t, "success", body.Data.Phase)

	rec = do(e, http.MethodGet, "/views/missing/state")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestClose(t *testing.T) {
	e, feature := setup(t, newGate("pong", nil))

	resp, err := feature.Service.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/views/"+resp.ID).Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodDelete, "/views/"+resp.ID).Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/views/"+resp.ID).Code)
}

func TestSocket_PushesSettledPartial(t *testing.T) {
	g := newGate("pong", nil)
	e, feature := setup(t, g)
	srv := httptest.NewServer(e)
	defer srv.Close()

	resp, err := feature.Service.Open(context.Background())
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/views/" + resp.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	close(g.ch)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `id="status"`)
	assert.Contains(t, string(msg), "API says: pong")
}

func TestSocket_DisconnectTearsDownView(t *testing.T) {
	g := newGate("pong", nil)
	e, feature := setup(t, g)
	srv := httptest.NewServer(e)
	defer srv.Close()

	resp, err := feature.Service.Open(context.Background())
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/views/" + resp.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	conn.Close()

	assert.Eventually(t, func() bool {
		_, err := feature.Service.Get(context.Background(), resp.ID)
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSocket_WaitsForViewMountedElsewhere(t *testing.T) {
	g := newGate("pong", nil)
	st := store.NewMemory(time.Minute)
	a, _ := replica(t, g, st)
	b, _ := replica(t, newGate("unused", nil), st)
	srv := httptest.NewServer(b)
	defer srv.Close()

	page := do(a, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, page.Code)
	m := wsPath.FindStringSubmatch(page.Body.String())
	require.Len(t, m, 2)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + m[0]
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// the fetch on replica a finishes well after b starts waiting
	time.AfterFunc(300*time.Millisecond, func() { close(g.ch) })

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), `data-phase="success"`)
	assert.Contains(t, string(msg), "API says: pong")
}

func TestClose_ViewMountedElsewhere(t *testing.T) {
	st := store.NewMemory(time.Minute)
	_, a := replica(t, newGate("pong", nil), st)
	b, _ := replica(t, newGate("unused", nil), st)

	resp, err := a.Service.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, do(b, http.MethodDelete, "/views/"+resp.ID).Code)
	assert.Equal(t, http.StatusNotFound, do(b, http.MethodDelete, "/views/"+resp.ID).Code)
}

func TestSocket_UnknownView(t *testing.T) {
	e, _ := setup(t, newGate("pong", nil))

	rec := do(e, http.MethodGet, "/views/unknown/ws")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
