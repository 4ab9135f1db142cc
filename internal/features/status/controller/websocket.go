package controller

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aouiniamine/bookmarks/internal/features/status/service"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Socket pushes the re-rendered status partial once the view settles. A
// client that disconnects first tears the view down.
func (h *StatusController) Socket(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.service.Get(c.Request().Context(), id); err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		c.Logger().Warnf("websocket upgrade failed: %v", err)
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the client never sends; a read error means it went away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	view, err := h.service.Wait(ctx, id)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			if err := h.service.Close(context.Background(), id); err != nil && !errors.Is(err, service.ErrViewNotFound) {
				c.Logger().Warnf("close status view %s: %v", id, err)
			}
		}
		return nil
	}

	var buf bytes.Buffer
	if err := c.Echo().Renderer.Render(&buf, "status.html", view, c); err != nil {
		c.Logger().Errorf("render status partial: %v", err)
		return nil
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, buf.Bytes()); err != nil {
		c.Logger().Warnf("websocket write failed: %v", err)
		return nil
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "settled"))
	return nil
}
