package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mtlprog/catpage/internal/handler/dto"
	"github.com/mtlprog/catpage/internal/page"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// streamBuffer bounds the updates queued for a slow client; older
	// updates are dropped because each message is a full state document.
	streamBuffer = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleStateStream pushes the page state to the client on every change.
// @Summary Stream page state
// @Description WebSocket that sends the current state on connect and again after every mutation
// @Tags page
// @Success 101 {object} dto.StateResponse
// @Router /state/ws [get]
func (h *Handler) handleStateStream(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	ctx := r.Context()
	initial, err := h.pageService.View(ctx, sid)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("failed to close websocket", "error", err)
		}
	}()

	updates := make(chan page.View, streamBuffer)
	unsubscribe, err := h.pageService.Subscribe(ctx, sid, func(v page.View) {
		select {
		case updates <- v:
		default:
			// Drop the oldest queued view to make room for the newest.
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- v:
			default:
			}
		}
	})
	if err != nil {
		slog.Error("failed to subscribe to page state", "session_id", sid, "error", err)
		return
	}
	defer unsubscribe()

	closed := make(chan struct{})
	go readPump(conn, closed)

	if err := writeState(conn, initial); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case v := <-updates:
			if err := writeState(conn, v); err != nil {
				slog.Debug("state stream write failed", "session_id", sid, "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages and closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeState(conn *websocket.Conn, v page.View) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(dto.ToStateResponse(v))
}
