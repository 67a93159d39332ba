package websocket

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
)

// ErrHubStopped is returned when a connection arrives after shutdown began.
var ErrHubStopped = errors.New("event hub stopped")

func (h *Hub) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Serve upgrades the request and subscribes the connection to the events of
// programmeID. On upgrade failure a response has already been written.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, programmeID int64) error {
	conn, err := h.upgrader().Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Int64("programmeID", programmeID).Msg("Failed to upgrade connection to WebSocket")
		return err
	}

	client := &Client{
		hub:         h,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		programmeID: programmeID,
		logger:      h.logger,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return ErrHubStopped
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("programmeID", programmeID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
	return nil
}
