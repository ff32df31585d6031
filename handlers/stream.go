// ABOUTME: Websocket endpoint feeding the live metrics stream
// ABOUTME: Registers connections with the hub and reaps them on disconnect

package handlers

import (
	"log/slog"
	"net/http"
)

// maxKeepaliveBytes caps inbound frames; clients only send keepalives.
const maxKeepaliveBytes = 512

// Stream upgrades the connection and registers it with the hub. The server
// pushes metrics_update events at scenario step cadence; inbound messages are
// keepalives whose content is ignored. Transport closure removes the
// subscriber.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}

	sub := h.hub.Register(conn)
	defer func() {
		h.hub.Unregister(sub)
		conn.Close()
	}()

	conn.SetReadLimit(maxKeepaliveBytes)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
