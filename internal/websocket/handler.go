package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// Handler upgrades connections to WebSocket and runs them as Hub clients.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // the page may be opened through any host name
		})
		if err != nil {
			hub.logger.Warn("WebSocket accept failed", "error", err)
			return
		}

		NewClient(hub, conn).Run(r.Context())
	}
}
