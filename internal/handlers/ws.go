// internal/handlers/ws.go
package handlers

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sketchchain/sketchchain/internal/game"
	"github.com/sketchchain/sketchchain/internal/transport"
)

// WSHandler upgrades the connection and runs its pumps until the client goes
// away. Each accepted socket gets a fresh connection id; that id is the
// player identity for the lifetime of the connection.
func WSHandler(logger *logrus.Logger, hub *transport.Hub, coord *game.Coordinator, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"sketchchain"},
			OriginPatterns: originPatterns,
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer ws.Close(websocket.StatusInternalError, "handler finished")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		conn := transport.NewConn(uuid.New(), cancel, logger)
		hub.Add(conn)
		logger.WithFields(logrus.Fields{
			"conn":   conn.ID,
			"remote": r.RemoteAddr,
		}).Info("websocket connected")

		// Blocks until the peer disconnects or the context ends; Serve
		// routes the disconnect into the coordinator for room cleanup.
		hub.Serve(ctx, ws, conn, coord)

		logger.WithFields(logrus.Fields{
			"conn":   conn.ID,
			"remote": r.RemoteAddr,
		}).Info("websocket disconnected")
		ws.Close(websocket.StatusNormalClosure, "")
	}
}
