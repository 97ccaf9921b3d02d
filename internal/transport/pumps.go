// internal/transport/pumps.go
package transport

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/sketchchain/sketchchain/internal/game"
)

const (
	pingInterval = 30 * time.Second
	writeTimeout = 5 * time.Second
	pingTimeout  = 15 * time.Second
)

// Receiver is the inbound side of the coordinator: the hub feeds it decoded
// client events and disconnect notifications.
type Receiver interface {
	Submit(msg game.Message)
	Disconnect(connID uuid.UUID)
}

type inboundEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Serve runs the read and write pumps for one accepted websocket until the
// peer goes away, then funnels the disconnect into the coordinator and drops
// the connection from the hub.
func (h *Hub) Serve(ctx context.Context, ws *websocket.Conn, c *Conn, recv Receiver) {
	go h.writePump(ctx, ws, c)
	h.readPump(ctx, ws, c, recv)

	recv.Disconnect(c.ID)
	h.Remove(c.ID)
}

// readPump decodes inbound envelopes and hands them to the receiver in
// arrival order. Any read error ends the connection.
func (h *Hub) readPump(ctx context.Context, ws *websocket.Conn, c *Conn, recv Receiver) {
	for {
		typ, data, err := ws.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				h.log.WithField("conn", c.ID).Info("websocket closed")
			} else if ctx.Err() == nil {
				h.log.WithField("conn", c.ID).Warnf("read error: %v", err)
			}
			return
		}
		if typ != websocket.MessageText {
			h.log.WithField("conn", c.ID).Warnf("ignoring non-text message type %d", typ)
			continue
		}

		var env inboundEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.log.WithField("conn", c.ID).Warnf("invalid json frame: %v", err)
			if frame, ok := h.encodeFrame(game.EventError, map[string]interface{}{
				"message": "invalid JSON frame",
			}); ok {
				c.enqueue(game.EventError, frame)
			}
			continue
		}

		recv.Submit(game.Message{ConnID: c.ID, Event: env.Event, Data: env.Data})
	}
}

// writePump drains the connection's outbound channel onto the socket and
// pings periodically so dead peers surface as read errors. Frames arrive
// fully encoded; the pump only moves bytes.
func (h *Hub) writePump(ctx context.Context, ws *websocket.Conn, c *Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-c.out:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := ws.Write(writeCtx, websocket.MessageText, frame)
			cancel()
			if err != nil {
				h.log.WithField("conn", c.ID).Warnf("write failed: %v", err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := ws.Ping(pingCtx)
			cancel()
			if err != nil {
				h.log.WithField("conn", c.ID).Warnf("ping failed, assuming disconnect: %v", err)
				return
			}
		}
	}
}
