// internal/transport/conn.go
package transport

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const outChanSize = 32

// Envelope is the wire frame for both directions: an event name plus an
// arbitrary JSON payload.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Conn is the hub's handle on one client connection: an id and a buffered
// outbound channel drained by the connection's write pump. The channel
// carries fully encoded frames only — payloads are serialized by the emitting
// goroutine, so the pump never reads shared room state.
type Conn struct {
	ID     uuid.UUID
	out    chan []byte
	cancel context.CancelFunc
	log    *logrus.Logger
}

// NewConn builds a connection handle. cancel tears down the connection's
// pumps when the hub removes it.
func NewConn(id uuid.UUID, cancel context.CancelFunc, log *logrus.Logger) *Conn {
	return &Conn{
		ID:     id,
		out:    make(chan []byte, outChanSize),
		cancel: cancel,
		log:    log,
	}
}

// enqueue pushes an encoded frame onto the outbound channel without
// blocking. Delivery is fire-and-forget: if the channel is full the frame is
// dropped and logged, never retried. The event name is only for the drop log.
func (c *Conn) enqueue(event string, frame []byte) {
	select {
	case c.out <- frame:
	default:
		c.log.WithFields(logrus.Fields{
			"conn":  c.ID,
			"event": event,
		}).Warn("outbound channel full, dropping event")
	}
}
