// internal/transport/hub.go
package transport

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Hub tracks every live connection and the room groups they belong to. It is
// the concrete Emitter behind the coordinator: unicast, room multicast, and
// broadcast-all, each fire-and-forget through the per-connection channels.
type Hub struct {
	mu     sync.Mutex
	conns  map[uuid.UUID]*Conn
	groups map[uuid.UUID]map[uuid.UUID]*Conn // roomID -> connID -> conn
	log    *logrus.Logger
}

// NewHub initializes an empty hub.
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		conns:  make(map[uuid.UUID]*Conn),
		groups: make(map[uuid.UUID]map[uuid.UUID]*Conn),
		log:    log,
	}
}

// Add registers a connection.
func (h *Hub) Add(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.ID] = c
}

// Remove drops a connection from the hub and every group, and cancels its
// pumps. Removing an unknown id is a no-op.
func (h *Hub) Remove(id uuid.UUID) {
	h.mu.Lock()
	c, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
	}
	for roomID, members := range h.groups {
		delete(members, id)
		if len(members) == 0 {
			delete(h.groups, roomID)
		}
	}
	h.mu.Unlock()

	if ok && c.cancel != nil {
		c.cancel()
	}
}

// ConnIDs lists the ids of all live connections, for the status surface.
func (h *Hub) ConnIDs() []uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	return ids
}

// JoinGroup adds a connection to a room's broadcast group.
func (h *Hub) JoinGroup(connID, roomID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.conns[connID]
	if !ok {
		return
	}
	members, ok := h.groups[roomID]
	if !ok {
		members = make(map[uuid.UUID]*Conn)
		h.groups[roomID] = members
	}
	members[connID] = c
}

// LeaveGroup removes a connection from a room's broadcast group.
func (h *Hub) LeaveGroup(connID, roomID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[roomID]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.groups, roomID)
	}
}

// encodeFrame serializes an outbound envelope on the calling goroutine.
// Emitting immutable bytes, not live payload pointers, is what keeps the
// write pumps from reading room state the coordinator may mutate next.
func (h *Hub) encodeFrame(event string, data interface{}) ([]byte, bool) {
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.log.Warnf("marshal outbound event %q: %v", event, err)
		return nil, false
	}
	return frame, true
}

// ToConn sends an event to a single connection, if it is still live.
func (h *Hub) ToConn(connID uuid.UUID, event string, data interface{}) {
	frame, ok := h.encodeFrame(event, data)
	if !ok {
		return
	}
	h.mu.Lock()
	c, live := h.conns[connID]
	h.mu.Unlock()
	if !live {
		return
	}
	c.enqueue(event, frame)
}

// ToRoom sends an event to every member of a room's group. The payload is
// encoded once, before fan-out.
func (h *Hub) ToRoom(roomID uuid.UUID, event string, data interface{}) {
	frame, ok := h.encodeFrame(event, data)
	if !ok {
		return
	}
	h.mu.Lock()
	members := make([]*Conn, 0, len(h.groups[roomID]))
	for _, c := range h.groups[roomID] {
		members = append(members, c)
	}
	h.mu.Unlock()

	for _, c := range members {
		c.enqueue(event, frame)
	}
}

// ToAll sends an event to every live connection.
func (h *Hub) ToAll(event string, data interface{}) {
	frame, ok := h.encodeFrame(event, data)
	if !ok {
		return
	}
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.enqueue(event, frame)
	}
}
