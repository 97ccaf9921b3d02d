package models

import "github.com/google/uuid"

// Player is a participant in a room. The ID is the connection-scoped
// identifier assigned by the transport when the client connected; it is only
// meaningful for the lifetime of that connection.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Nickname string    `json:"nickname"`
	Avatar   string    `json:"avatar"`
	IsHost   bool      `json:"isHost"`
	IsReady  bool      `json:"isReady"`
}
