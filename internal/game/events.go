// internal/game/events.go
package game

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Inbound event names. These are the verbs clients send over the wire.
const (
	EventCreateRoom         = "create-room"
	EventJoinRoom           = "join-room"
	EventLeaveRoom          = "leave-room"
	EventToggleReady        = "toggle-ready"
	EventStartGame          = "start-game"
	EventSubmitSentence     = "submit-sentence"
	EventSubmitDrawing      = "submit-drawing"
	EventUpdateRoomSettings = "update-room-settings"
	EventKickPlayer         = "kick-player"
	EventToggleRoomLock     = "toggle-room-lock"
	EventStartPresentation  = "start-presentation"
	EventShowResult         = "show-result"
	EventEndPresentation    = "end-presentation"
	EventResetGame          = "reset-game"
	EventGetActiveRooms     = "get-active-rooms"

	// eventDisconnect is synthesized by the transport when a connection
	// drops; clients never send it.
	eventDisconnect = "disconnect"
)

// Outbound event names.
const (
	EventRoomCreated         = "room-created"
	EventRoomJoined          = "room-joined"
	EventPlayerJoined        = "player-joined"
	EventPlayerLeft          = "player-left"
	EventRoomUpdated         = "room-updated"
	EventGameStarted         = "game-started"
	EventPhaseChanged        = "phase-changed"
	EventPlayerKicked        = "player-kicked"
	EventRoomLockChanged     = "room-lock-changed"
	EventPresentationStarted = "presentation-started"
	EventResultChanged       = "result-changed"
	EventPresentationEnded   = "presentation-ended"
	EventGameReset           = "game-reset"
	EventActiveRooms         = "active-rooms"
	EventError               = "error"
)

// Message is one inbound (connection, event, payload) tuple. The transport
// enqueues these; the coordinator consumes them strictly in arrival order.
type Message struct {
	ConnID uuid.UUID
	Event  string
	Data   json.RawMessage
}

// Emitter is the outbound side of the transport: unicast to a connection,
// multicast to a room's group, or broadcast to every connection. Deliveries
// are fire-and-forget; an unreachable recipient is simply skipped.
type Emitter interface {
	ToConn(connID uuid.UUID, event string, data interface{})
	ToRoom(roomID uuid.UUID, event string, data interface{})
	ToAll(event string, data interface{})
	JoinGroup(connID, roomID uuid.UUID)
	LeaveGroup(connID, roomID uuid.UUID)
}

type createRoomPayload struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

type joinRoomPayload struct {
	Code     string `json:"code"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

type submitSentencePayload struct {
	Text string `json:"text"`
}

type submitDrawingPayload struct {
	Image string `json:"image"`
}

type updateSettingsPayload struct {
	MaxRounds *int `json:"maxRounds"`
}

type kickPlayerPayload struct {
	PlayerID uuid.UUID `json:"playerId"`
}

type showResultPayload struct {
	Index int `json:"index"`
}
