// internal/models/room.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the stage a room is currently in. Rooms cycle
// lobby -> writing -> drawing -> (writing | results), and return to lobby
// only on an explicit reset.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhaseWriting Phase = "writing"
	PhaseDrawing Phase = "drawing"
	PhaseResults Phase = "results"
)

// DefaultMaxRounds is applied to newly created rooms.
const DefaultMaxRounds = 3

// Sentence is one player's text submission for a writing round. Entries are
// append-only and never mutated after creation.
type Sentence struct {
	AuthorID uuid.UUID `json:"authorId"`
	Text     string    `json:"text"`
	Round    int       `json:"round"`
}

// Drawing is one player's image submission for a drawing round. The image is
// an opaque payload (typically base64) the server never inspects.
type Drawing struct {
	AuthorID uuid.UUID `json:"authorId"`
	Image    string    `json:"image"`
	Round    int       `json:"round"`
}

// Presentation tracks the host-driven results walkthrough. It is only
// meaningful while the room is in the results phase.
type Presentation struct {
	Active       bool `json:"active"`
	CurrentIndex int  `json:"currentIndex"`
}

// Room is the authoritative record for one game session. All mutation happens
// on the coordinator goroutine; the struct itself carries no lock.
type Room struct {
	ID           uuid.UUID    `json:"id"`
	Code         string       `json:"code"`
	Players      []*Player    `json:"players"` // insertion order = join order
	Phase        Phase        `json:"phase"`
	CurrentRound int          `json:"currentRound"`
	MaxRounds    int          `json:"maxRounds"`
	CreatedAt    time.Time    `json:"createdAt"`
	Locked       bool         `json:"locked"`
	Sentences    []Sentence   `json:"sentences"`
	Drawings     []Drawing    `json:"drawings"`
	Presentation Presentation `json:"presentation"`
}

// NewRoom builds a lobby-phase room hosted by the given player.
func NewRoom(code string, host *Player) *Room {
	host.IsHost = true
	return &Room{
		ID:        uuid.New(),
		Code:      code,
		Players:   []*Player{host},
		Phase:     PhaseLobby,
		MaxRounds: DefaultMaxRounds,
		CreatedAt: time.Now(),
	}
}

// Player returns the member with the given id, or nil.
func (r *Room) Player(id uuid.UUID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Host returns the current host player, or nil for an empty room.
func (r *Room) Host() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// AddPlayer appends a non-host member.
func (r *Room) AddPlayer(p *Player) {
	r.Players = append(r.Players, p)
}

// RemovePlayer drops the member with the given id, preserving join order.
// If the removed player was the host and members remain, the earliest-joined
// remaining player becomes host. Returns the removed player, or nil if the id
// was not a member.
func (r *Room) RemovePlayer(id uuid.UUID) *Player {
	for i, p := range r.Players {
		if p.ID != id {
			continue
		}
		r.Players = append(r.Players[:i], r.Players[i+1:]...)
		if p.IsHost && len(r.Players) > 0 {
			r.Players[0].IsHost = true
		}
		return p
	}
	return nil
}

// SentenceCount reports how many sentences are tagged with the given round.
func (r *Room) SentenceCount(round int) int {
	n := 0
	for _, s := range r.Sentences {
		if s.Round == round {
			n++
		}
	}
	return n
}

// DrawingCount reports how many drawings are tagged with the given round.
func (r *Room) DrawingCount(round int) int {
	n := 0
	for _, d := range r.Drawings {
		if d.Round == round {
			n++
		}
	}
	return n
}

// AllReady reports whether every member has readied up.
func (r *Room) AllReady() bool {
	for _, p := range r.Players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// Reset returns the room to a fresh lobby: round zero, submissions and
// presentation cleared, all ready flags down. Host assignment is untouched.
func (r *Room) Reset() {
	r.Phase = PhaseLobby
	r.CurrentRound = 0
	r.Sentences = nil
	r.Drawings = nil
	r.Presentation = Presentation{}
	for _, p := range r.Players {
		p.IsReady = false
	}
}
