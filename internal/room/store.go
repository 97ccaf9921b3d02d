// internal/room/store.go
package room

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sketchchain/sketchchain/internal/models"
)

// Store manages active ephemeral rooms in memory. It is the sole owner of all
// room records; no other component retains authoritative state. The event
// coordinator is the only mutator, but the store still guards its map so that
// read-only HTTP surfaces can inspect it safely.
type Store struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*models.Room
}

// Summary is the discovery projection of a lobby-phase room.
type Summary struct {
	Code        string `json:"code"`
	PlayerCount int    `json:"playerCount"`
	Locked      bool   `json:"locked"`
}

// NewStore initializes and returns an empty Store.
func NewStore() *Store {
	return &Store{
		rooms: make(map[uuid.UUID]*models.Room),
	}
}

// Add inserts a room. The caller guarantees id uniqueness (ids are freshly
// generated uuids, so an existing entry would indicate a bug upstream).
func (s *Store) Add(r *models.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = r
}

// Delete removes a room by id. Deleting an absent id is a no-op.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}

// Get retrieves a room by its internal id.
func (s *Store) Get(id uuid.UUID) (*models.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	return r, ok
}

// FindByCode returns the room with the given join code, if any. A linear scan
// is fine at the expected scale (tens to low hundreds of rooms).
func (s *Store) FindByCode(code string) (*models.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.Code == code {
			return r, true
		}
	}
	return nil, false
}

// FindByPlayer returns the room containing the given player id, along with
// the player record. A player is in at most one room, so the first match is
// the only match.
func (s *Store) FindByPlayer(playerID uuid.UUID) (*models.Room, *models.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if p := r.Player(playerID); p != nil {
			return r, p, true
		}
	}
	return nil, nil, false
}

// ListLobbyRooms returns discovery summaries for every room still in the
// lobby phase, oldest first for stable output.
func (s *Store) ListLobbyRooms() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	lobbies := make([]*models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		if r.Phase == models.PhaseLobby {
			lobbies = append(lobbies, r)
		}
	}
	sort.Slice(lobbies, func(i, j int) bool {
		return lobbies[i].CreatedAt.Before(lobbies[j].CreatedAt)
	})

	out := make([]Summary, 0, len(lobbies))
	for _, r := range lobbies {
		out = append(out, Summary{
			Code:        r.Code,
			PlayerCount: len(r.Players),
			Locked:      r.Locked,
		})
	}
	return out
}

// Len reports the number of active rooms.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
