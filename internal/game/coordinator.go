// internal/game/coordinator.go
package game

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sketchchain/sketchchain/internal/models"
	"github.com/sketchchain/sketchchain/internal/room"
)

const inboundQueueSize = 256

// Coordinator is the protocol layer: it consumes inbound events one at a
// time, validates them against current room state, mutates the room store,
// and emits outbound events to the affected audience. A single goroutine
// (Run) owns all mutation, so handlers never contend for room records and a
// validate-mutate-broadcast sequence always runs to completion before the
// next event is touched.
type Coordinator struct {
	store   *room.Store
	emit    Emitter
	log     *logrus.Logger
	inbound chan Message
}

// NewCoordinator wires a coordinator to its store and transport. Call Run on
// a dedicated goroutine before submitting events.
func NewCoordinator(store *room.Store, emit Emitter, log *logrus.Logger) *Coordinator {
	return &Coordinator{
		store:   store,
		emit:    emit,
		log:     log,
		inbound: make(chan Message, inboundQueueSize),
	}
}

// Submit enqueues an inbound event for processing. It blocks if the queue is
// full, which back-pressures the submitting read pump rather than dropping
// client events.
func (c *Coordinator) Submit(msg Message) {
	c.inbound <- msg
}

// Disconnect enqueues the transport-level disconnect for a connection. Its
// effect is identical to an explicit leave-room.
func (c *Coordinator) Disconnect(connID uuid.UUID) {
	c.Submit(Message{ConnID: connID, Event: eventDisconnect})
}

// Run processes inbound events strictly in arrival order until the context
// is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.inbound:
			c.dispatch(msg)
		}
	}
}

// dispatch handles one event and translates any failure into an error event
// to the originating connection. Panics are contained here: an internal fault
// must never take down the process or the connection.
func (c *Coordinator) dispatch(msg Message) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithFields(logrus.Fields{
				"event": msg.Event,
				"conn":  msg.ConnID,
			}).Errorf("panic while handling event: %v", r)
			if msg.Event != eventDisconnect {
				c.emit.ToConn(msg.ConnID, EventError, errorPayload("internal server error"))
			}
		}
	}()

	err := c.handle(msg)
	if err == nil {
		return
	}

	var verr *Error
	if errors.As(err, &verr) {
		c.log.WithFields(logrus.Fields{
			"event": msg.Event,
			"conn":  msg.ConnID,
		}).Debugf("rejected: %s", verr.Message)
	} else {
		c.log.WithFields(logrus.Fields{
			"event": msg.Event,
			"conn":  msg.ConnID,
		}).Warnf("handler error: %v", err)
	}

	if msg.Event == eventDisconnect {
		// Nobody left to notify.
		return
	}
	c.emit.ToConn(msg.ConnID, EventError, errorPayload(err.Error()))
}

func (c *Coordinator) handle(msg Message) error {
	switch msg.Event {
	case EventCreateRoom:
		return c.handleCreateRoom(msg)
	case EventJoinRoom:
		return c.handleJoinRoom(msg)
	case EventLeaveRoom, eventDisconnect:
		return c.handleLeaveRoom(msg.ConnID)
	case EventToggleReady:
		return c.handleToggleReady(msg.ConnID)
	case EventStartGame:
		return c.handleStartGame(msg.ConnID)
	case EventSubmitSentence:
		return c.handleSubmitSentence(msg)
	case EventSubmitDrawing:
		return c.handleSubmitDrawing(msg)
	case EventUpdateRoomSettings:
		return c.handleUpdateSettings(msg)
	case EventKickPlayer:
		return c.handleKickPlayer(msg)
	case EventToggleRoomLock:
		return c.handleToggleLock(msg.ConnID)
	case EventStartPresentation:
		return c.handleStartPresentation(msg.ConnID)
	case EventShowResult:
		return c.handleShowResult(msg)
	case EventEndPresentation:
		return c.handleEndPresentation(msg.ConnID)
	case EventResetGame:
		return c.handleResetGame(msg.ConnID)
	case EventGetActiveRooms:
		return c.handleGetActiveRooms(msg.ConnID)
	default:
		return notFound("unknown event %q", msg.Event)
	}
}

func (c *Coordinator) handleCreateRoom(msg Message) error {
	var payload createRoomPayload
	if err := decode(msg.Data, &payload); err != nil {
		return err
	}

	host := &models.Player{
		ID:       msg.ConnID,
		Nickname: payload.Nickname,
		Avatar:   payload.Avatar,
	}
	r := models.NewRoom(c.store.NewUniqueCode(), host)
	c.store.Add(r)

	c.emit.JoinGroup(msg.ConnID, r.ID)
	c.emit.ToConn(msg.ConnID, EventRoomCreated, roomPayload(r))
	c.broadcastRoomList()

	c.log.WithFields(logrus.Fields{
		"room": r.ID,
		"code": r.Code,
		"host": msg.ConnID,
	}).Info("room created")
	return nil
}

func (c *Coordinator) handleJoinRoom(msg Message) error {
	var payload joinRoomPayload
	if err := decode(msg.Data, &payload); err != nil {
		return err
	}

	r, ok := c.store.FindByCode(strings.ToUpper(payload.Code))
	if !ok {
		return notFound("room %s not found", payload.Code)
	}
	if r.Locked {
		return forbidden("room %s is locked", r.Code)
	}
	if r.Phase != models.PhaseLobby {
		return invalidPhase("game already started in room %s", r.Code)
	}

	p := &models.Player{
		ID:       msg.ConnID,
		Nickname: payload.Nickname,
		Avatar:   payload.Avatar,
	}
	r.AddPlayer(p)

	c.emit.JoinGroup(msg.ConnID, r.ID)
	c.emit.ToConn(msg.ConnID, EventRoomJoined, roomPayload(r))
	c.emit.ToRoom(r.ID, EventPlayerJoined, map[string]interface{}{
		"room":   r,
		"player": p,
	})
	c.broadcastRoomList()
	return nil
}

// handleLeaveRoom serves both the explicit leave-room event and transport
// disconnects. Leaving while in no room is a silent no-op.
func (c *Coordinator) handleLeaveRoom(connID uuid.UUID) error {
	r, _, ok := c.store.FindByPlayer(connID)
	if !ok {
		return nil
	}

	r.RemovePlayer(connID)
	c.emit.LeaveGroup(connID, r.ID)

	if len(r.Players) == 0 {
		c.store.Delete(r.ID)
		c.log.WithFields(logrus.Fields{"room": r.ID, "code": r.Code}).Info("room emptied, deleted")
	} else {
		c.emit.ToRoom(r.ID, EventPlayerLeft, map[string]interface{}{
			"room":     r,
			"playerId": connID,
		})
	}
	c.broadcastRoomList()
	return nil
}

func (c *Coordinator) handleToggleReady(connID uuid.UUID) error {
	r, p, err := c.callerRoom(connID)
	if err != nil {
		return err
	}
	p.IsReady = !p.IsReady
	c.emit.ToRoom(r.ID, EventRoomUpdated, roomPayload(r))
	return nil
}

func (c *Coordinator) handleStartGame(connID uuid.UUID) error {
	r, _, err := c.hostRoom(connID)
	if err != nil {
		return err
	}
	if r.Phase != models.PhaseLobby {
		return invalidPhase("game already started")
	}
	if len(r.Players) < 2 {
		return preconditionFailed("need at least 2 players to start")
	}
	if !r.AllReady() {
		return preconditionFailed("not all players are ready")
	}

	r.Phase = models.PhaseWriting
	r.CurrentRound = 1

	c.emit.ToRoom(r.ID, EventGameStarted, roomPayload(r))
	c.broadcastRoomList()

	c.log.WithFields(logrus.Fields{
		"room":    r.ID,
		"code":    r.Code,
		"players": len(r.Players),
	}).Info("game started")
	return nil
}

func (c *Coordinator) handleSubmitSentence(msg Message) error {
	var payload submitSentencePayload
	if err := decode(msg.Data, &payload); err != nil {
		return err
	}
	r, p, err := c.callerRoom(msg.ConnID)
	if err != nil {
		return err
	}
	if r.Phase != models.PhaseWriting {
		return invalidPhase("sentences can only be submitted during the writing phase")
	}

	r.Sentences = append(r.Sentences, models.Sentence{
		AuthorID: p.ID,
		Text:     payload.Text,
		Round:    r.CurrentRound,
	})

	if r.SentenceCount(r.CurrentRound) >= len(r.Players) {
		r.Phase = models.PhaseDrawing
		c.emit.ToRoom(r.ID, EventPhaseChanged, phasePayload(r))
	}
	c.emit.ToRoom(r.ID, EventRoomUpdated, roomPayload(r))
	return nil
}

func (c *Coordinator) handleSubmitDrawing(msg Message) error {
	var payload submitDrawingPayload
	if err := decode(msg.Data, &payload); err != nil {
		return err
	}
	r, p, err := c.callerRoom(msg.ConnID)
	if err != nil {
		return err
	}
	if r.Phase != models.PhaseDrawing {
		return invalidPhase("drawings can only be submitted during the drawing phase")
	}

	r.Drawings = append(r.Drawings, models.Drawing{
		AuthorID: p.ID,
		Image:    payload.Image,
		Round:    r.CurrentRound,
	})

	if r.DrawingCount(r.CurrentRound) >= len(r.Players) {
		if r.CurrentRound >= r.MaxRounds {
			r.Phase = models.PhaseResults
		} else {
			r.CurrentRound++
			r.Phase = models.PhaseWriting
		}
		c.emit.ToRoom(r.ID, EventPhaseChanged, phasePayload(r))
	}
	c.emit.ToRoom(r.ID, EventRoomUpdated, roomPayload(r))
	return nil
}

func (c *Coordinator) handleUpdateSettings(msg Message) error {
	var payload updateSettingsPayload
	if err := decode(msg.Data, &payload); err != nil {
		return err
	}
	r, _, err := c.hostRoom(msg.ConnID)
	if err != nil {
		return err
	}

	// maxRounds may legally drop below the current round mid-game; the next
	// completed drawing round then goes straight to results.
	if payload.MaxRounds != nil {
		if *payload.MaxRounds < 1 {
			return preconditionFailed("maxRounds must be positive")
		}
		r.MaxRounds = *payload.MaxRounds
	}

	c.emit.ToRoom(r.ID, EventRoomUpdated, roomPayload(r))
	return nil
}

func (c *Coordinator) handleKickPlayer(msg Message) error {
	var payload kickPlayerPayload
	if err := decode(msg.Data, &payload); err != nil {
		return err
	}
	r, host, err := c.hostRoom(msg.ConnID)
	if err != nil {
		return err
	}
	if payload.PlayerID == host.ID {
		return forbidden("you cannot kick yourself")
	}
	target := r.Player(payload.PlayerID)
	if target == nil {
		return notFound("player not found in room")
	}

	r.RemovePlayer(target.ID)
	c.emit.ToConn(target.ID, EventPlayerKicked, map[string]interface{}{
		"roomCode": r.Code,
	})
	c.emit.LeaveGroup(target.ID, r.ID)
	c.emit.ToRoom(r.ID, EventPlayerLeft, map[string]interface{}{
		"room":     r,
		"playerId": target.ID,
	})
	c.broadcastRoomList()

	c.log.WithFields(logrus.Fields{
		"room":   r.ID,
		"target": target.ID,
		"host":   host.ID,
	}).Info("player kicked")
	return nil
}

func (c *Coordinator) handleToggleLock(connID uuid.UUID) error {
	r, _, err := c.hostRoom(connID)
	if err != nil {
		return err
	}
	r.Locked = !r.Locked
	c.emit.ToRoom(r.ID, EventRoomLockChanged, map[string]interface{}{
		"room":   r,
		"locked": r.Locked,
	})
	c.broadcastRoomList()
	return nil
}

func (c *Coordinator) handleStartPresentation(connID uuid.UUID) error {
	r, _, err := c.hostRoom(connID)
	if err != nil {
		return err
	}
	if r.Phase != models.PhaseResults {
		return invalidPhase("presentation is only available in the results phase")
	}
	r.Presentation = models.Presentation{Active: true, CurrentIndex: 0}
	c.emit.ToRoom(r.ID, EventPresentationStarted, roomPayload(r))
	return nil
}

func (c *Coordinator) handleShowResult(msg Message) error {
	var payload showResultPayload
	if err := decode(msg.Data, &payload); err != nil {
		return err
	}
	r, _, err := c.hostRoom(msg.ConnID)
	if err != nil {
		return err
	}
	if r.Phase != models.PhaseResults {
		return invalidPhase("presentation is only available in the results phase")
	}
	if !r.Presentation.Active {
		return preconditionFailed("presentation is not active")
	}

	// The index is deliberately not checked against the number of results;
	// the presenting client owns that bound.
	r.Presentation.CurrentIndex = payload.Index
	c.emit.ToRoom(r.ID, EventResultChanged, map[string]interface{}{
		"room":  r,
		"index": payload.Index,
	})
	return nil
}

func (c *Coordinator) handleEndPresentation(connID uuid.UUID) error {
	r, _, err := c.hostRoom(connID)
	if err != nil {
		return err
	}
	if r.Phase != models.PhaseResults {
		return invalidPhase("presentation is only available in the results phase")
	}
	if !r.Presentation.Active {
		return preconditionFailed("presentation is not active")
	}
	r.Presentation = models.Presentation{}
	c.emit.ToRoom(r.ID, EventPresentationEnded, roomPayload(r))
	return nil
}

func (c *Coordinator) handleResetGame(connID uuid.UUID) error {
	r, _, err := c.hostRoom(connID)
	if err != nil {
		return err
	}
	r.Reset()
	c.emit.ToRoom(r.ID, EventGameReset, roomPayload(r))
	c.broadcastRoomList()
	return nil
}

func (c *Coordinator) handleGetActiveRooms(connID uuid.UUID) error {
	c.emit.ToConn(connID, EventActiveRooms, map[string]interface{}{
		"rooms": c.store.ListLobbyRooms(),
	})
	return nil
}

// callerRoom resolves the room containing the calling connection.
func (c *Coordinator) callerRoom(connID uuid.UUID) (*models.Room, *models.Player, error) {
	r, p, ok := c.store.FindByPlayer(connID)
	if !ok {
		return nil, nil, notFound("you are not in a room")
	}
	return r, p, nil
}

// hostRoom resolves the caller's room and requires the caller to be its
// current host. The check runs against the live player record, never a role
// cached at connect time, so host reassignment takes effect immediately.
func (c *Coordinator) hostRoom(connID uuid.UUID) (*models.Room, *models.Player, error) {
	r, p, err := c.callerRoom(connID)
	if err != nil {
		return nil, nil, err
	}
	if !p.IsHost {
		return nil, nil, forbidden("only the host can do that")
	}
	return r, p, nil
}

// broadcastRoomList pushes the lobby listing to every connection, keeping
// each client's discovery view live.
func (c *Coordinator) broadcastRoomList() {
	c.emit.ToAll(EventActiveRooms, map[string]interface{}{
		"rooms": c.store.ListLobbyRooms(),
	})
}
