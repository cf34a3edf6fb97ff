package session

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/naiplawan/kaichid-sub001/internal/profile"
)

type service struct {
	profiles profile.Service
	bc       Broadcaster
	store    *roomStore
	reg      *registry
}

// NewService builds a coordinator with an empty room table. Store and
// registry are owned by the instance, so every test gets its own world.
func NewService(profiles profile.Service, bc Broadcaster) Service {
	return &service{
		profiles: profiles,
		bc:       bc,
		store:    newRoomStore(),
		reg:      newRegistry(),
	}
}

// withRoom runs fn under the room's lock. A missing or torn-down room is
// ErrRoomNotFound, never a panic or an internal error. fn may publish:
// Publish is a non-blocking enqueue, and holding the lock across it is
// exactly what gives the room a single total event order.
func (s *service) withRoom(code string, fn func(r *room) error) error {
	r, ok := s.store.get(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return ErrRoomNotFound
	}
	return fn(r)
}

func (s *service) JoinRoom(ctx context.Context, connID, roomCode, userID string) error {
	// Resolve identity before touching any room lock; the lookup may
	// suspend on the network. A failed lookup rejects the join outright,
	// never a placeholder identity.
	name, err := s.profiles.DisplayName(ctx, userID)
	if err != nil {
		zap.L().Warn("session.join_lookup_failed",
			zap.String("room", roomCode), zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	// One membership per connection: joining somewhere else leaves the
	// old room first.
	if b, ok := s.reg.lookup(connID); ok && (b.roomCode != roomCode || b.userID != userID) {
		s.reg.unbind(connID)
		s.leave(connID, b)
	}

	p := Player{ID: userID, DisplayName: name}
	for {
		r := s.store.getOrCreate(roomCode)
		r.mu.Lock()
		if r.gone {
			// Lost a race against teardown; the code now maps to nothing,
			// so create a fresh room.
			r.mu.Unlock()
			continue
		}
		r.addPlayer(p, connID)
		s.reg.bind(connID, userID, roomCode)
		s.bc.Subscribe(roomCode, connID)
		s.bc.Publish(roomCode, EventUpdatePlayers, PlayersPayload{Players: r.playerList()})
		r.mu.Unlock()
		return nil
	}
}

func (s *service) StartGame(_ context.Context, roomCode string) error {
	return s.withRoom(roomCode, func(r *room) error {
		if r.status != StatusNotStarted {
			return ErrAlreadyStarted
		}
		if len(r.players) == 0 {
			return ErrEmptyRoom
		}
		r.status = StatusInProgress
		r.currentTurn = r.players[0].player.ID
		s.bc.Publish(r.code, EventGameStarted, nil)
		s.bc.Publish(r.code, EventNextTurn, TurnPayload{PlayerID: r.currentTurn})
		return nil
	})
}

func (s *service) AssignTurn(_ context.Context, roomCode, playerID string) error {
	return s.setTurn(roomCode, playerID)
}

func (s *service) AdvanceTurn(_ context.Context, roomCode, nextPlayerID string) error {
	return s.setTurn(roomCode, nextPlayerID)
}

func (s *service) setTurn(roomCode, playerID string) error {
	return s.withRoom(roomCode, func(r *room) error {
		if r.status != StatusInProgress {
			return ErrNotStarted
		}
		if !r.isMember(playerID) {
			return ErrInvalidPlayer
		}
		r.currentTurn = playerID
		s.bc.Publish(r.code, EventNextTurn, TurnPayload{PlayerID: playerID})
		return nil
	})
}

func (s *service) SendResponse(_ context.Context, roomCode string, player Player, message string) error {
	return s.withRoom(roomCode, func(r *room) error {
		s.bc.Publish(r.code, EventPlayerResponse, ResponsePayload{Player: player, Message: message})
		return nil
	})
}

func (s *service) EndGame(_ context.Context, roomCode string) error {
	return s.withRoom(roomCode, func(r *room) error {
		r.status = StatusEnded
		r.currentTurn = ""
		s.bc.Publish(r.code, EventGameOver, nil)
		r.gone = true
		s.store.remove(r.code)
		s.bc.CloseRoom(r.code)
		return nil
	})
}

func (s *service) Disconnect(connID string) {
	b, ok := s.reg.unbind(connID)
	if !ok {
		// Duplicate disconnect; the first one already cleaned up.
		return
	}
	s.leave(connID, b)
}

// leave detaches the connection from its room and removes its player,
// tearing the room down when the last member goes. The membership
// broadcast is published before turn_vacated so clients never handle a
// turn event against a roster they haven't seen.
func (s *service) leave(connID string, b binding) {
	s.bc.Unsubscribe(b.roomCode, connID)

	r, ok := s.store.get(b.roomCode)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return
	}
	if !r.removePlayer(b.userID, connID) {
		// The player rejoined on another connection; this one no longer
		// owns the entry.
		return
	}
	if len(r.players) == 0 {
		r.gone = true
		r.currentTurn = ""
		s.store.remove(r.code)
		zap.L().Info("session.room_deleted", zap.String("room", r.code))
		return
	}

	vacated := r.status == StatusInProgress && r.currentTurn == b.userID
	if vacated {
		r.currentTurn = ""
	}
	s.bc.Publish(r.code, EventUpdatePlayers, PlayersPayload{Players: r.playerList()})
	if vacated {
		s.bc.Publish(r.code, EventTurnVacated, TurnPayload{PlayerID: b.userID})
	}
}

func (s *service) Rooms() []RoomSnapshot {
	codes := s.store.codes()
	sort.Strings(codes)
	out := make([]RoomSnapshot, 0, len(codes))
	for _, code := range codes {
		if snap, ok := s.Room(code); ok {
			out = append(out, snap)
		}
	}
	return out
}

func (s *service) Room(code string) (RoomSnapshot, bool) {
	r, ok := s.store.get(code)
	if !ok {
		return RoomSnapshot{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gone {
		return RoomSnapshot{}, false
	}
	return r.snapshot(), true
}
