package session

import "sync"

// playerEntry pairs a player with the connection that owns the entry, so
// that a stale connection disconnecting after a rejoin cannot evict the
// player's fresh membership.
type playerEntry struct {
	player Player
	connID string
}

// room is the single source of truth for one session. All fields after
// mu are guarded by it; callers hold mu across a mutation and the
// publishes it produces, which yields the per-room event order.
type room struct {
	code string

	mu          sync.Mutex
	gone        bool // torn down; racing callers must re-resolve the code
	status      GameStatus
	players     []playerEntry
	currentTurn string
}

// addPlayer appends a new member or, on rejoin, updates the existing
// entry's display name and owning connection without reordering.
// Caller holds r.mu.
func (r *room) addPlayer(p Player, connID string) {
	for i := range r.players {
		if r.players[i].player.ID == p.ID {
			r.players[i].player.DisplayName = p.DisplayName
			r.players[i].connID = connID
			return
		}
	}
	r.players = append(r.players, playerEntry{player: p, connID: connID})
}

// removePlayer removes the member by id, but only if the entry is still
// owned by connID. Caller holds r.mu.
func (r *room) removePlayer(userID, connID string) bool {
	for i := range r.players {
		if r.players[i].player.ID == userID {
			if r.players[i].connID != connID {
				return false
			}
			r.players = append(r.players[:i], r.players[i+1:]...)
			return true
		}
	}
	return false
}

// isMember reports whether the id belongs to a current member.
// Caller holds r.mu.
func (r *room) isMember(playerID string) bool {
	for i := range r.players {
		if r.players[i].player.ID == playerID {
			return true
		}
	}
	return false
}

// playerList copies the ordered member list. Caller holds r.mu.
func (r *room) playerList() []Player {
	out := make([]Player, len(r.players))
	for i := range r.players {
		out[i] = r.players[i].player
	}
	return out
}

// snapshot copies the room's visible state. Caller holds r.mu.
func (r *room) snapshot() RoomSnapshot {
	return RoomSnapshot{
		Code:                r.code,
		Players:             r.playerList(),
		Status:              r.status,
		CurrentTurnPlayerID: r.currentTurn,
	}
}

// roomStore is the process-wide code-to-room table. It is an injected
// dependency rather than a package-level singleton so tests can build
// isolated instances.
type roomStore struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func newRoomStore() *roomStore {
	return &roomStore{rooms: make(map[string]*room)}
}

// getOrCreate returns the room for the code, creating it on first join.
// Under a concurrent first-join race exactly one instance wins. The
// returned room may already be marked gone by the time the caller locks
// it; callers re-check and retry.
func (s *roomStore) getOrCreate(code string) *room {
	s.mu.RLock()
	r, ok := s.rooms[code]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[code]; ok {
		return r
	}
	r = &room{code: code, status: StatusNotStarted}
	s.rooms[code] = r
	return r
}

func (s *roomStore) get(code string) (*room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[code]
	return r, ok
}

// remove drops the code from the table. The caller marks the room gone
// under its lock first.
func (s *roomStore) remove(code string) {
	s.mu.Lock()
	delete(s.rooms, code)
	s.mu.Unlock()
}

func (s *roomStore) codes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		out = append(out, code)
	}
	return out
}
