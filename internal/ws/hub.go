package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Conn is one live client as the hub sees it. Send must not block.
type Conn interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// roomSubs is the subscriber set for one room code. Its mutex serializes
// publishes, which keeps the room's event stream in a single total order
// for every subscriber; different rooms never contend.
type roomSubs struct {
	mu    sync.Mutex
	conns map[string]Conn
}

// Hub is the broadcast router: an explicit subscription table mapping
// each connection to at most one room, with ordered fan-out per room and
// point-to-point delivery. Delivery is best-effort: a connection that
// cannot accept a frame is logged and evicted, never waited on.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Conn      // connID -> conn
	rooms map[string]*roomSubs // roomCode -> subscribers
	subs  map[string]string    // connID -> roomCode
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]Conn),
		rooms: make(map[string]*roomSubs),
		subs:  make(map[string]string),
	}
}

// Register makes the connection addressable for unicast. It joins no
// room until the client issues a join.
func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	h.conns[c.ID()] = c
	h.mu.Unlock()
}

// Unregister removes the connection from the hub and its room, then
// closes it. Safe to call more than once.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	c, ok := h.conns[connID]
	delete(h.conns, connID)
	if code, subbed := h.subs[connID]; subbed {
		delete(h.subs, connID)
		h.removeFromRoomLocked(code, connID)
	}
	h.mu.Unlock()

	if ok {
		_ = c.Close()
	}
}

// Subscribe attaches the connection to the room. All subscription-table
// mutations happen inside the h.mu critical section so a concurrent
// unsubscribe can never observe a half-subscribed connection and drop
// the room out from under it; rs.mu is for publish ordering only.
func (h *Hub) Subscribe(roomCode, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.conns[connID]
	if !ok {
		return
	}
	// One room per connection: switching rooms drops the old entry in
	// the same critical section, so the table is never transiently two.
	if old, subbed := h.subs[connID]; subbed && old != roomCode {
		h.removeFromRoomLocked(old, connID)
	}
	h.subs[connID] = roomCode
	rs, ok := h.rooms[roomCode]
	if !ok {
		rs = &roomSubs{conns: make(map[string]Conn)}
		h.rooms[roomCode] = rs
	}
	rs.mu.Lock()
	rs.conns[connID] = c
	rs.mu.Unlock()
}

func (h *Hub) Unsubscribe(roomCode, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[connID] == roomCode {
		delete(h.subs, connID)
	}
	h.removeFromRoomLocked(roomCode, connID)
}

// Publish fans an event out to every subscriber of the room. Connections
// whose send buffer is full are evicted after the loop so one slow
// client never blocks the others.
func (h *Hub) Publish(roomCode, event string, payload any) {
	data, err := json.Marshal(outEnvelope{Event: event, Body: payload})
	if err != nil {
		zap.L().Error("ws.publish_marshal", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	rs := h.rooms[roomCode]
	h.mu.RUnlock()
	if rs == nil {
		return
	}

	var failed []string
	rs.mu.Lock()
	for id, c := range rs.conns {
		if err := c.Send(data); err != nil {
			zap.L().Warn("ws.broadcast_drop",
				zap.String("room", roomCode), zap.String("conn", id), zap.Error(err))
			failed = append(failed, id)
		}
	}
	rs.mu.Unlock()

	for _, id := range failed {
		h.Unregister(id)
	}
}

// Unicast delivers an event to a single connection.
func (h *Hub) Unicast(connID, event string, payload any) {
	data, err := json.Marshal(outEnvelope{Event: event, Body: payload})
	if err != nil {
		zap.L().Error("ws.unicast_marshal", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	c := h.conns[connID]
	h.mu.RUnlock()
	if c == nil {
		return
	}
	if err := c.Send(data); err != nil {
		zap.L().Warn("ws.unicast_drop", zap.String("conn", connID), zap.Error(err))
		h.Unregister(connID)
	}
}

// CloseRoom drops every subscription to the room. The connections stay
// open; they are simply no longer reachable via the code, so a future
// session under the same code starts with a clean subscriber set.
func (h *Hub) CloseRoom(roomCode string) {
	h.mu.Lock()
	rs := h.rooms[roomCode]
	delete(h.rooms, roomCode)
	for connID, code := range h.subs {
		if code == roomCode {
			delete(h.subs, connID)
		}
	}
	h.mu.Unlock()

	if rs != nil {
		rs.mu.Lock()
		rs.conns = make(map[string]Conn)
		rs.mu.Unlock()
	}
}

// Shutdown closes every connection; used on process teardown.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	conns := make([]Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[string]Conn)
	h.rooms = make(map[string]*roomSubs)
	h.subs = make(map[string]string)
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}

// Stats reports live room and connection counts.
func (h *Hub) Stats() (rooms, conns int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms), len(h.conns)
}

// removeFromRoomLocked drops the conn from the room's subscriber set,
// deleting the set once it empties. Caller holds h.mu, so the emptiness
// check and the map delete are atomic with respect to subscribes.
func (h *Hub) removeFromRoomLocked(roomCode, connID string) {
	rs := h.rooms[roomCode]
	if rs == nil {
		return
	}
	rs.mu.Lock()
	delete(rs.conns, connID)
	empty := len(rs.conns) == 0
	rs.mu.Unlock()
	if empty {
		delete(h.rooms, roomCode)
	}
}
