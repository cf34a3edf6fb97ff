package session

import "context"

// Service coordinates room membership, turn order and event fan-out for
// all live game sessions in this process.
type Service interface {
	// JoinRoom resolves the user's display name, binds the connection to
	// the room (creating it on first join) and broadcasts the new player
	// list. A connection holds at most one room membership; joining a
	// different room leaves the previous one first.
	JoinRoom(ctx context.Context, connID, roomCode, userID string) error

	// StartGame moves the room to IN_PROGRESS and hands the turn to the
	// first player in join order.
	StartGame(ctx context.Context, roomCode string) error

	// AssignTurn explicitly overrides the current turn holder.
	AssignTurn(ctx context.Context, roomCode, playerID string) error

	// AdvanceTurn is the normal end-of-turn handoff: the next holder is
	// asserted by the current holder's client, not computed here.
	AdvanceTurn(ctx context.Context, roomCode, nextPlayerID string) error

	// SendResponse relays a player's answer to the room verbatim.
	SendResponse(ctx context.Context, roomCode string, player Player, message string) error

	// EndGame broadcasts game_over and tears the room down.
	EndGame(ctx context.Context, roomCode string) error

	// Disconnect removes the connection's player from its room, deleting
	// the room when the last player leaves. Safe to call more than once
	// for the same connection.
	Disconnect(connID string)

	// Rooms and Room expose live snapshots for inspection endpoints.
	Rooms() []RoomSnapshot
	Room(code string) (RoomSnapshot, bool)
}

// Broadcaster is the outbound side of the coordinator: an explicit
// subscription table (connection to at most one room) plus ordered
// fan-out and point-to-point delivery. Publish must be a non-blocking
// enqueue; the service calls it inside room critical sections, which is
// what serializes each room's event stream into a single total order.
type Broadcaster interface {
	Subscribe(roomCode, connID string)
	Unsubscribe(roomCode, connID string)
	Publish(roomCode, event string, payload any)
	Unicast(connID, event string, payload any)
	// CloseRoom drops every subscription to the room. Connections stay
	// open; they are simply no longer reachable via the code.
	CloseRoom(roomCode string)
}
