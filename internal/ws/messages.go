package ws

import (
	"encoding/json"

	"github.com/naiplawan/kaichid-sub001/internal/services/session"
)

// Envelope wraps every inbound WS frame.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "join_room"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

// outEnvelope is the outbound counterpart with a marshalable body.
type outEnvelope struct {
	Event string `json:"event"`
	Body  any    `json:"body,omitempty"`
}

// Inbound event names.
const (
	EventJoinRoom     = "join_room"
	EventStartGame    = "start_game"
	EventAssignTurn   = "assign_turn"
	EventTurnEnded    = "turn_ended"
	EventSendResponse = "send_response"
	EventGameOver     = "game_over"
)

// ──────────────────────────── Request / Response DTOs ─────────────────────────

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	UserID   string `json:"userId"`
}

type StartGameRequest struct {
	RoomCode string `json:"roomCode"`
}

type AssignTurnRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type TurnEndedRequest struct {
	RoomCode     string `json:"roomCode"`
	NextPlayerID string `json:"nextPlayerId"`
}

type SendResponseRequest struct {
	RoomCode string         `json:"roomCode"`
	Player   session.Player `json:"player"`
	Message  string         `json:"message"`
}

type GameOverRequest struct {
	RoomCode string `json:"roomCode"`
}

// Empty ACK body (useful for many handlers).
type AckBody struct{}

// ErrorBody is returned for failures.
type ErrorBody struct {
	Error string `json:"error"`
}
