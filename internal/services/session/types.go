package session

// GameStatus is the per-room turn state machine phase.
type GameStatus string

const (
	StatusNotStarted GameStatus = "NOT_STARTED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusEnded      GameStatus = "ENDED"
)

// Player is a room participant as seen by clients. Identity is resolved
// once at join time and stays immutable for the connection's lifetime.
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// RoomSnapshot is an immutable copy of a room's visible state, safe to
// hand to broadcasts and HTTP responses.
type RoomSnapshot struct {
	Code                string     `json:"code"`
	Players             []Player   `json:"players"`
	Status              GameStatus `json:"status"`
	CurrentTurnPlayerID string     `json:"currentTurnPlayerId,omitempty"`
}

// Outbound event names fanned out to room subscribers.
const (
	EventUpdatePlayers  = "update_players"
	EventGameStarted    = "game_started"
	EventNextTurn       = "next_turn"
	EventPlayerResponse = "player_response"
	EventGameOver       = "game_over"
	EventTurnVacated    = "turn_vacated"
)

// PlayersPayload is the body of an update_players broadcast.
type PlayersPayload struct {
	Players []Player `json:"players"`
}

// TurnPayload is the body of next_turn and turn_vacated broadcasts.
type TurnPayload struct {
	PlayerID string `json:"playerId"`
}

// ResponsePayload is the body of a player_response broadcast,
// relayed verbatim and never persisted.
type ResponsePayload struct {
	Player  Player `json:"player"`
	Message string `json:"message"`
}
