package session

import "errors"

var (
	// ErrRoomNotFound is benign: the room was already torn down. Callers
	// log and drop the event instead of escalating.
	ErrRoomNotFound = errors.New("room not found")

	// ErrInvalidPlayer rejects a turn assignment naming a non-member.
	ErrInvalidPlayer = errors.New("player is not a member of the room")

	// ErrLookupFailed rejects a join whose profile resolution failed; the
	// connection stays unbound.
	ErrLookupFailed = errors.New("profile lookup failed")

	ErrEmptyRoom      = errors.New("room has no players")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotStarted     = errors.New("game not in progress")
)
