package profile

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("profile not found")
)

// Service resolves a user id to the display name shown to other players.
// The session coordinator treats this as an opaque external lookup.
type Service interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}
