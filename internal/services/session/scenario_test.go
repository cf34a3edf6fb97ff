package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full session walkthrough: two players, a started game, a normal turn
// handoff, then both leaving one after the other.
func TestSession_FullGameLifecycle(t *testing.T) {
	svc, bc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.JoinRoom(ctx, "conn-a", "ABC123", "a"))
	require.NoError(t, svc.JoinRoom(ctx, "conn-b", "ABC123", "b"))
	require.NoError(t, svc.StartGame(ctx, "ABC123"))
	require.NoError(t, svc.AdvanceTurn(ctx, "ABC123", "b"))
	require.NoError(t, svc.SendResponse(ctx, "ABC123",
		Player{ID: "b", DisplayName: "Bob"}, "an honest answer"))

	assert.Equal(t, []string{
		EventUpdatePlayers, // A joined
		EventUpdatePlayers, // B joined
		EventGameStarted,
		EventNextTurn, // A, first in join order
		EventNextTurn, // handed to B
		EventPlayerResponse,
	}, bc.eventNames("ABC123"))

	// A leaves while B holds the turn: membership shrinks, turn intact.
	svc.Disconnect("conn-a")
	snap, ok := svc.Room("ABC123")
	require.True(t, ok)
	assert.Equal(t, []Player{{ID: "b", DisplayName: "Bob"}}, snap.Players)
	assert.Equal(t, "b", snap.CurrentTurnPlayerID)

	// Last player leaving deletes the room.
	svc.Disconnect("conn-b")
	_, ok = svc.Room("ABC123")
	assert.False(t, ok)
}
