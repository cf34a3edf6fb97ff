package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomStore_GetOrCreate_SingleWinner(t *testing.T) {
	s := newRoomStore()

	var wg sync.WaitGroup
	results := make([]*room, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.getOrCreate("ABC123")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r, "exactly one instance per code")
	}
	assert.Equal(t, StatusNotStarted, results[0].status)
}

func TestRoomStore_RemoveThenGet(t *testing.T) {
	s := newRoomStore()
	s.getOrCreate("ABC123")

	s.remove("ABC123")

	_, ok := s.get("ABC123")
	assert.False(t, ok)
	assert.Empty(t, s.codes())
}

func TestRoom_AddPlayer_RejoinKeepsPosition(t *testing.T) {
	r := &room{code: "ABC123", status: StatusNotStarted}

	r.addPlayer(Player{ID: "a", DisplayName: "Alice"}, "conn-1")
	r.addPlayer(Player{ID: "b", DisplayName: "Bob"}, "conn-2")
	r.addPlayer(Player{ID: "a", DisplayName: "Alice v2"}, "conn-3")

	require.Len(t, r.players, 2)
	assert.Equal(t, "a", r.players[0].player.ID)
	assert.Equal(t, "Alice v2", r.players[0].player.DisplayName)
	assert.Equal(t, "conn-3", r.players[0].connID, "rejoin transfers ownership")
}

func TestRoom_RemovePlayer_OwnershipCheck(t *testing.T) {
	r := &room{code: "ABC123"}
	r.addPlayer(Player{ID: "a"}, "conn-1")

	assert.False(t, r.removePlayer("a", "conn-other"))
	require.Len(t, r.players, 1)

	assert.True(t, r.removePlayer("a", "conn-1"))
	assert.Empty(t, r.players)

	assert.False(t, r.removePlayer("a", "conn-1"), "already removed")
}

func TestRoom_Snapshot_Copies(t *testing.T) {
	r := &room{code: "ABC123", status: StatusInProgress, currentTurn: "a"}
	r.addPlayer(Player{ID: "a", DisplayName: "Alice"}, "conn-1")

	snap := r.snapshot()
	snap.Players[0].DisplayName = "mutated"

	assert.Equal(t, "Alice", r.players[0].player.DisplayName)
	assert.Equal(t, "a", snap.CurrentTurnPlayerID)
}
