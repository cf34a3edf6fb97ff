package session

import "sync"

// binding ties a live connection to the identity it joined with.
type binding struct {
	userID   string
	roomCode string
}

// registry maps connection ids to their binding. It holds no game state
// and has no side effects; cross-component propagation is the caller's
// job.
type registry struct {
	mu    sync.Mutex
	conns map[string]binding
}

func newRegistry() *registry {
	return &registry{conns: make(map[string]binding)}
}

func (r *registry) bind(connID, userID, roomCode string) {
	r.mu.Lock()
	r.conns[connID] = binding{userID: userID, roomCode: roomCode}
	r.mu.Unlock()
}

// unbind removes and returns the connection's binding. The second call
// for the same connection reports ok=false, which is what makes
// duplicate disconnect events harmless.
func (r *registry) unbind(connID string) (binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.conns[connID]
	if ok {
		delete(r.conns, connID)
	}
	return b, ok
}

func (r *registry) lookup(connID string) (binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.conns[connID]
	return b, ok
}
