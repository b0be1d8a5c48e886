package hub

import "sync"

// Presence is the process-wide table of live connections, keyed by
// internal user id. It is held only in memory: entries are created on
// connect, removed on disconnect, and never persisted. A user who
// connects twice keeps only the most recent handle (last write wins).
type Presence struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewPresence() *Presence {
	return &Presence{clients: make(map[string]*Client)}
}

// Set upserts the connection handle for a user and returns the handle
// it displaced, if any, so the caller can close it.
func (p *Presence) Set(userID string, c *Client) *Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	replaced := p.clients[userID]
	p.clients[userID] = c
	return replaced
}

// Remove drops the user's entry, but only if it still points at the
// given handle. A stale disconnect from a displaced connection must
// not evict the newer one.
func (p *Presence) Remove(userID string, c *Client) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	current, ok := p.clients[userID]
	if !ok || current != c {
		return false
	}
	delete(p.clients, userID)
	return true
}

// Get returns the live connection for a user, or nil if offline.
func (p *Presence) Get(userID string) *Client {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.clients[userID]
}

// IsOnline reports whether the user currently holds a live connection.
func (p *Presence) IsOnline(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.clients[userID]
	return ok
}

// OnlineIDs returns a snapshot of all online user ids.
func (p *Presence) OnlineIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]string, 0, len(p.clients))
	for id := range p.clients {
		ids = append(ids, id)
	}
	return ids
}

// All returns a snapshot of every live connection. Callers fan out to
// the snapshot without holding the table lock, so slow client writes
// cannot serialize connection churn.
func (p *Presence) All() []*Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clients := make([]*Client, 0, len(p.clients))
	for _, c := range p.clients {
		clients = append(clients, c)
	}
	return clients
}

// Len returns the number of live connections.
func (p *Presence) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.clients)
}
