// internal/session/registry.go
//
// Authoritative collection of live multiplayer sessions.
// Responsibilities:
//   - Generate short, collision-checked game codes and register new sessions.
//   - Look sessions up by code and by participant connection id.
//   - Destroy sessions whose participant set has emptied.
//
// The hub's single event loop performs all mutations, but the HTTP surface
// reads the registry concurrently (active-games listing), so access is guarded
// by an RWMutex the same way the in-memory game store is.

package session

import (
	"crypto/rand"
	"math/big"
	"sync"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
	codeAttempts = 100
)

// Registry owns all live sessions, keyed by game code, plus a reverse index
// from connection id to code for disconnect handling.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byConn   map[string]string // connection id → game code
}

// NewRegistry constructs an empty registry. One instance is created at
// startup and passed explicitly to the protocol handler.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		byConn:   make(map[string]string),
	}
}

// Create registers a new waiting session under a fresh code with creatorConn
// seated as player 1. Codes are retried on collision; ErrCodeSpace is returned
// only if the code space is effectively exhausted.
func (r *Registry) Create(creatorConn string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.freshCodeLocked()
	if err != nil {
		return nil, err
	}
	s := New(code, creatorConn)
	r.sessions[code] = s
	r.byConn[creatorConn] = code
	return s, nil
}

// Get returns the session registered under code.
func (r *Registry) Get(code string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[code]
	if !ok {
		return nil, ErrGameNotFound
	}
	return s, nil
}

// Bind records that connID now participates in the session under code.
func (r *Registry) Bind(connID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byConn[connID] = code
}

// FindByParticipant returns the code of the session connID participates in.
func (r *Registry) FindByParticipant(connID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.byConn[connID]
	if !ok {
		return "", ErrGameNotFound
	}
	return code, nil
}

// Remove drops the session registered under code.
func (r *Registry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, code)
}

// Disconnect unseats connID from its session, destroys the session if it
// emptied, and returns the session (nil if none was found) together with
// whether it was destroyed.
func (r *Registry) Disconnect(connID string) (s *Session, destroyed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.byConn[connID]
	if !ok {
		return nil, false
	}
	delete(r.byConn, connID)

	s, ok = r.sessions[code]
	if !ok {
		return nil, false
	}
	if s.RemoveParticipant(connID) == 0 {
		delete(r.sessions, code)
		return s, true
	}
	return s, false
}

// Summary describes one live session for the lobby listing.
type Summary struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
	Phase   Phase  `json:"phase"`
}

// Snapshot lists all live sessions. Order is unspecified.
func (r *Registry) Snapshot() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Summary, 0, len(r.sessions))
	for code, s := range r.sessions {
		out = append(out, Summary{Code: code, Players: s.ParticipantCount(), Phase: s.Phase()})
	}
	return out
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// freshCodeLocked generates a code not currently in use.
// Caller must hold r.mu.
func (r *Registry) freshCodeLocked() (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := randomCode()
		if _, taken := r.sessions[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpace
}

// randomCode returns a crypto-random uppercase alphanumeric code.
func randomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		b[i] = codeAlphabet[nBig.Int64()]
	}
	return string(b)
}
