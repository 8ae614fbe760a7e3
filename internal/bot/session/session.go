// Package session keeps per-chat conversation state in memory.
// State survives for the lifetime of the process only.
package session

import (
	"sync"

	"storebot/internal/domain"
)

// State identifies the current step of a conversation.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitName     State = "await-name"
	StateAwaitPrice    State = "await-price"
	StateAwaitPhoto    State = "await-photo"
	StateAwaitDeleteID State = "await-delete-id"
)

// Session holds conversational state for one chat.
type Session struct {
	mu sync.Mutex

	Admin bool
	State State
	Draft domain.ProductDraft
}

// Snapshot is a lock-free copy of a Session, safe to pass by value.
type Snapshot struct {
	Admin bool
	State State
	Draft domain.ProductDraft
}

// Store is a concurrency-safe session map keyed by chat ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

func (s *Store) get(chatID int64) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[chatID]; ok {
		return sess
	}
	sess = &Session{State: StateIdle}
	s.sessions[chatID] = sess
	return sess
}

// Mutate runs fn with exclusive access to the chat's session,
// creating it on first touch.
func (s *Store) Mutate(chatID int64, fn func(*Session)) {
	sess := s.get(chatID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess)
}

// View runs fn with a snapshot copy of the chat's session.
func (s *Store) View(chatID int64, fn func(Snapshot)) {
	sess := s.get(chatID)
	sess.mu.Lock()
	snapshot := Snapshot{
		Admin: sess.Admin,
		State: sess.State,
		Draft: sess.Draft,
	}
	sess.mu.Unlock()
	fn(snapshot)
}

// StateOf returns the chat's current conversation state.
func (s *Store) StateOf(chatID int64) State {
	var st State
	s.View(chatID, func(sess Snapshot) { st = sess.State })
	return st
}

// InProgress reports whether the chat has an active conversation.
func (s *Store) InProgress(chatID int64) bool {
	return s.StateOf(chatID) != StateIdle
}

// IsAdmin reports whether the chat has been granted admin rights.
func (s *Store) IsAdmin(chatID int64) bool {
	var admin bool
	s.View(chatID, func(sess Snapshot) { admin = sess.Admin })
	return admin
}

// Reset clears conversation state but keeps the admin grant.
func (s *Store) Reset(chatID int64) {
	s.Mutate(chatID, func(sess *Session) {
		sess.State = StateIdle
		sess.Draft = domain.ProductDraft{}
	})
}
