package conversation

import "sync"

// SessionStore holds each user's in-flight draft. Implementations must be
// safe for concurrent access across users.
type SessionStore interface {
	Get(userID int64) (Draft, bool)
	Set(userID int64, draft Draft)
	Clear(userID int64)
}

// InMemorySessionStore is a map-backed SessionStore. Beyond the Get/Set/
// Clear contract it provides per-user serialization: the engine wraps every
// event in Acquire so that two near-simultaneous messages from the same user
// (a double-tap) cannot interleave inside one flow, while different users
// never contend.
type InMemorySessionStore struct {
	mu       sync.Mutex
	drafts   map[int64]Draft
	userLock map[int64]*sync.Mutex
}

// NewInMemorySessionStore creates an empty session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		drafts:   make(map[int64]Draft),
		userLock: make(map[int64]*sync.Mutex),
	}
}

// Get returns the user's draft and whether one exists.
func (s *InMemorySessionStore) Get(userID int64) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[userID]
	return d, ok
}

// Set stores the user's draft, replacing any existing one.
func (s *InMemorySessionStore) Set(userID int64, draft Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[userID] = draft
}

// Clear discards the user's draft.
func (s *InMemorySessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
}

// Acquire locks the user's serialization mutex and returns the release
// function. The per-user mutex is retained for the life of the store; the
// user population is small enough that entries are never reaped.
func (s *InMemorySessionStore) Acquire(userID int64) func() {
	s.mu.Lock()
	lock, ok := s.userLock[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLock[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
