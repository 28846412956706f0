// Package session owns the credential registry and the current session.
//
// A Store is created once per process and handed to every consumer; all of
// them observe the same state. Consumers that react to login and logout
// register a listener with Subscribe instead of polling.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/google/uuid"
)

// Listener receives the session state after every transition.
type Listener func(State)

type subscription struct {
	id uint64
	fn Listener
}

type Store struct {
	mu        sync.RWMutex
	registry  []Credential
	state     State
	listeners []subscription
	nextSubID uint64
	logger    logging.Logger
	now       func() time.Time
}

// NewStore returns a store with an empty registry and no active session.
func NewStore(logger logging.Logger) *Store {
	return &Store{logger: logger, now: time.Now}
}

// Signup appends c to the registry and returns the stored record.
// ID and CreatedAt are filled in when empty. Signup performs no uniqueness
// check and never logs the user in; form-level validation belongs to the
// caller.
func (s *Store) Signup(c Credential) Credential {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}

	s.mu.Lock()
	s.registry = append(s.registry, c)
	n := len(s.registry)
	s.mu.Unlock()

	s.logger.Info(context.Background(), "user registered", "user_id", c.ID, "registered", n)
	return c
}

// Login scans the registry in registration order for an exact email and
// password match. The first match becomes the active user. When nothing
// matches, the session is left as it was and common.ErrInvalidCredentials is
// returned.
func (s *Store) Login(email, password string) (Credential, error) {
	s.mu.Lock()
	var found *Credential
	for i := range s.registry {
		if s.registry[i].Email == email && s.registry[i].Password == password {
			c := s.registry[i]
			found = &c
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		s.logger.Warn(context.Background(), "login rejected")
		return Credential{}, common.ErrInvalidCredentials
	}

	s.state = State{
		ID:         uuid.New(),
		Authorized: true,
		ActiveUser: found,
		Since:      s.now(),
	}
	st := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Info(context.Background(), "logged in", "session_id", st.ID, "user_id", found.ID)
	notify(listeners, st)
	return *found, nil
}

// Logout clears the session. It is idempotent; listeners are only told about
// an actual transition.
func (s *Store) Logout() {
	s.mu.Lock()
	if !s.state.Authorized {
		s.mu.Unlock()
		return
	}
	prev := s.state.ID
	s.state = State{}
	st := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.logger.Info(context.Background(), "logged out", "session_id", prev)
	notify(listeners, st)
}

func (s *Store) IsAuthorized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authorized
}

// CurrentUser returns the active user, if any.
func (s *Store) CurrentUser() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ActiveUser == nil {
		return Credential{}, false
	}
	return *s.state.ActiveUser, true
}

// State returns a copy of the current session state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Lookup returns the first registered record with the given email.
func (s *Store) Lookup(email string) (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.registry {
		if c.Email == email {
			return c, true
		}
	}
	return Credential{}, false
}

// Len reports how many records are registered.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

// Subscribe registers fn for session transitions and returns a function that
// removes it. Listeners run synchronously, in subscription order, after the
// store has released its lock, so they may call back into the store.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) snapshotLocked() State {
	st := s.state
	if st.ActiveUser != nil {
		u := *st.ActiveUser
		st.ActiveUser = &u
	}
	return st
}

func (s *Store) listenersLocked() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, sub := range s.listeners {
		out = append(out, sub.fn)
	}
	return out
}

func notify(listeners []Listener, st State) {
	for _, fn := range listeners {
		fn(st)
	}
}
