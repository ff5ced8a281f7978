package agent

import (
	"fmt"
	"sync"
	"time"
)

// Event records a single agent contribution within a session.
type Event struct {
	Author    string
	Content   string
	Timestamp time.Time
}

// Session holds conversation history and the shared state map that
// agents read from and write their keyed outputs into.
type Session struct {
	ID      string
	AppName string
	UserID  string

	mu     sync.RWMutex
	state  map[string]string
	events []Event
}

// State returns a copy of the session state map.
func (s *Session) State() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}

// Get returns the state value stored under key, if any.
func (s *Session) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.state[key]
	return v, ok
}

// Set stores a value in the session state.
func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state[key] = value
}

// AppendEvent adds an event to the session history.
func (s *Session) AppendEvent(author, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, Event{
		Author:    author,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// Events returns a copy of the session history.
func (s *Session) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// SessionService manages session lifecycles.
type SessionService interface {
	Create(appName, userID, sessionID string) (*Session, error)
	Get(appName, userID, sessionID string) (*Session, error)
}

// InMemorySessionService keeps sessions in a process-local map.
type InMemorySessionService struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemorySessionService creates an empty session store.
func NewInMemorySessionService() *InMemorySessionService {
	return &InMemorySessionService{
		sessions: make(map[string]*Session),
	}
}

func sessionKey(appName, userID, sessionID string) string {
	return appName + "/" + userID + "/" + sessionID
}

// Create registers a new session. Creating an ID that already exists
// replaces the previous session.
func (s *InMemorySessionService) Create(appName, userID, sessionID string) (*Session, error) {
	if appName == "" || userID == "" || sessionID == "" {
		return nil, fmt.Errorf("app name, user ID and session ID are required")
	}

	sess := &Session{
		ID:      sessionID,
		AppName: appName,
		UserID:  userID,
		state:   make(map[string]string),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey(appName, userID, sessionID)] = sess

	return sess, nil
}

// Get returns an existing session.
func (s *InMemorySessionService) Get(appName, userID, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionKey(appName, userID, sessionID)]
	if !ok {
		return nil, fmt.Errorf("session %q not found", sessionID)
	}
	return sess, nil
}
