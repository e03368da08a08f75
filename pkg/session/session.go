// Package session carries the signed-in state as an explicit value handed to
// the client and the workspace, instead of an ambient global flag. Init runs
// once when the workspace is entered; Teardown clears everything on logout.
package session

import "sync"

// Session is the client-side view of an authenticated session. The token is
// a UX gate toward the API, not a security boundary.
type Session struct {
	mu    sync.RWMutex
	token string
}

// New returns an unauthenticated session.
func New() *Session {
	return &Session{}
}

// Init stores the token obtained from a successful login.
func (s *Session) Init(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Teardown clears the session. Idempotent.
func (s *Session) Teardown() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Token returns the current session token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a login has completed and not been torn down.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
