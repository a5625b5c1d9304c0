package kvclient

import (
	"net/http"
	"sync"
	"time"
)

// Session holds the bearer credentials for API calls. It replaces ambient
// token storage: callers construct it once and pass it to the client by
// reference, and the clock is injectable so refresh scheduling is testable.
type Session struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	margin    time.Duration
	now       func() time.Time
}

// NewSession creates a session from an issued token and its expiry. A zero
// expiry means the token never expires.
func NewSession(token string, expiresAt time.Time) *Session {
	return &Session{
		token:     token,
		expiresAt: expiresAt,
		margin:    time.Minute,
		now:       time.Now,
	}
}

// WithClock overrides the time source.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// SetToken replaces the credentials after a refresh.
func (s *Session) SetToken(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
}

// Valid reports whether the session holds a non-expired token.
func (s *Session) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return false
	}
	return s.expiresAt.IsZero() || s.now().Before(s.expiresAt)
}

// RefreshDue reports whether the token expires within the refresh margin.
// The caller owns the refresh cadence; the session only answers the question.
func (s *Session) RefreshDue() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.expiresAt.IsZero() {
		return false
	}
	return !s.now().Add(s.margin).Before(s.expiresAt)
}

// Apply sets the Authorization header when a token is present.
func (s *Session) Apply(req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
}
