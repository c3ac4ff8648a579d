package fotolia

import (
	"context"
	"sync"
	"time"
)

// TokenTimeout is the age after which a session token is refreshed.
const TokenTimeout = 1200 * time.Second

// refreshFunc obtains a fresh session token. It is called without any session
// lock held because it dispatches a request that reads the session itself.
type refreshFunc func(ctx context.Context) (string, error)

// session owns the API key and the session token. token and issuedAt are only
// ever written together, under mu.
type session struct {
	apiKey string

	mu       sync.Mutex
	token    string
	issuedAt time.Time

	// refreshMu serialises refreshes so that concurrent callers holding a
	// stale token trigger a single refreshToken call.
	refreshMu sync.Mutex
	refresh   refreshFunc
	now       func() time.Time
}

func newSession(apiKey string, refresh refreshFunc, now func() time.Time) *session {
	if now == nil {
		now = time.Now
	}
	return &session{apiKey: apiKey, refresh: refresh, now: now}
}

func (s *session) snapshot() (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.issuedAt
}

func (s *session) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		s.token, s.issuedAt = "", time.Time{}
		return
	}
	s.token, s.issuedAt = token, s.now()
}

func (s *session) clear() { s.set("") }

func (s *session) stale(issuedAt time.Time) bool {
	return s.now().Sub(issuedAt) > TokenTimeout
}

// credentialFor returns "apiKey:token". A stale token is refreshed first when
// autoRefresh is set; a refresh failure is returned as is.
func (s *session) credentialFor(ctx context.Context, autoRefresh, forceNonEmpty bool) (string, error) {
	token, issuedAt := s.snapshot()

	if token != "" && autoRefresh && s.stale(issuedAt) {
		var err error
		if token, err = s.refreshIfStale(ctx); err != nil {
			return "", err
		}
	}

	if token == "" && forceNonEmpty {
		return "", &AuthRequiredError{}
	}
	return s.apiKey + ":" + token, nil
}

func (s *session) refreshIfStale(ctx context.Context) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Another caller may have refreshed, or logged out, while we waited.
	token, issuedAt := s.snapshot()
	if token == "" || !s.stale(issuedAt) {
		return token, nil
	}

	fresh, err := s.refresh(ctx)
	if err != nil {
		return "", err
	}
	s.set(fresh)
	return fresh, nil
}
