package fotolia

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const refreshPath = "/Rest/1/user/refreshToken"

func refreshingHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == refreshPath {
		writeJSON(w, http.StatusOK, map[string]any{"session_token": "fresh"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func TestCredentialForAnonymous(t *testing.T) {
	s := newSession(testAPIKey, nil, nil)

	cred, err := s.credentialFor(context.Background(), true, false)
	require.NoError(t, err)
	assert.Equal(t, "APIKEY:", cred)

	_, err = s.credentialFor(context.Background(), true, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, KindAuthRequired, KindOf(err))
}

func TestSessionTokenAndTimestampMoveTogether(t *testing.T) {
	clock := newFakeClock()
	s := newSession(testAPIKey, nil, clock.Now)

	s.set("tok")
	token, issuedAt := s.snapshot()
	assert.Equal(t, "tok", token)
	assert.Equal(t, clock.Now(), issuedAt)

	s.clear()
	token, issuedAt = s.snapshot()
	assert.Empty(t, token)
	assert.True(t, issuedAt.IsZero())
}

func TestCredentialForRefreshBoundary(t *testing.T) {
	tests := []struct {
		name        string
		age         time.Duration
		autoRefresh bool
		wantRefresh int
		wantCred    string
	}{
		{name: "fresh", age: 1199 * time.Second, autoRefresh: true, wantRefresh: 0, wantCred: "APIKEY:old"},
		{name: "exactly at timeout", age: 1200 * time.Second, autoRefresh: true, wantRefresh: 0, wantCred: "APIKEY:old"},
		{name: "stale", age: 1201 * time.Second, autoRefresh: true, wantRefresh: 1, wantCred: "APIKEY:new"},
		{name: "stale without auto refresh", age: 1201 * time.Second, autoRefresh: false, wantRefresh: 0, wantCred: "APIKEY:old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			refreshes := 0
			s := newSession(testAPIKey, func(ctx context.Context) (string, error) {
				refreshes++
				return "new", nil
			}, clock.Now)
			s.set("old")
			clock.Advance(tt.age)

			cred, err := s.credentialFor(context.Background(), tt.autoRefresh, true)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCred, cred)
			assert.Equal(t, tt.wantRefresh, refreshes)
		})
	}
}

func TestDispatchRefreshesStaleToken(t *testing.T) {
	srv := newAPIServer(t, refreshingHandler)
	clock := newFakeClock()
	c := newTestClient(t, srv, WithClock(clock.Now))
	ctx := context.Background()

	c.session.set("old")

	clock.Advance(1199 * time.Second)
	_, err := c.Call(ctx, MethodGetUserData, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, srv.count(refreshPath))

	clock.Advance(2 * time.Second)
	_, err = c.Call(ctx, MethodGetUserData, nil)
	require.NoError(t, err)

	// The refresh runs once, with the old token and without refreshing itself.
	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, refreshPath, reqs[1].Path)
	assert.Equal(t, http.MethodPost, reqs[1].Method)
	assert.Equal(t, "old", reqs[1].Pass)
	assert.Equal(t, "/Rest/1/user/getUserData", reqs[2].Path)
	assert.Equal(t, "fresh", reqs[2].Pass)
	assert.Equal(t, "fresh", c.SessionToken())
}

func TestDispatchWithoutAutoRefreshKeepsStaleToken(t *testing.T) {
	srv := newAPIServer(t, refreshingHandler)
	clock := newFakeClock()
	c := newTestClient(t, srv, WithClock(clock.Now))

	c.session.set("old")
	clock.Advance(time.Hour)

	_, err := c.Dispatch(context.Background(), MethodGetUserData, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 0, srv.count(refreshPath))
	assert.Equal(t, "old", srv.Requests()[0].Pass)
}

func TestRefreshFailurePropagates(t *testing.T) {
	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == refreshPath {
			writeJSON(w, http.StatusOK, map[string]any{"error": "session expired", "code": 2001})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	clock := newFakeClock()
	c := newTestClient(t, srv, WithClock(clock.Now))

	c.session.set("old")
	clock.Advance(1201 * time.Second)

	_, err := c.Call(context.Background(), MethodGetUserData, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 2001, apiErr.Code)
	// The outer call is never sent with the stale token or anonymously.
	assert.Equal(t, 0, srv.count("/Rest/1/user/getUserData"))
	assert.Equal(t, "old", c.SessionToken())
}

func TestRefreshWithoutTokenIsAnError(t *testing.T) {
	srv := newAPIServer(t, okHandler)
	clock := newFakeClock()
	c := newTestClient(t, srv, WithClock(clock.Now))

	c.session.set("old")
	clock.Advance(1201 * time.Second)

	_, err := c.Call(context.Background(), MethodGetUserData, nil)
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestConcurrentCallsRefreshOnce(t *testing.T) {
	srv := newAPIServer(t, refreshingHandler)
	clock := newFakeClock()
	c := newTestClient(t, srv, WithClock(clock.Now))

	c.session.set("old")
	clock.Advance(1201 * time.Second)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := c.Call(ctx, MethodGetUserStats, nil)
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, srv.count(refreshPath))
	for _, r := range srv.Requests() {
		if r.Path != refreshPath {
			assert.Equal(t, "fresh", r.Pass)
		}
	}
}

func TestLoginAndLogout(t *testing.T) {
	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if r.URL.Path == "/Rest/1/user/loginUser" {
			assert.Equal(t, "me", r.PostForm.Get("login"))
			assert.Equal(t, "secret", r.PostForm.Get("pass"))
			writeJSON(w, http.StatusOK, map[string]any{"session_token": "s1"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	c := newTestClient(t, srv)
	ctx := context.Background()

	require.NoError(t, c.LoginUser(ctx, "me", "secret"))
	assert.True(t, c.Authenticated())

	_, err := c.GetUserData(ctx)
	require.NoError(t, err)

	c.LogoutUser()
	assert.False(t, c.Authenticated())
	_, err = c.GetUserData(ctx)
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "", reqs[0].Pass)
	assert.Equal(t, "s1", reqs[1].Pass)
	assert.Equal(t, "", reqs[2].Pass)
}
