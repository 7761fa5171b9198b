package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"userhub/web/entity"
)

// fakeServer is a minimal stand-in for the auth endpoints. It tracks a single
// session token and counts me() calls so tests can assert coalescing.
type fakeServer struct {
	mu       sync.Mutex
	loggedIn bool
	user     entity.UserSnapshot
	meCalls  atomic.Int64
}

func newFakeServer(t *testing.T, user entity.UserSnapshot) (*fakeServer, *httptest.Server) {
	t.Helper()
	fs := &fakeServer{user: user}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "password1" {
			writeJSON(w, entity.AuthResult{Success: false, Message: "Invalid username or password"})
			return
		}
		fs.mu.Lock()
		fs.loggedIn = true
		fs.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "userhub_session", Value: "tok", Path: "/"})
		writeJSON(w, entity.AuthResult{Success: true, User: &fs.user})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.loggedIn = false
		fs.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "userhub_session", Value: "", Path: "/", MaxAge: -1})
		writeJSON(w, entity.AuthResult{Success: true})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		fs.meCalls.Inc()
		fs.mu.Lock()
		in := fs.loggedIn
		fs.mu.Unlock()
		if _, err := r.Cookie("userhub_session"); err != nil || !in {
			writeJSON(w, entity.AuthResult{Success: true})
			return
		}
		writeJSON(w, entity.AuthResult{Success: true, User: &fs.user})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return fs, srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func staffUser() entity.UserSnapshot {
	return entity.UserSnapshot{Id: 7, Username: "alice", Email: "alice@x.com", IsActive: true, IsStaff: true}
}

func TestResolveAnonymous(t *testing.T) {
	_, srv := newFakeServer(t, staffUser())
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	state := NewState(c)

	assert.Equal(t, GuardUnknown, state.Guard())
	snap, err := state.Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, GuardResolved, state.Guard())
	assert.False(t, state.IsAuthenticated())
}

func TestResolveCoalesces(t *testing.T) {
	fs, srv := newFakeServer(t, staffUser())
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	state := NewState(c)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = state.Resolve(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), fs.meCalls.Load())

	// A later call reuses the resolved snapshot.
	_, err = state.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), fs.meCalls.Load())
}

func TestLoginReplacesSnapshot(t *testing.T) {
	_, srv := newFakeServer(t, staffUser())
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	state := NewState(c)

	result, err := state.Login(context.Background(), "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.False(t, state.IsAuthenticated())

	result, err = state.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, GuardResolved, state.Guard())
	assert.True(t, state.IsAuthenticated())
	assert.True(t, state.IsStaff())
	assert.False(t, state.IsAdmin())

	ok, err := state.GuardStaff(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = state.GuardAdmin(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogoutClearsSnapshot(t *testing.T) {
	_, srv := newFakeServer(t, staffUser())
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	state := NewState(c)

	_, err = state.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)
	require.True(t, state.IsAuthenticated())

	result, err := state.Logout(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, state.IsAuthenticated())
	assert.Equal(t, GuardResolved, state.Guard())

	ok, err := state.GuardAuth(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidateForcesRequery(t *testing.T) {
	fs, srv := newFakeServer(t, staffUser())
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	state := NewState(c)

	_, err = state.Resolve(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), fs.meCalls.Load())

	state.Invalidate()
	assert.Equal(t, GuardUnknown, state.Guard())

	_, err = state.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), fs.meCalls.Load())
}

func TestResolveInfraFailureStaysUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	state := NewState(c)

	_, err = state.Resolve(context.Background())
	require.Error(t, err)
	assert.Equal(t, GuardUnknown, state.Guard())
	assert.Nil(t, state.Snapshot())

	ok, err := state.GuardAuth(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
}
