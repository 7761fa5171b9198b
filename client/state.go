package client

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"userhub/web/entity"
)

// GuardState tracks whether the cached identity has been established.
type GuardState int32

const (
	// GuardUnknown means no identity check has happened yet.
	GuardUnknown GuardState = iota
	// GuardChecking means the startup me() round-trip is in flight.
	GuardChecking
	// GuardResolved means the cached snapshot (possibly anonymous) is
	// authoritative until the next login/logout or explicit Invalidate.
	GuardResolved
)

// State caches the last-fetched user snapshot and derives the predicates
// route guards and UI affordances use. It is a UX convenience only; the
// server enforces the real authorization boundary on every request.
type State struct {
	client *Client

	guard    atomic.Int32
	snapshot atomic.Pointer[entity.UserSnapshot]

	// mu serializes the resolving round-trip so concurrent guards coalesce
	// into a single me() call.
	mu sync.Mutex
}

// NewState creates an auth state bound to the given client.
func NewState(c *Client) *State {
	return &State{client: c}
}

// Guard returns the current guard state.
func (s *State) Guard() GuardState {
	return GuardState(s.guard.Load())
}

// Snapshot returns the cached user snapshot, nil when anonymous or unknown.
func (s *State) Snapshot() *entity.UserSnapshot {
	return s.snapshot.Load()
}

// IsAuthenticated reports whether a snapshot is present.
func (s *State) IsAuthenticated() bool {
	return s.snapshot.Load() != nil
}

// IsStaff mirrors the server-side staff flag of the cached snapshot.
func (s *State) IsStaff() bool {
	if snap := s.snapshot.Load(); snap != nil {
		return snap.IsStaff
	}
	return false
}

// IsAdmin mirrors the server-side superuser flag of the cached snapshot.
func (s *State) IsAdmin() bool {
	if snap := s.snapshot.Load(); snap != nil {
		return snap.IsSuperuser
	}
	return false
}

// Resolve establishes the identity snapshot. The first caller performs the
// me() round-trip; callers arriving while it is in flight wait for the same
// result, and later callers reuse the resolved snapshot without another
// query. An infrastructure failure clears the snapshot and leaves the state
// unresolved so the next navigation retries.
func (s *State) Resolve(ctx context.Context) (*entity.UserSnapshot, error) {
	if s.Guard() == GuardResolved {
		return s.snapshot.Load(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Guard() == GuardResolved {
		return s.snapshot.Load(), nil
	}

	s.guard.Store(int32(GuardChecking))
	result, err := s.client.Me(ctx)
	if err != nil {
		s.snapshot.Store(nil)
		s.guard.Store(int32(GuardUnknown))
		return nil, err
	}

	s.snapshot.Store(result.User)
	s.guard.Store(int32(GuardResolved))
	return result.User, nil
}

// Invalidate drops the cached snapshot so the next Resolve re-queries.
// Server-side role changes are otherwise not reflected until then.
func (s *State) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Store(nil)
	s.guard.Store(int32(GuardUnknown))
}

// Login authenticates and on success replaces the cached snapshot.
func (s *State) Login(ctx context.Context, username, password string) (*entity.AuthResult, error) {
	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if result.Success {
		s.snapshot.Store(result.User)
		s.guard.Store(int32(GuardResolved))
	}
	return result, nil
}

// Logout destroys the session and clears the cached snapshot.
func (s *State) Logout(ctx context.Context) (*entity.AuthResult, error) {
	result, err := s.client.Logout(ctx)
	if err != nil {
		return nil, err
	}
	if result.Success {
		s.snapshot.Store(nil)
		s.guard.Store(int32(GuardResolved))
	}
	return result, nil
}

// GuardAuth decides whether navigation to an authenticated route may
// proceed, resolving the identity first if needed.
func (s *State) GuardAuth(ctx context.Context) (bool, error) {
	snap, err := s.Resolve(ctx)
	if err != nil {
		return false, err
	}
	return snap != nil, nil
}

// GuardStaff decides whether navigation to a staff route may proceed.
func (s *State) GuardStaff(ctx context.Context) (bool, error) {
	snap, err := s.Resolve(ctx)
	if err != nil {
		return false, err
	}
	return snap != nil && snap.IsStaff, nil
}

// GuardAdmin decides whether navigation to an admin route may proceed.
func (s *State) GuardAdmin(ctx context.Context) (bool, error) {
	snap, err := s.Resolve(ctx)
	if err != nil {
		return false, err
	}
	return snap != nil && snap.IsSuperuser, nil
}
