package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/cafeorder/cafe-client/pkg/api"
	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/logger"
)

// Event signals an identity transition to subscribed stores.
type Event int

const (
	// EventLogin fires when a user becomes authenticated.
	EventLogin Event = iota
	// EventLogout fires when local identity is cleared, whether by
	// explicit logout, account withdrawal, or a rejected session.
	EventLogout
)

// Listener receives identity transitions. Listeners run synchronously
// under the store's own goroutine; keep them fast.
type Listener func(Event)

type memberAPI interface {
	Join(ctx context.Context, req api.JoinRequest) (api.User, error)
	Login(ctx context.Context, req api.LoginRequest) (api.User, error)
	Logout(ctx context.Context) error
	MemberInfo(ctx context.Context) (api.User, error)
	UpdateMemberInfo(ctx context.Context, req api.UpdateMemberRequest) (api.User, error)
	Withdraw(ctx context.Context) error
	VerifyPassword(ctx context.Context, password string) (bool, error)
}

// Store holds the authenticated identity for the process. The backend
// session cookie is the source of truth; this store mirrors it locally
// so callers can answer "who am I" without a network round trip.
type Store struct {
	mu          sync.RWMutex
	api         memberAPI
	logg        *logger.Logger
	user        *api.User
	initialized bool
	listeners   []Listener
}

// NewStore builds a session store backed by the provided API client.
func NewStore(client memberAPI, logg *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Store{api: client, logg: logg}, nil
}

// Subscribe registers a listener for identity transitions. Stores holding
// per-user state subscribe so a logout clears them in the same pass.
func (s *Store) Subscribe(listener Listener) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Initialize resolves the identity behind any session cookie already in
// the client's jar. It always leaves the store initialized: a rejected or
// absent session resolves to anonymous rather than an error, so startup
// never blocks on being logged out.
func (s *Store) Initialize(ctx context.Context) error {
	user, err := s.api.MemberInfo(ctx)
	if err != nil {
		s.mu.Lock()
		s.user = nil
		s.initialized = true
		s.mu.Unlock()

		if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) || pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
			s.debug(ctx, "session resolved anonymous")
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.initialized = true
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.debug(ctx, "session resolved authenticated")
	notify(listeners, EventLogin)
	return nil
}

// Signup creates an account. It does not authenticate; callers log in
// separately with the same credentials.
func (s *Store) Signup(ctx context.Context, email, password, name string) (api.User, error) {
	return s.api.Join(ctx, api.JoinRequest{Email: email, Password: password, Name: name})
}

// Login authenticates and publishes the identity.
func (s *Store) Login(ctx context.Context, email, password string) (api.User, error) {
	user, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return api.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.initialized = true
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.debug(ctx, "session login")
	notify(listeners, EventLogin)
	return user, nil
}

// Logout clears local identity first, then tears down the server-side
// session. A failed remote call leaves the user logged out locally; the
// cookie is stale at worst, not the UI.
func (s *Store) Logout(ctx context.Context) error {
	s.clearUser(ctx)

	if err := s.api.Logout(ctx); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("remote logout failed: %v", err))
		}
		return err
	}
	return nil
}

// Withdraw deletes the account and clears local identity. Local state is
// only cleared after the backend confirms the deletion.
func (s *Store) Withdraw(ctx context.Context) error {
	if err := s.api.Withdraw(ctx); err != nil {
		return err
	}
	s.clearUser(ctx)
	return nil
}

// UpdateUserInfo merges the provided fields into the current identity and
// submits the full profile, storing the authoritative record the backend
// returns. Empty fields keep their current value. Fails before any network
// call when nobody is logged in; the backend requires a complete payload
// and there is no identity to complete it from.
func (s *Store) UpdateUserInfo(ctx context.Context, email, name, password string) (api.User, error) {
	current, ok := s.CurrentUser()
	if !ok {
		return api.User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}

	req := api.UpdateMemberRequest{Email: current.Email, Name: current.Name, Password: password}
	if email != "" {
		req.Email = email
	}
	if name != "" {
		req.Name = name
	}

	user, err := s.api.UpdateMemberInfo(ctx, req)
	if err != nil {
		return api.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, nil
}

// VerifyPassword re-checks the current user's password without mutating
// any state. A mismatch is (false, nil); only transport or server
// failures surface as errors.
func (s *Store) VerifyPassword(ctx context.Context, password string) (bool, error) {
	return s.api.VerifyPassword(ctx, password)
}

// CurrentUser returns a copy of the authenticated user, or false when
// anonymous.
func (s *Store) CurrentUser() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsAdmin reports whether the current user carries the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// IsInitialized reports whether Initialize has resolved at least once.
func (s *Store) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// ClearUser drops local identity without touching the backend. Exposed
// for callers that detect a dead session mid-flight.
func (s *Store) ClearUser(ctx context.Context) {
	s.clearUser(ctx)
}

func (s *Store) clearUser(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.user != nil
	s.user = nil
	s.initialized = true
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if wasAuthenticated {
		s.debug(ctx, "session cleared")
		notify(listeners, EventLogout)
	}
}

// snapshotListeners must be called with s.mu held.
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, len(s.listeners))
	copy(out, s.listeners)
	return out
}

func (s *Store) debug(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Debug(ctx, msg)
	}
}

func notify(listeners []Listener, event Event) {
	for _, listener := range listeners {
		listener(event)
	}
}
