// Package session owns the current authentication state:  the session token, the
// authenticated user's profile, and the derived authentication status.  It is the
// single source of truth for "who is logged in".
package session

import (
	"context"
	"sync"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/log"
)

// TokenStore abstracts the durable local storage holding the session token.  The
// production implementation persists to the config file; tests use an in-memory one.
type TokenStore interface {
	// Load returns the stored token, or the empty string if none is stored
	Load() (string, error)
	// Save persists the token
	Save(token string) error
	// Clear removes any stored token
	Clear() error
}

// Store holds the session state.  It is constructed once at application start and
// handed by reference to every consumer.
//
// All operations are safe for concurrent use, but calls are not de-duplicated:  if
// two logins race, both run to completion and the last writer wins.
type Store struct {
	repo   domain.CatalogRepository
	tokens TokenStore

	mu      sync.Mutex
	token   string
	user    *domain.User
	loading bool
	lastErr string
}

// NewStore creates a session store.  The store starts in the loading state; call
// Initialize to resolve it.
func NewStore(repo domain.CatalogRepository, tokens TokenStore) *Store {
	return &Store{
		repo:    repo,
		tokens:  tokens,
		loading: true,
	}
}

// Initialize resolves the initial session state at process start.  If a token is
// present in durable storage the profile is fetched before the store is considered
// ready; otherwise the store settles as unauthenticated.
func (s *Store) Initialize(ctx context.Context) {
	log.Debug("Initialising session store")
	s.FetchProfile(ctx)
}

// FetchProfile refreshes the profile for the stored token, if any.  A failure of the
// underlying profile request is treated as a session expiry:  the token is cleared
// from durable storage and memory, the profile is cleared, and no error is surfaced
// beyond a diagnostic log.  The loading flag is cleared on completion either way.
func (s *Store) FetchProfile(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.tokens.Load()
	if err != nil {
		log.Warn("Failed to read token from durable storage", "error", err)
		token = ""
	}

	if token == "" {
		return
	}

	user, err := s.repo.GetProfile(ctx)
	if err != nil {
		// An invalid or expired token is not a fatal error.  Demote to unauthenticated.
		log.Warn("Failed to fetch user profile.  Treating session as expired", "error", err)
		s.clearSession()
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	log.Info("Fetched user profile", "username", user.Username)
}

// Login exchanges credentials for a session token, persists the token, and
// re-fetches the profile.  On failure the last-error field is set and the error is
// returned to the caller; any existing token is left untouched.
func (s *Store) Login(ctx context.Context, creds domain.Credentials) error {
	s.setErr("")
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.repo.Login(ctx, creds)
	if err != nil {
		s.setErr(messageOrDefault(err, "Login failed"))
		return err
	}

	if err := s.tokens.Save(token); err != nil {
		// The session still works for this process, it just won't survive a restart
		log.Warn("Failed to persist session token", "error", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.FetchProfile(ctx)
	return nil
}

// Register creates a new account and, on success, immediately logs in with the same
// credentials so that a successful registration always yields an authenticated
// session.  On failure the last-error field is set and the error is returned.
func (s *Store) Register(ctx context.Context, reg domain.Registration) error {
	s.setErr("")

	if err := s.repo.Register(ctx, reg); err != nil {
		s.setErr(messageOrDefault(err, "Registration failed"))
		return err
	}

	log.Info("Account registered.  Logging in", "email", reg.Email)
	return s.Login(ctx, reg.Credentials())
}

// Logout unconditionally clears the token from durable storage and memory along with
// the profile.  No network call is made.  Idempotent.
func (s *Store) Logout() {
	log.Info("Logging out.  Clearing session token from durable storage")
	s.clearSession()
}

// IsAuthenticated reports whether a session token is held.  The profile may
// legitimately be nil even when this returns true (fetch still in flight).
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the current in-memory session token, or the empty string
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current profile, or nil when unauthenticated or not yet fetched
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Loading reports whether a profile fetch, login, or registration is outstanding
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message of the last failed login or registration, or the empty
// string
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) clearSession() {
	if err := s.tokens.Clear(); err != nil {
		log.Warn("Failed to clear token from durable storage", "error", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func messageOrDefault(err error, fallback string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
