package auth

import (
	"context"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"

	"github.com/lucasstarsz/lemon-mart/cache"
)

// TokenKey is the fixed cache key the bearer token is persisted under. The
// value is the raw token string, not JSON-wrapped.
const TokenKey = "jwt"

const defaultFetchTimeout = 30 * time.Second

// Credentials is a login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(
			&c.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&c.Password,
			validation.Required,
		),
	)
}

// SessionManager establishes, persists, refreshes and broadcasts the user's
// authentication state from an opaque bearer token.
//
// At construction it resumes any persisted session; Login and Logout drive
// the remaining transitions. Status and profile are continuously observable
// through AuthStatus/CurrentUser and their subscription counterparts.
type SessionManager struct {
	provider SessionProvider
	store    cache.Store
	logger   Logger
	sched    *scheduler
	status   *Subject[AuthStatus]
	user     *Subject[User]

	now          func() time.Time
	fetchTimeout time.Duration

	// opMu serializes state transitions (login, logout, resume).
	opMu sync.Mutex

	// genMu guards the session generation counter. Deferred work captures
	// the generation it was scheduled under and becomes a no-op once a
	// later transition supersedes it.
	genMu sync.Mutex
	gen   uint64
}

// SessionOption customizes session manager construction.
type SessionOption func(*SessionManager)

// WithLogger overrides the session logger.
func WithLogger(logger Logger) SessionOption {
	return func(s *SessionManager) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) SessionOption {
	return func(s *SessionManager) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithFetchTimeout bounds the deferred profile fetch issued when a
// persisted session is resumed.
func WithFetchTimeout(d time.Duration) SessionOption {
	return func(s *SessionManager) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// NewSessionManager builds the manager and synchronously derives the
// initial status from any persisted token. A valid token seeds an
// authenticated status immediately and schedules a profile fetch on the
// next tick; an absent or expired token purges the entry and leaves the
// default status in place.
func NewSessionManager(ctx context.Context, provider SessionProvider, store cache.Store, opts ...SessionOption) *SessionManager {
	s := &SessionManager{
		provider:     provider,
		store:        store,
		logger:       defLogger{},
		sched:        newScheduler(),
		status:       NewSubject(DefaultAuthStatus()),
		user:         NewSubject(NewUser()),
		now:          time.Now,
		fetchTimeout: defaultFetchTimeout,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.resume(ctx)

	return s
}

// resume re-establishes session state from the persisted token, without
// fresh credentials.
func (s *SessionManager) resume(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	raw, err := s.store.GetString(ctx, TokenKey)
	if err != nil {
		if !cache.IsNotFound(err) {
			// Unreadable storage is treated as "no token": fail safe
			// to unauthenticated rather than crash.
			s.logger.Error("resume: token read failed: %v", err)
		}
		s.logoutLocked(true)
		return
	}

	claims, err := DecodeToken(raw)
	if err != nil {
		s.logger.Error("resume: discarding undecodable token: %v", err)
		s.logoutLocked(true)
		return
	}

	if claims.Expired(s.now()) {
		s.logger.Info("resume: persisted token expired")
		s.logoutLocked(true)
		return
	}

	status := s.provider.TransformClaims(claims)
	gen := s.advance()
	s.status.Set(status)

	// The fetch is deferred to the next tick so collaborators constructed
	// in the same initialization wave exist before it fires.
	s.sched.Post(func() { s.refreshUser(gen) })
}

// Login exchanges credentials for a token, persists it, publishes the
// derived status and, when authenticated, fetches and publishes the user
// profile before returning. Any failure is normalized, triggers a logout
// side effect, and is returned to the caller.
func (s *SessionManager) Login(ctx context.Context, email, password string) error {
	creds := Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return TransformError(errors.Wrap(err, errors.CategoryValidation, err.Error()))
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	// No stale token may outlive a login attempt.
	if err := s.store.Remove(ctx, TokenKey); err != nil {
		s.logger.Error("login: token reset failed: %v", err)
	}

	s.advance()

	token, err := s.provider.AuthProvider(ctx, email, password)
	if err != nil {
		return s.failLocked(err)
	}

	if err := s.store.Set(ctx, TokenKey, token); err != nil {
		return s.failLocked(errors.Wrap(err, ErrTokenStorage.Category, ErrTokenStorage.Message).
			WithTextCode(ErrTokenStorage.TextCode))
	}

	claims, err := DecodeToken(token)
	if err != nil {
		return s.failLocked(err)
	}

	status := s.provider.TransformClaims(claims)
	s.status.Set(status)

	if !status.IsAuthenticated {
		return nil
	}

	user, err := s.provider.GetCurrentUser(ctx)
	if err != nil {
		return s.failLocked(errors.Wrap(err, ErrProfileFetch.Category, ErrProfileFetch.Message).
			WithTextCode(ErrProfileFetch.TextCode))
	}

	s.user.Set(user)

	return nil
}

// Logout resets the session to the default unauthenticated state, purging
// the persisted token when clearToken is set. The status broadcast is
// deferred to the next tick so synchronous code still iterating over the
// old status observes a consistent ordering. Calling Logout twice has no
// additional observable effect.
func (s *SessionManager) Logout(clearToken bool) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.logoutLocked(clearToken)
}

func (s *SessionManager) logoutLocked(clearToken bool) {
	if clearToken {
		if err := s.store.Remove(context.Background(), TokenKey); err != nil {
			s.logger.Error("logout: token purge failed: %v", err)
		}
	}

	gen := s.advance()

	s.sched.Post(func() {
		// A later transition owns the published state now; this broadcast
		// must not overwrite it.
		if s.currentGen() != gen {
			return
		}
		def := DefaultAuthStatus()
		if s.status.Get() == def {
			return
		}
		s.status.Set(def)
		s.user.Set(NewUser())
	})
}

// failLocked normalizes a login-pipeline failure, applies the logout side
// effect, and hands the error back for the caller. Login failures always
// purge the persisted token so no error branch can leave a stale one.
func (s *SessionManager) failLocked(err error) error {
	err = TransformError(err)
	s.logger.Error("login failed: %v", err)
	s.logoutLocked(true)
	return err
}

// refreshUser performs the at-most-once profile fetch bound to a single
// transition into the authenticated state.
func (s *SessionManager) refreshUser(gen uint64) {
	if s.currentGen() != gen {
		return
	}
	if !s.status.Get().IsAuthenticated {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()

	user, err := s.provider.GetCurrentUser(ctx)
	if err != nil {
		s.logger.Error("resume: profile fetch failed: %v", err)
		s.Logout(false)
		return
	}

	if s.currentGen() != gen {
		return
	}
	s.user.Set(user)
}

// AuthStatus returns the currently published status.
func (s *SessionManager) AuthStatus() AuthStatus {
	return s.status.Get()
}

// CurrentUser returns the currently published profile.
func (s *SessionManager) CurrentUser() User {
	return s.user.Get()
}

// OnAuthStatus subscribes to status changes. The latest value is replayed
// immediately; the returned cancel func removes the subscription.
func (s *SessionManager) OnAuthStatus(fn func(AuthStatus)) (cancel func()) {
	return s.status.Subscribe(fn)
}

// OnCurrentUser subscribes to profile changes with the same replay
// semantics as OnAuthStatus.
func (s *SessionManager) OnCurrentUser(fn func(User)) (cancel func()) {
	return s.user.Subscribe(fn)
}

// Token returns the persisted bearer token, or the empty string when no
// session exists.
func (s *SessionManager) Token() string {
	raw, err := s.store.GetString(context.Background(), TokenKey)
	if err != nil {
		if !cache.IsNotFound(err) {
			s.logger.Error("token read failed: %v", err)
		}
		return ""
	}
	return raw
}

// Close stops the deferred-task loop after draining pending work.
func (s *SessionManager) Close() {
	s.sched.Close()
}

func (s *SessionManager) advance() uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.gen++
	return s.gen
}

func (s *SessionManager) currentGen() uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gen
}
