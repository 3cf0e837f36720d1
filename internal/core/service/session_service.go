package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/core/ports"
	"github.com/stockmanager/admin-console/internal/metrics"
)

const (
	causeCheckAuth = "check_auth"
	causeLogin     = "login"
	causeLogout    = "logout"
	causeExpired   = "expired"
)

// SessionOptions tunes the session state machine.
type SessionOptions struct {
	// RollbackPartialLogin clears the stored tokens when login succeeds but the
	// follow-up user fetch fails. Off by default: the token stays stored.
	RollbackPartialLogin bool
}

// SessionService owns the operator session. Neither lock is held across a
// backend call, so the client's auth-failure hook can re-enter Expire.
//
// storeMu serializes writes to the token store with the checks that decide
// them; it is always taken before mu.
type SessionService struct {
	api      ports.AuthAPI
	tokens   ports.TokenStore
	notifier ports.Notifier
	logger   zerolog.Logger
	opts     SessionOptions

	storeMu sync.Mutex

	mu      sync.RWMutex
	current domain.Session
	// verifying is the access token whose user fetch a Login is waiting on.
	verifying string
}

func NewSessionService(api ports.AuthAPI, tokens ports.TokenStore, notifier ports.Notifier, logger zerolog.Logger, opts SessionOptions) *SessionService {
	return &SessionService{
		api:      api,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
		current:  domain.NewSession(),
	}
}

// Snapshot returns a copy of the current session.
func (s *SessionService) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.current
	if snap.User != nil {
		u := *snap.User
		u.Roles = append([]string(nil), snap.User.Roles...)
		snap.User = &u
	}
	return snap
}

// CheckAuth settles the boot state. An empty token store yields Anonymous
// without contacting the backend; a rejected token is cleared. The result only
// applies while the session is still Unknown: a Login or Logout that finished
// first wins.
func (s *SessionService) CheckAuth(ctx context.Context) {
	pair, err := s.tokens.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("token store read failed during auth check")
	}
	if err != nil || pair.Empty() {
		s.settle(domain.AnonymousSession())
		return
	}

	user, err := s.api.CurrentUser(ctx)
	if err == nil {
		s.settle(domain.AuthenticatedSession(user))
		return
	}

	s.logger.Info().Err(err).Msg("stored token rejected, clearing session")
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	if !s.settle(domain.AnonymousSession()) {
		return
	}
	s.clearIfHolding(ctx, pair.Access)
}

// settle applies a CheckAuth outcome if the session is still Unknown.
func (s *SessionService) settle(next domain.Session) bool {
	s.mu.Lock()
	if s.current.State != domain.StateUnknown {
		state := s.current.State
		s.mu.Unlock()
		s.logger.Debug().Str("state", string(state)).Msg("auth check result discarded, session already settled")
		return false
	}
	s.current = next
	s.mu.Unlock()
	s.recordTransition(next.State, causeCheckAuth)
	return true
}

// Login exchanges credentials, persists the tokens and loads the user.
// On failure the session state is left unchanged.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) error {
	pair, err := s.api.Login(ctx, creds)
	if err != nil {
		s.logger.Info().Err(err).Str("username", creds.Username).Msg("login rejected")
		if errors.Is(err, domain.ErrAuth) {
			s.notifier.Error("Invalid username or password")
		} else {
			s.notifier.Error(domain.UserMessage(err))
		}
		return err
	}
	s.storeMu.Lock()
	err = s.tokens.Set(ctx, pair)
	s.storeMu.Unlock()
	if err != nil {
		s.notifier.Error("Could not store the session")
		return fmt.Errorf("persist tokens: %w", err)
	}

	s.mu.Lock()
	s.verifying = pair.Access
	s.mu.Unlock()
	user, err := s.api.CurrentUser(ctx)
	s.mu.Lock()
	s.verifying = ""
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn().Err(err).Bool("rollback", s.opts.RollbackPartialLogin).Msg("user fetch after login failed")
		if s.opts.RollbackPartialLogin {
			s.storeMu.Lock()
			s.clearIfHolding(ctx, pair.Access)
			s.storeMu.Unlock()
		}
		s.notifier.Error("Invalid username or password")
		return err
	}

	s.transition(domain.AuthenticatedSession(user), causeLogin)
	s.notifier.Success("Welcome back!")
	return nil
}

// Register creates an account. The session is not touched: the new user
// still has to log in.
func (s *SessionService) Register(ctx context.Context, reg domain.Registration) error {
	if _, err := s.api.Register(ctx, reg); err != nil {
		s.logger.Info().Err(err).Str("username", reg.Username).Msg("registration rejected")
		s.notifier.Error("Registration failed. Username might be taken.")
		return err
	}
	s.notifier.Success("Account created successfully!")
	return nil
}

// Logout always ends in Anonymous; store failures are only logged.
func (s *SessionService) Logout(ctx context.Context) {
	s.storeMu.Lock()
	s.clearTokens(ctx)
	s.transition(domain.AnonymousSession(), causeLogout)
	s.storeMu.Unlock()
	s.notifier.Success("Logged out successfully")
}

// Expire handles an access token rejected by the backend mid-session. It is
// a no-op unless the session is Authenticated and the store still holds the
// rejected token; a rejection of the token a Login is still verifying is left
// to that Login.
func (s *SessionService) Expire(ctx context.Context, rejected string) {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	s.mu.RLock()
	state, verifying := s.current.State, s.verifying
	s.mu.RUnlock()
	if state != domain.StateAuthenticated || (rejected != "" && rejected == verifying) {
		return
	}
	pair, err := s.tokens.Get(ctx)
	if err == nil && pair.Access != rejected {
		s.logger.Debug().Msg("rejected token already replaced, session kept")
		return
	}

	s.mu.Lock()
	if s.current.State != domain.StateAuthenticated {
		s.mu.Unlock()
		return
	}
	s.current = domain.AnonymousSession()
	s.mu.Unlock()

	s.recordTransition(domain.StateAnonymous, causeExpired)
	s.logger.Info().Msg("session expired")
	s.clearTokens(ctx)
	s.notifier.Warning("Session expired")
}

// UpdateProfile edits the current user. A password change needs the current
// password, checked before any network call.
func (s *SessionService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	if !s.Snapshot().IsAuthenticated {
		return domain.User{}, fmt.Errorf("update profile: %w", domain.ErrNotAuthenticated)
	}
	if update.NewPassword != "" && update.CurrentPassword == "" {
		const msg = "Current password is required to change password"
		s.notifier.Error(msg)
		return domain.User{}, domain.NewValidationError("update profile", msg)
	}

	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		msg := "Failed to update profile"
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && len(apiErr.Body) > 0 {
			msg = apiErr.Message()
		}
		s.notifier.Error(msg)
		return domain.User{}, err
	}

	s.mu.Lock()
	if s.current.State == domain.StateAuthenticated {
		s.current = domain.AuthenticatedSession(user)
	}
	s.mu.Unlock()
	s.notifier.Success("Profile updated successfully!")
	return user, nil
}

func (s *SessionService) transition(next domain.Session, cause string) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	s.recordTransition(next.State, cause)
}

func (s *SessionService) recordTransition(state domain.SessionState, cause string) {
	metrics.SessionTransitionsTotal.WithLabelValues(string(state), cause).Inc()
	s.logger.Debug().Str("state", string(state)).Str("cause", cause).Msg("session transition")
}

// clearIfHolding clears the store only while it still holds access. Callers
// hold storeMu.
func (s *SessionService) clearIfHolding(ctx context.Context, access string) {
	pair, err := s.tokens.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("token store read failed, leaving tokens in place")
		return
	}
	if pair.Access != access {
		return
	}
	s.clearTokens(ctx)
}

func (s *SessionService) clearTokens(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear token store")
	}
}
