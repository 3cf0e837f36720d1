package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Hand-written stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubAuthAPI struct {
	loginFn         func(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error)
	registerFn      func(ctx context.Context, reg domain.Registration) (domain.RegisterAck, error)
	currentUserFn   func(ctx context.Context) (domain.User, error)
	updateProfileFn func(ctx context.Context, update domain.ProfileUpdate) (domain.User, error)

	currentUserCalls atomic.Int32
}

func (a *stubAuthAPI) Login(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error) {
	return a.loginFn(ctx, creds)
}

func (a *stubAuthAPI) Register(ctx context.Context, reg domain.Registration) (domain.RegisterAck, error) {
	return a.registerFn(ctx, reg)
}

func (a *stubAuthAPI) CurrentUser(ctx context.Context) (domain.User, error) {
	a.currentUserCalls.Add(1)
	return a.currentUserFn(ctx)
}

func (a *stubAuthAPI) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	return a.updateProfileFn(ctx, update)
}

type stubTokens struct {
	mu       sync.Mutex
	pair     domain.TokenPair
	getErr   error
	clearErr error
	gets     int
	clears   int
}

func (s *stubTokens) Get(context.Context) (domain.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	return s.pair, s.getErr
}

func (s *stubTokens) Set(_ context.Context, pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	return nil
}

func (s *stubTokens) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.pair = domain.TokenPair{}
	return s.clearErr
}

func (s *stubTokens) stored() domain.TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair
}

type notice struct {
	level string
	msg   string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (n *recordingNotifier) add(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{level, msg})
}

func (n *recordingNotifier) Success(msg string) { n.add("success", msg) }
func (n *recordingNotifier) Info(msg string)    { n.add("info", msg) }
func (n *recordingNotifier) Warning(msg string) { n.add("warning", msg) }
func (n *recordingNotifier) Error(msg string)   { n.add("error", msg) }

func (n *recordingNotifier) last() notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return notice{}
	}
	return n.notices[len(n.notices)-1]
}

type stubSession struct {
	session domain.Session
}

func (s stubSession) Snapshot() domain.Session { return s.session }

func managerSession() stubSession {
	return stubSession{domain.AuthenticatedSession(domain.User{ID: 1, Username: "mgr", Roles: []string{domain.RoleManager}})}
}

func readerSession() stubSession {
	return stubSession{domain.AuthenticatedSession(domain.User{ID: 2, Username: "reader", Roles: []string{domain.RoleReader}})}
}

func int64Ptr(v int64) *int64 { return &v }
