package ports

import (
	"context"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// SessionReader exposes the current session snapshot.
type SessionReader interface {
	Snapshot() domain.Session
}

// SessionService is the operator session state machine.
type SessionService interface {
	SessionReader
	CheckAuth(ctx context.Context)
	Login(ctx context.Context, creds domain.Credentials) error
	Register(ctx context.Context, reg domain.Registration) error
	Logout(ctx context.Context)
	// Expire ends the session after the backend rejected the access token.
	Expire(ctx context.Context, rejected string)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error)
}
