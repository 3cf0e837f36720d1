package domain

// SessionState is the coarse state of the operator session.
type SessionState string

const (
	StateUnknown       SessionState = "unknown"
	StateAuthenticated SessionState = "authenticated"
	StateAnonymous     SessionState = "anonymous"
)

// Session is an immutable snapshot of the operator session.
// User is non-nil exactly when IsAuthenticated is true.
type Session struct {
	State           SessionState `json:"state"`
	User            *User        `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
	IsLoading       bool         `json:"is_loading"`
}

// NewSession returns the boot state: nothing known yet, auth check pending.
func NewSession() Session {
	return Session{State: StateUnknown, IsLoading: true}
}

// AuthenticatedSession returns a settled session for user.
func AuthenticatedSession(user User) Session {
	u := user
	u.Roles = append([]string(nil), user.Roles...)
	return Session{State: StateAuthenticated, User: &u, IsAuthenticated: true}
}

// AnonymousSession returns a settled session with nobody logged in.
func AnonymousSession() Session {
	return Session{State: StateAnonymous}
}

// Consistent reports whether the snapshot satisfies the session invariants.
func (s Session) Consistent() bool {
	if s.IsAuthenticated != (s.User != nil) {
		return false
	}
	switch s.State {
	case StateUnknown:
		return s.IsLoading && !s.IsAuthenticated
	case StateAuthenticated:
		return !s.IsLoading && s.IsAuthenticated
	case StateAnonymous:
		return !s.IsLoading && !s.IsAuthenticated
	default:
		return false
	}
}
