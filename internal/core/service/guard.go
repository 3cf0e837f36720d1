package service

import "github.com/stockmanager/admin-console/internal/core/domain"

// Decision is what a protected route should do for the current session.
type Decision int

const (
	// DecisionLoading means the boot auth check has not settled yet.
	DecisionLoading Decision = iota
	DecisionRedirectLogin
	DecisionRender
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRender:
		return "render"
	default:
		return "unknown"
	}
}

// Guard decides access to a protected route. Loading wins over everything.
func Guard(s domain.Session) Decision {
	switch {
	case s.IsLoading:
		return DecisionLoading
	case !s.IsAuthenticated:
		return DecisionRedirectLogin
	default:
		return DecisionRender
	}
}
