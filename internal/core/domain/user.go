package domain

import "slices"

// Role names as stored in the backend's user groups.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleReader  = "Reader"
)

// defaultRoleLabel is shown when a user belongs to no group.
const defaultRoleLabel = "User"

// User is the authenticated operator as returned by GET auth/me/.
type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}

// HasRole reports whether role is one of the user's groups.
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// PrimaryRole is the first group, which is the one displayed next to the username.
func (u User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return defaultRoleLabel
	}
	return u.Roles[0]
}

// CanManageInventory reports whether the user may create, edit or delete
// products and categories.
func (u User) CanManageInventory() bool {
	return u.HasRole(RoleManager) || u.HasRole(RoleAdmin)
}

// Credentials is the login form payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the sign-up form payload.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterAck is what the backend answers to a successful registration.
// The console does not use the embedded tokens: a new account still has to log in.
type RegisterAck struct {
	Access  string `json:"access,omitempty"`
	Refresh string `json:"refresh,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// ProfileUpdate is the PUT auth/profile/ payload. Password fields are only
// sent when a password change is requested.
type ProfileUpdate struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

// TokenPair holds the credentials issued by auth/login/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether no access token is present.
func (p TokenPair) Empty() bool {
	return p.Access == ""
}
