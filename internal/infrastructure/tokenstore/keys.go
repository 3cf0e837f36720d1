// Package tokenstore holds the local TokenStore backends.
package tokenstore

// Keys under which the pair is persisted. Each is written and removed on its own.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)
