package devbackend

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("token is invalid or expired")

// TokenIssuer signs HS256 access/refresh pairs carrying the user id.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = 5 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL, now: time.Now}
}

// Pair issues a fresh access and refresh token for userID.
func (i *TokenIssuer) Pair(userID int64) (access, refresh string, err error) {
	if access, err = i.sign(userID, tokenTypeAccess, i.accessTTL); err != nil {
		return "", "", err
	}
	if refresh, err = i.sign(userID, tokenTypeRefresh, i.refreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Access issues a new access token from a valid refresh token.
func (i *TokenIssuer) Access(refresh string) (string, error) {
	userID, err := i.Verify(refresh, tokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return i.sign(userID, tokenTypeAccess, i.accessTTL)
}

// Verify checks signature, expiry and token type and returns the user id.
func (i *TokenIssuer) Verify(token, wantType string) (int64, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !tkn.Valid {
		return 0, ErrInvalidToken
	}
	if typ, _ := claims["token_type"].(string); typ != wantType {
		return 0, ErrInvalidToken
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}
	return int64(id), nil
}

func (i *TokenIssuer) sign(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"token_type": tokenType,
		"user_id":    userID,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}
