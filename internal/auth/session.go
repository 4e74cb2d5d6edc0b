package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/stayx/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "stayx"

// Claims are the JWT claims of a session token. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// SessionManager issues and validates signed session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a [SessionManager] signing with secret; tokens expire after ttl.
func NewSessionManager(secret []byte, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: secret, ttl: ttl, now: time.Now}
}

// TTL returns how long issued tokens stay valid.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue creates a token for userID and returns it with its expiry.
func (m *SessionManager) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("%w: empty user id", shared.ErrInvalidSession)
	}

	now := m.now()
	expires := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, expires, nil
}

// Parse validates the token and returns the user ID it was issued for.
//
// Malformed, expired or foreign tokens yield [shared.ErrInvalidSession].
func (m *SessionManager) Parse(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", fmt.Errorf("%w: session expired", shared.ErrInvalidSession)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidSession, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", shared.ErrInvalidSession
	}

	return claims.Subject, nil
}
